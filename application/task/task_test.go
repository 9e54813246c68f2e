package task_test

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embodied-nav/vln-sdk/application/sensor"
	"github.com/embodied-nav/vln-sdk/application/task"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/errors"
	"github.com/embodied-nav/vln-sdk/domain/ports"
	"github.com/embodied-nav/vln-sdk/internal/testutil"
)

func instructionSensors(t *testing.T) []ports.Sensor {
	t.Helper()
	s, err := sensor.NewInstructionSensor(nil)
	require.NoError(t, err)
	return []ports.Sensor{s}
}

func TestVLNTask_Name(t *testing.T) {
	vln, err := task.NewVLNTask(entities.TaskConfig{Type: "VLN-v0"}, instructionSensors(t))
	require.NoError(t, err)
	assert.Equal(t, "VLN-v0", vln.Name())

	nav, err := task.NewNavigationTask(entities.TaskConfig{Type: "Nav-v0"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Nav-v0", nav.Name())
}

func TestVLNTask_ResetReturnsInstruction(t *testing.T) {
	vln, err := task.NewVLNTask(entities.TaskConfig{Type: "VLN-v0"}, instructionSensors(t))
	require.NoError(t, err)
	assert.False(t, vln.IsEpisodeActive())

	ep := testutil.KitchenEpisode(t)
	obs, err := vln.Reset(ep)
	require.NoError(t, err)

	assert.Equal(t, entities.InstructionObservation{
		Text:         testutil.KitchenText,
		Tokens:       testutil.KitchenTokens(),
		TrajectoryID: testutil.KitchenTrajectoryID,
	}, obs["instruction"])
	assert.True(t, vln.IsEpisodeActive())
	assert.Same(t, ep, vln.Episode())
}

func TestVLNTask_BehavesLikeNavigationTask(t *testing.T) {
	cfg := entities.TaskConfig{MaxEpisodeSteps: 3}
	vln, err := task.NewVLNTask(cfg, instructionSensors(t))
	require.NoError(t, err)
	nav, err := task.NewNavigationTask(cfg, instructionSensors(t))
	require.NoError(t, err)

	ep := testutil.KitchenEpisode(t)
	for _, tk := range []ports.Task{vln, nav} {
		first, err := tk.Reset(ep)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			obs, err := tk.Step()
			require.NoError(t, err)
			assert.Equal(t, first, obs)
		}
		assert.False(t, tk.IsEpisodeActive())
	}
	assert.Equal(t, nav.ObservationSpaces(), vln.ObservationSpaces())
}

func TestNavigationTask_StepLimit(t *testing.T) {
	nav, err := task.NewNavigationTask(entities.TaskConfig{MaxEpisodeSteps: 2}, instructionSensors(t))
	require.NoError(t, err)

	_, err = nav.Step()
	assert.ErrorIs(t, err, task.ErrNoEpisode)

	_, err = nav.Reset(testutil.KitchenEpisode(t))
	require.NoError(t, err)

	_, err = nav.Step()
	require.NoError(t, err)
	assert.True(t, nav.IsEpisodeActive())
	_, err = nav.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, nav.Steps())
	assert.False(t, nav.IsEpisodeActive())

	_, err = nav.Step()
	assert.ErrorIs(t, err, task.ErrEpisodeOver)

	// Reset starts over.
	_, err = nav.Reset(testutil.KitchenEpisode(t))
	require.NoError(t, err)
	assert.Equal(t, 0, nav.Steps())
	assert.True(t, nav.IsEpisodeActive())
}

func TestNavigationTask_Unbounded(t *testing.T) {
	nav, err := task.NewNavigationTask(entities.TaskConfig{}, nil)
	require.NoError(t, err)

	_, err = nav.Reset(&entities.Episode{EpisodeID: "e", SceneID: "s"})
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		obs, err := nav.Step()
		require.NoError(t, err)
		assert.Empty(t, obs)
	}
	assert.True(t, nav.IsEpisodeActive())
}

func TestNavigationTask_ResetNil(t *testing.T) {
	nav, err := task.NewNavigationTask(entities.TaskConfig{}, nil)
	require.NoError(t, err)

	_, err = nav.Reset(nil)
	assert.ErrorIs(t, err, task.ErrNoEpisode)

	_, err = nav.Reset((*entities.Episode)(nil))
	assert.ErrorIs(t, err, task.ErrNoEpisode)
}

func TestVLNTask_ResetTypedNil(t *testing.T) {
	for name, sensors := range map[string][]ports.Sensor{
		"no sensors":  nil,
		"instruction": instructionSensors(t),
	} {
		t.Run(name, func(t *testing.T) {
			vln, err := task.NewVLNTask(entities.TaskConfig{Type: "VLN-v0"}, sensors)
			require.NoError(t, err)

			assert.NotPanics(t, func() {
				_, err = vln.Reset((*entities.VLNEpisode)(nil))
			})
			assert.ErrorIs(t, err, task.ErrNoEpisode)
			assert.False(t, vln.IsEpisodeActive())
		})
	}
}

func TestVLNTask_ResetPropagatesSensorFailure(t *testing.T) {
	vln, err := task.NewVLNTask(entities.TaskConfig{}, instructionSensors(t))
	require.NoError(t, err)

	ep := testutil.KitchenEpisode(t)
	ep.Instruction = nil

	_, err = vln.Reset(ep)
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, errors.ErrMissingInstruction))
	assert.False(t, vln.IsEpisodeActive())
}

func TestVLNTask_DuplicateSensor(t *testing.T) {
	sensors := append(instructionSensors(t), instructionSensors(t)...)
	_, err := task.NewVLNTask(entities.TaskConfig{}, sensors)
	require.Error(t, err)
}
