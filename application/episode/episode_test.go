package episode_test

import (
	"encoding/json"
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embodied-nav/vln-sdk/application/episode"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/errors"
	"github.com/embodied-nav/vln-sdk/internal/testutil"
)

func TestNew_AllFieldsPresent(t *testing.T) {
	ep, err := episode.New(testutil.KitchenParams())
	require.NoError(t, err)

	assert.Equal(t, "1", ep.EpisodeID)
	assert.Equal(t, testutil.KitchenText, ep.Instruction.InstructionText)
	assert.Equal(t, testutil.KitchenTokens(), ep.Instruction.InstructionTokens)
	assert.Equal(t, testutil.KitchenTrajectoryID, ep.TrajectoryID)
	assert.Len(t, ep.Path, 3)
	assert.Len(t, ep.Goals, 1)
	assert.Equal(t, entities.Quaternion{0, 0.7071, 0, 0.7071}, ep.StartRotation)
}

func TestNew_RequiredFieldNull(t *testing.T) {
	tests := []struct {
		field string
		clear func(p *episode.Params)
	}{
		{field: "path", clear: func(p *episode.Params) { p.Path = nil }},
		{field: "instruction", clear: func(p *episode.Params) { p.Instruction = nil }},
		{field: "instruction.instruction_text", clear: func(p *episode.Params) { p.Instruction.InstructionText = nil }},
		{field: "trajectory_id", clear: func(p *episode.Params) { p.TrajectoryID = nil }},
		{field: "goals", clear: func(p *episode.Params) { p.Goals = nil }},
		{field: "episode_id", clear: func(p *episode.Params) { p.EpisodeID = "" }},
		{field: "scene_id", clear: func(p *episode.Params) { p.SceneID = "" }},
		{field: "start_position", clear: func(p *episode.Params) { p.StartPosition = nil }},
		{field: "start_rotation", clear: func(p *episode.Params) { p.StartRotation = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			params := testutil.KitchenParams()
			tt.clear(&params)

			ep, err := episode.New(params)
			require.Error(t, err)
			assert.Nil(t, ep)
			assert.True(t, stdErrors.Is(err, errors.ErrNullField))

			var ve *errors.ValidationError
			require.True(t, stdErrors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, errors.RuleRequired, ve.Rule)
		})
	}
}

func TestNew_MultipleFailuresInDeclarationOrder(t *testing.T) {
	params := testutil.KitchenParams()
	params.Goals = nil
	params.Path = nil

	_, err := episode.New(params)
	require.Error(t, err)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected joined error")
	errs := joined.Unwrap()
	require.Len(t, errs, 2)
	assert.Equal(t, "path", errs[0].(*errors.ValidationError).Field)
	assert.Equal(t, "goals", errs[1].(*errors.ValidationError).Field)
}

func TestNew_ZeroValuesAreNotNull(t *testing.T) {
	params := testutil.KitchenParams()
	zero := 0
	params.TrajectoryID = &zero
	params.Path = []entities.Vec3{}
	params.Goals = []entities.NavigationGoal{}
	empty := ""
	params.Instruction = &episode.InstructionParams{InstructionText: &empty}
	origin := entities.Vec3{}
	params.StartPosition = &origin

	ep, err := episode.New(params)
	require.NoError(t, err)
	assert.Equal(t, 0, ep.TrajectoryID)
	assert.NotNil(t, ep.Path)
	assert.Empty(t, ep.Path)
	assert.NotNil(t, ep.Goals)
	assert.Nil(t, ep.Instruction.InstructionTokens)
	assert.Equal(t, "", ep.Instruction.InstructionText)
}

func TestNew_OwnsItsData(t *testing.T) {
	params := testutil.KitchenParams()
	ep, err := episode.New(params)
	require.NoError(t, err)

	params.Path[0] = entities.Vec3{9, 9, 9}
	params.Instruction.InstructionTokens[0] = "run"
	*params.Goals[0].Radius = 0.1
	*params.Instruction.InstructionText = "changed"
	params.Info["geodesic_distance"] = 0.0

	assert.Equal(t, entities.Vec3{-3.2, 0.17, 1.5}, ep.Path[0])
	assert.Equal(t, "go", ep.Instruction.InstructionTokens[0])
	assert.Equal(t, 3.0, *ep.Goals[0].Radius)
	assert.Equal(t, testutil.KitchenText, ep.Instruction.InstructionText)
	assert.Equal(t, 6.42, ep.Info["geodesic_distance"])
}

func TestParams_DecodeFromJSON(t *testing.T) {
	var params episode.Params
	require.NoError(t, json.Unmarshal([]byte(testutil.KitchenJSON), &params))

	ep, err := episode.New(params)
	require.NoError(t, err)
	assert.Equal(t, testutil.KitchenEpisode(t).Path, ep.Path)
	assert.Equal(t, 6.42, ep.Info["geodesic_distance"])
}

func TestParams_DecodeNullInstruction(t *testing.T) {
	raw := `{"episode_id": "2", "scene_id": "s", "start_position": [0,0,0],
	"start_rotation": [0,0,0,1], "path": [], "instruction": null,
	"trajectory_id": 7, "goals": []}`

	var params episode.Params
	require.NoError(t, json.Unmarshal([]byte(raw), &params))

	_, err := episode.New(params)
	var ve *errors.ValidationError
	require.True(t, stdErrors.As(err, &ve))
	assert.Equal(t, "instruction", ve.Field)
}

func TestParams_DecodeMissingInstructionText(t *testing.T) {
	for name, instruction := range map[string]string{
		"absent": `{}`,
		"null":   `{"instruction_text": null, "instruction_tokens": ["go"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			raw := `{"episode_id": "3", "scene_id": "s", "start_position": [0,0,0],
			"start_rotation": [0,0,0,1], "path": [], "instruction": ` + instruction + `,
			"trajectory_id": 7, "goals": []}`

			var params episode.Params
			require.NoError(t, json.Unmarshal([]byte(raw), &params))

			ep, err := episode.New(params)
			assert.Nil(t, ep)
			assert.ErrorIs(t, err, errors.ErrNullField)

			var ve *errors.ValidationError
			require.True(t, stdErrors.As(err, &ve))
			assert.Equal(t, "instruction.instruction_text", ve.Field)
		})
	}
}

func TestFromEpisode_RoundTrip(t *testing.T) {
	ep := testutil.KitchenEpisode(t)

	rebuilt, err := episode.New(episode.FromEpisode(ep))
	require.NoError(t, err)
	assert.Equal(t, ep, rebuilt)
}

func TestFromEpisode_NilInstructionFailsValidation(t *testing.T) {
	ep := testutil.KitchenEpisode(t)
	ep.Instruction = nil

	err := episode.Validate(episode.FromEpisode(ep))
	assert.ErrorIs(t, err, errors.ErrNullField)
}
