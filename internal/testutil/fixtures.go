package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embodied-nav/vln-sdk/application/episode"
	"github.com/embodied-nav/vln-sdk/domain/entities"
)

// KitchenText is the instruction text of KitchenParams.
const KitchenText = "go to the kitchen"

// KitchenTrajectoryID is the trajectory id of KitchenParams.
const KitchenTrajectoryID = 42

// KitchenTokens returns a fresh copy of the kitchen instruction tokens.
func KitchenTokens() []string {
	return []string{"go", "to", "the", "kitchen"}
}

// KitchenParams returns valid params for a short kitchen episode.
func KitchenParams() episode.Params {
	pos := entities.Vec3{-3.2, 0.17, 1.5}
	rot := entities.Quaternion{0, 0.7071, 0, 0.7071}
	traj := KitchenTrajectoryID
	radius := 3.0
	text := KitchenText
	return episode.Params{
		EpisodeID:     "1",
		SceneID:       "mp3d/17DRP5sb8fy/17DRP5sb8fy.glb",
		StartPosition: &pos,
		StartRotation: &rot,
		Info:          map[string]any{"geodesic_distance": 6.42},
		Path: []entities.Vec3{
			{-3.2, 0.17, 1.5},
			{-1.0, 0.17, 2.1},
			{0.8, 0.17, 4.4},
		},
		Instruction: &episode.InstructionParams{
			InstructionText:   &text,
			InstructionTokens: KitchenTokens(),
		},
		TrajectoryID: &traj,
		Goals: []entities.NavigationGoal{
			{Position: entities.Vec3{0.8, 0.17, 4.4}, Radius: &radius},
		},
	}
}

// MustEpisode builds an episode from params or fails the test.
func MustEpisode(t *testing.T, params episode.Params) *entities.VLNEpisode {
	t.Helper()
	ep, err := episode.New(params)
	require.NoError(t, err)
	return ep
}

// KitchenEpisode builds the kitchen fixture episode.
func KitchenEpisode(t *testing.T) *entities.VLNEpisode {
	t.Helper()
	return MustEpisode(t, KitchenParams())
}

// KitchenJSON is the kitchen episode as it appears in a dataset file.
const KitchenJSON = `{
  "episode_id": "1",
  "scene_id": "mp3d/17DRP5sb8fy/17DRP5sb8fy.glb",
  "start_position": [-3.2, 0.17, 1.5],
  "start_rotation": [0, 0.7071, 0, 0.7071],
  "info": {"geodesic_distance": 6.42},
  "path": [[-3.2, 0.17, 1.5], [-1.0, 0.17, 2.1], [0.8, 0.17, 4.4]],
  "instruction": {
    "instruction_text": "go to the kitchen",
    "instruction_tokens": ["go", "to", "the", "kitchen"]
  },
  "trajectory_id": 42,
  "goals": [{"position": [0.8, 0.17, 4.4], "radius": 3.0}]
}`
