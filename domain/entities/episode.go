package entities

// Vec3 is a position in scene coordinates (x, y, z).
type Vec3 [3]float64

// Quaternion is a rotation stored as (x, y, z, w) components of a unit quaternion.
type Quaternion [4]float64

// Episode is the host's base episode record: where the agent starts and in which scene.
type Episode struct {
	// EpisodeID uniquely identifies the episode within its dataset.
	EpisodeID string `json:"episode_id" yaml:"episode_id"`

	// SceneID identifies the scene the simulator loads for this episode.
	SceneID string `json:"scene_id" yaml:"scene_id"`

	// StartPosition is the agent's initial position.
	StartPosition Vec3 `json:"start_position" yaml:"start_position"`

	// StartRotation is the agent's initial orientation.
	StartRotation Quaternion `json:"start_rotation" yaml:"start_rotation"`

	// Info holds free-form metadata carried through from the dataset.
	Info map[string]any `json:"info,omitempty" yaml:"info,omitempty" jsonschema:"oneof_type=object;null"`
}

// Base returns the episode itself. Types embedding Episode inherit or override
// this method, which lets the host treat any episode flavour through its base
// record. A nil episode has a nil base.
func (e *Episode) Base() *Episode {
	return e
}

// NavigationGoal is a target location the agent is expected to reach.
type NavigationGoal struct {
	Position Vec3 `json:"position" yaml:"position"`

	// Radius is the success radius around Position. Nil means the task default.
	Radius *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}
