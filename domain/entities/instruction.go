package entities

// InstructionData is the natural-language instruction attached to a VLN episode.
type InstructionData struct {
	InstructionText string `json:"instruction_text" yaml:"instruction_text"`

	// InstructionTokens is optional; nil means the dataset shipped no tokenization.
	InstructionTokens []string `json:"instruction_tokens,omitempty" yaml:"instruction_tokens,omitempty" jsonschema:"oneof_type=array;null"`
}

// VLNEpisode is a navigation episode augmented with an instruction and the
// ground-truth path the instruction describes.
//
// Instances are built by the episode builder in application/episode, which rejects
// any record missing one of the required fields. The episode owns its path,
// instruction and goals; nothing mutates them after construction.
type VLNEpisode struct {
	Episode

	// Path is the ordered sequence of 3D points of the reference trajectory.
	Path []Vec3 `json:"path" yaml:"path"`

	Instruction *InstructionData `json:"instruction" yaml:"instruction"`

	// TrajectoryID links the episode to its ground-truth trajectory.
	TrajectoryID int `json:"trajectory_id" yaml:"trajectory_id"`

	Goals []NavigationGoal `json:"goals" yaml:"goals"`
}

// Base returns the embedded base record, or nil for a nil episode.
func (e *VLNEpisode) Base() *Episode {
	if e == nil {
		return nil
	}
	return &e.Episode
}

// Dataset is an ordered collection of VLN episodes loaded from one split file.
type Dataset struct {
	Episodes []*VLNEpisode `json:"episodes"`
}

// Episode returns the episode with the given id, or nil.
func (d *Dataset) Episode(id string) *VLNEpisode {
	for _, ep := range d.Episodes {
		if ep.EpisodeID == id {
			return ep
		}
	}
	return nil
}

// SceneIDs returns the distinct scene ids in first-seen order.
func (d *Dataset) SceneIDs() []string {
	seen := make(map[string]struct{}, len(d.Episodes))
	var ids []string
	for _, ep := range d.Episodes {
		if _, ok := seen[ep.SceneID]; ok {
			continue
		}
		seen[ep.SceneID] = struct{}{}
		ids = append(ids, ep.SceneID)
	}
	return ids
}
