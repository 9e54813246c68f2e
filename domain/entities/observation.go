package entities

// Observations is the per-step bundle the host assembles from every active
// sensor, keyed by sensor uuid.
type Observations map[string]any

// InstructionObservation is what the instruction sensor reports each step.
type InstructionObservation struct {
	Text         string   `json:"text"`
	Tokens       []string `json:"tokens"`
	TrajectoryID int      `json:"trajectory_id"`
}

// AsMap returns the observation as a mapping with exactly the keys
// text, tokens and trajectory_id.
func (o InstructionObservation) AsMap() map[string]any {
	return map[string]any{
		"text":          o.Text,
		"tokens":        o.Tokens,
		"trajectory_id": o.TrajectoryID,
	}
}
