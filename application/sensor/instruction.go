// Package sensor implements observation producers and the suite that merges
// their outputs into one per-step bundle.
package sensor

import (
	"fmt"

	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/errors"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// Instruction sensor identity and declared space.
const (
	InstructionSensorName = "InstructionSensor"
	InstructionUUID       = "instruction"

	// InstructionMaxTokens is the padded token-id length the declared space
	// describes.
	InstructionMaxTokens = 200
	InstructionMaxVocab  = 5000
)

// InstructionSensor exposes the current episode's instruction text, tokens and
// trajectory id as the "instruction" observation.
//
// The declared observation space is Box(0, 5000, [200], float32), the shape of a
// padded token-id array. The returned payload is the raw InstructionObservation,
// not such an array; hosts that check shape conformance must not attach this
// sensor.
type InstructionSensor struct {
	uuid  string
	space entities.BoxSpace
}

var _ ports.Sensor = (*InstructionSensor)(nil)

// NewInstructionSensor creates the sensor. Configuration is accepted for factory
// compatibility and ignored: the uuid and space are fixed.
func NewInstructionSensor(_ map[string]any) (ports.Sensor, error) {
	return &InstructionSensor{
		uuid: InstructionUUID,
		space: entities.NewBoxSpace(0, InstructionMaxVocab,
			[]int{InstructionMaxTokens}, entities.DTypeFloat32),
	}, nil
}

// UUID returns "instruction".
func (s *InstructionSensor) UUID() string {
	return s.uuid
}

// ObservationSpace returns the declared Box(0, 5000, [200], float32).
func (s *InstructionSensor) ObservationSpace() entities.BoxSpace {
	return entities.NewBoxSpace(s.space.Low, s.space.High, s.space.Shape, s.space.DType)
}

// Observation reads the instruction off the episode. The observations argument
// is ignored. The result is an entities.InstructionObservation.
func (s *InstructionSensor) Observation(_ entities.Observations, episode ports.Episode) (any, error) {
	ep, ok := episode.(*entities.VLNEpisode)
	if !ok {
		return nil, &errors.EpisodeTypeError{
			Want: "*entities.VLNEpisode",
			Got:  fmt.Sprintf("%T", episode),
		}
	}
	if ep == nil {
		return nil, &errors.AccessError{Field: "episode"}
	}
	if ep.Instruction == nil {
		return nil, &errors.AccessError{Field: "instruction", EpisodeID: ep.EpisodeID}
	}

	return entities.InstructionObservation{
		Text:         ep.Instruction.InstructionText,
		Tokens:       ep.Instruction.InstructionTokens,
		TrajectoryID: ep.TrajectoryID,
	}, nil
}
