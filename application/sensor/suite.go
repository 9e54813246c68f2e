package sensor

import (
	"fmt"
	"slices"

	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// Suite holds the sensors of a task keyed by uuid and merges their outputs.
type Suite struct {
	sensors map[string]ports.Sensor
	order   []string
}

// NewSuite builds a suite. Two sensors sharing a uuid is an error since their
// outputs would collide in the bundle.
func NewSuite(sensors ...ports.Sensor) (*Suite, error) {
	s := &Suite{sensors: make(map[string]ports.Sensor, len(sensors))}
	for _, sn := range sensors {
		if sn == nil {
			return nil, fmt.Errorf("sensor suite: nil sensor")
		}
		uuid := sn.UUID()
		if _, exists := s.sensors[uuid]; exists {
			return nil, fmt.Errorf("sensor suite: duplicate uuid %q", uuid)
		}
		s.sensors[uuid] = sn
		s.order = append(s.order, uuid)
	}
	return s, nil
}

// Get returns the sensor with the given uuid.
func (s *Suite) Get(uuid string) (ports.Sensor, bool) {
	sn, ok := s.sensors[uuid]
	return sn, ok
}

// UUIDs returns sensor uuids in registration order.
func (s *Suite) UUIDs() []string {
	return slices.Clone(s.order)
}

// Observations asks every sensor for its output on episode, in registration
// order, and returns the merged bundle. Each sensor sees what earlier sensors
// produced this step. The first sensor error aborts the step.
func (s *Suite) Observations(episode ports.Episode) (entities.Observations, error) {
	obs := make(entities.Observations, len(s.order))
	for _, uuid := range s.order {
		v, err := s.sensors[uuid].Observation(obs, episode)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", uuid, err)
		}
		obs[uuid] = v
	}
	return obs, nil
}

// Spaces returns every sensor's declared observation space keyed by uuid.
func (s *Suite) Spaces() map[string]entities.BoxSpace {
	spaces := make(map[string]entities.BoxSpace, len(s.order))
	for _, uuid := range s.order {
		spaces[uuid] = s.sensors[uuid].ObservationSpace()
	}
	return spaces
}
