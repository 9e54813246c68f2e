package ports

import "github.com/embodied-nav/vln-sdk/domain/entities"

// Episode is any episode record the host can hand to a sensor or task.
// Every flavour exposes its base record.
type Episode interface {
	Base() *entities.Episode
}

// Sensor produces one named slice of the per-step observation bundle.
type Sensor interface {
	// UUID is the key the host files this sensor's output under.
	UUID() string

	// ObservationSpace declares the value range and shape of the output.
	ObservationSpace() entities.BoxSpace

	// Observation computes this sensor's output for the current episode.
	// observations holds whatever other sensors produced so far this step.
	Observation(observations entities.Observations, episode Episode) (any, error)
}

// SensorFactory builds a sensor from keyword configuration.
type SensorFactory func(cfg map[string]any) (Sensor, error)
