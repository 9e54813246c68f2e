package ports

import "github.com/embodied-nav/vln-sdk/domain/entities"

// Task runs episodes and produces observations from its sensors.
type Task interface {
	// Name returns the registry name the task was built under.
	Name() string

	// Reset starts a new episode and returns its first observations.
	Reset(episode Episode) (entities.Observations, error)

	// Step advances the current episode by one step.
	Step() (entities.Observations, error)

	// IsEpisodeActive reports whether the current episode can still step.
	IsEpisodeActive() bool

	// ObservationSpaces returns the declared space of every sensor keyed by uuid.
	ObservationSpaces() map[string]entities.BoxSpace
}

// TaskFactory builds a task from its configuration and already built sensors.
type TaskFactory func(cfg entities.TaskConfig, sensors []Sensor) (Task, error)
