package ports

import "github.com/embodied-nav/vln-sdk/domain/entities"

// Registry maps string identifiers to sensor and task factories.
type Registry interface {
	// RegisterSensor binds a sensor factory to name. model is a sample of the
	// sensor's observation payload, used to derive its JSON schema.
	RegisterSensor(name string, factory SensorFactory, model any) error

	// RegisterTask binds a task factory to name. episodeModel is a sample of the
	// episode type the task consumes, used to derive its JSON schema.
	RegisterTask(name string, factory TaskFactory, episodeModel any) error

	// NewSensor builds the sensor registered under name.
	NewSensor(name string, cfg map[string]any) (Sensor, error)

	// NewTask builds every configured sensor and then the task itself.
	NewTask(cfg entities.TaskConfig) (Task, error)

	// SensorSchema returns the observation JSON schema of a sensor.
	SensorSchema(name string) (string, bool)

	// EpisodeSchema returns the episode JSON schema of a task.
	EpisodeSchema(name string) (string, bool)

	// Sensors returns registered sensor names, sorted.
	Sensors() []string

	// Tasks returns registered task names, sorted.
	Tasks() []string
}
