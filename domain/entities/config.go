package entities

// Default task and sensor names bound by this module.
const (
	DefaultTaskType   = "VLN-v0"
	DefaultSensorName = "InstructionSensor"
)

// Config is the top-level configuration for running VLN tasks.
type Config struct {
	// LogLevel is the logging verbosity level ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	// LogFormat selects the log encoding ("text" or "json").
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`

	Task TaskConfig `json:"task" yaml:"task"`

	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`
}

// TaskConfig selects a registered task and the sensors attached to it.
type TaskConfig struct {
	// Type is the registry name of the task, e.g. "VLN-v0".
	Type string `json:"type" yaml:"type" validate:"required"`

	// Sensors lists registry names of the sensors to build for the task.
	Sensors []string `json:"sensors" yaml:"sensors" validate:"dive,required"`

	// MaxEpisodeSteps ends an episode after this many steps. Zero means unbounded.
	MaxEpisodeSteps int `json:"max_episode_steps,omitempty" yaml:"max_episode_steps,omitempty" validate:"gte=0"`

	// SensorConfigs holds per-sensor keyword arguments keyed by sensor name.
	SensorConfigs map[string]map[string]any `json:"sensor_configs,omitempty" yaml:"sensor_configs,omitempty"`
}

// DatasetConfig locates the episode file for a split.
type DatasetConfig struct {
	// Path is a JSON or gzip-compressed JSON episode file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	Split string `json:"split,omitempty" yaml:"split,omitempty"`

	// Strict fails the load on the first invalid episode instead of skipping it.
	Strict bool `json:"strict" yaml:"strict"`

	// SchemaCheck validates raw episode JSON against the task's episode schema
	// before decoding.
	SchemaCheck bool `json:"schema_check,omitempty" yaml:"schema_check,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Task: TaskConfig{
			Type:    DefaultTaskType,
			Sensors: []string{DefaultSensorName},
		},
		Dataset: DatasetConfig{
			Split:  "train",
			Strict: true,
		},
	}
}

// ConfigOption is a functional option for adjusting a Config.
type ConfigOption func(*Config)

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// WithDatasetPath sets the dataset file path.
func WithDatasetPath(path string) ConfigOption {
	return func(c *Config) {
		if path != "" {
			c.Dataset.Path = path
		}
	}
}

// WithMaxEpisodeSteps sets the per-episode step limit.
func WithMaxEpisodeSteps(n int) ConfigOption {
	return func(c *Config) {
		if n >= 0 {
			c.Task.MaxEpisodeSteps = n
		}
	}
}

// WithStrictDataset toggles strict dataset loading.
func WithStrictDataset(strict bool) ConfigOption {
	return func(c *Config) {
		c.Dataset.Strict = strict
	}
}

// NewConfig returns DefaultConfig with the options applied.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
