// Package registry maps string identifiers to sensor and task factories so
// configurations can select components by name.
package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/embodied-nav/vln-sdk/application/schema"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/errors"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// registryConfig holds configuration for the Registry.
type registryConfig struct {
	strictMode bool // Fail on duplicate registrations
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		strictMode: true,
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithStrictMode enables/disables strict mode for duplicate registrations.
// Default is true (fail on duplicates). Disable only for testing or hot-reloading.
func WithStrictMode(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.strictMode = enabled
	}
}

type sensorEntry struct {
	factory ports.SensorFactory
	schema  string
}

type taskEntry struct {
	factory ports.TaskFactory
	schema  string
}

// Registry implements ports.Registry. It is safe for concurrent use.
type Registry struct {
	config  registryConfig
	mu      sync.RWMutex
	sensors map[string]sensorEntry
	tasks   map[string]taskEntry
}

var _ ports.Registry = (*Registry)(nil)

// Default is the process-wide registry populated at startup.
var Default = New()

// New creates an empty Registry with the given options.
func New(opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{
		config:  cfg,
		sensors: make(map[string]sensorEntry),
		tasks:   make(map[string]taskEntry),
	}
}

// RegisterSensor binds factory to name. model is a sample observation payload
// whose JSON schema is stored with the entry; nil stores no schema.
func (r *Registry) RegisterSensor(name string, factory ports.SensorFactory, model any) error {
	if name == "" || factory == nil {
		return fmt.Errorf("sensor registration needs a name and a factory")
	}
	doc, err := schemaFor(name, model)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sensors[name]; exists && r.config.strictMode {
		return &errors.RegistryError{Kind: "sensor", Name: name, Op: "register", Err: errors.ErrDuplicate}
	}
	r.sensors[name] = sensorEntry{factory: factory, schema: doc}
	slog.Debug("registered sensor", "name", name)
	return nil
}

// RegisterTask binds factory to name. episodeModel is a sample of the episode
// type the task consumes; its JSON schema is stored with the entry.
func (r *Registry) RegisterTask(name string, factory ports.TaskFactory, episodeModel any) error {
	if name == "" || factory == nil {
		return fmt.Errorf("task registration needs a name and a factory")
	}
	doc, err := schemaFor(name, episodeModel)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[name]; exists && r.config.strictMode {
		return &errors.RegistryError{Kind: "task", Name: name, Op: "register", Err: errors.ErrDuplicate}
	}
	r.tasks[name] = taskEntry{factory: factory, schema: doc}
	slog.Debug("registered task", "name", name)
	return nil
}

// MustRegisterSensor registers a sensor or panics. Use this in init() functions.
func (r *Registry) MustRegisterSensor(name string, factory ports.SensorFactory, model any) {
	if err := r.RegisterSensor(name, factory, model); err != nil {
		panic(fmt.Sprintf("failed to register sensor: %v", err))
	}
}

// MustRegisterTask registers a task or panics. Use this in init() functions.
func (r *Registry) MustRegisterTask(name string, factory ports.TaskFactory, episodeModel any) {
	if err := r.RegisterTask(name, factory, episodeModel); err != nil {
		panic(fmt.Sprintf("failed to register task: %v", err))
	}
}

// NewSensor builds the sensor registered under name.
func (r *Registry) NewSensor(name string, cfg map[string]any) (ports.Sensor, error) {
	r.mu.RLock()
	entry, ok := r.sensors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &errors.RegistryError{Kind: "sensor", Name: name, Op: "lookup", Err: errors.ErrNotFound}
	}

	s, err := entry.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("build sensor %s: %w", name, err)
	}
	return s, nil
}

// NewTask builds every sensor listed in cfg, then the task named by cfg.Type.
func (r *Registry) NewTask(cfg entities.TaskConfig) (ports.Task, error) {
	r.mu.RLock()
	entry, ok := r.tasks[cfg.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, &errors.RegistryError{Kind: "task", Name: cfg.Type, Op: "lookup", Err: errors.ErrNotFound}
	}

	sensors := make([]ports.Sensor, 0, len(cfg.Sensors))
	for _, name := range cfg.Sensors {
		s, err := r.NewSensor(name, cfg.SensorConfigs[name])
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, s)
	}

	t, err := entry.factory(cfg, sensors)
	if err != nil {
		return nil, fmt.Errorf("build task %s: %w", cfg.Type, err)
	}
	return t, nil
}

// SensorSchema returns the observation JSON schema stored for a sensor.
func (r *Registry) SensorSchema(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sensors[name]
	if !ok || e.schema == "" {
		return "", false
	}
	return e.schema, true
}

// EpisodeSchema returns the episode JSON schema stored for a task.
func (r *Registry) EpisodeSchema(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tasks[name]
	if !ok || e.schema == "" {
		return "", false
	}
	return e.schema, true
}

// Sensors returns all registered sensor names, sorted.
func (r *Registry) Sensors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.sensors)
}

// Tasks returns all registered task names, sorted.
func (r *Registry) Tasks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.tasks)
}

func schemaFor(name string, model any) (string, error) {
	if model == nil {
		return "", nil
	}
	data, err := schema.GenerateSchema(model)
	if err != nil {
		return "", &errors.SchemaError{Type: name, Err: err}
	}
	return string(data), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
