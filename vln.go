// Package vln binds the Vision-and-Language Navigation extension to a task
// registry: the "VLN-v0" task, its base "Nav-v0" task, and the
// "InstructionSensor" that exposes episode instructions to agents.
//
// Importing the package registers everything into registry.Default:
//
//	import _ "github.com/embodied-nav/vln-sdk"
//
//	t, err := registry.Default.NewTask(entities.DefaultConfig().Task)
package vln

import (
	"fmt"

	"github.com/embodied-nav/vln-sdk/application/sensor"
	"github.com/embodied-nav/vln-sdk/application/task"
	"github.com/embodied-nav/vln-sdk/application/template"
	"github.com/embodied-nav/vln-sdk/application/validation"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/host/registry"
	"github.com/embodied-nav/vln-sdk/infrastructure/parser"
)

// Version is the module version reported by tooling.
const Version = "0.3.0"

func init() {
	if err := Register(registry.Default); err != nil {
		panic(fmt.Sprintf("vln: default registration failed: %v", err))
	}
}

// Register binds the VLN sensor and tasks to r.
func Register(r *registry.Registry) error {
	if err := r.RegisterSensor(sensor.InstructionSensorName, sensor.NewInstructionSensor, entities.InstructionObservation{}); err != nil {
		return err
	}
	if err := r.RegisterTask(task.NavigationTaskName, task.NewNavigationTaskFactory, &entities.Episode{}); err != nil {
		return err
	}
	return r.RegisterTask(task.VLNTaskName, task.NewVLNTaskFactory, &entities.VLNEpisode{})
}

// LoadDataset reads the episode file named by cfg.Dataset. The path may
// reference {{.split}} and {{.task}}. With schema checks enabled, records are
// validated against the episode schema r holds for cfg.Task.Type.
func LoadDataset(r *registry.Registry, cfg entities.Config) (*entities.Dataset, error) {
	if cfg.Dataset.Path == "" {
		return nil, fmt.Errorf("dataset path is not configured")
	}
	path, err := template.DatasetPath(template.NewGoTemplateEngine(), cfg)
	if err != nil {
		return nil, err
	}

	opts := []parser.DatasetOption{parser.WithStrict(cfg.Dataset.Strict)}
	if cfg.Dataset.SchemaCheck {
		opts = append(opts, parser.WithSchemaCheck(validation.NewEpisodeValidator(r), cfg.Task.Type))
	}
	return parser.LoadDatasetFile(path, opts...)
}
