package task

import (
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// VLNTaskName is the registry name of the VLN task.
const VLNTaskName = "VLN-v0"

// VLNTask is the navigation task bound to VLN configurations. It behaves
// exactly like NavigationTask; it exists so configurations can select it by
// name and so its episode schema is that of entities.VLNEpisode.
type VLNTask struct {
	*NavigationTask
}

var _ ports.Task = (*VLNTask)(nil)

// NewVLNTask creates a VLN task over the given sensors.
func NewVLNTask(cfg entities.TaskConfig, sensors []ports.Sensor) (*VLNTask, error) {
	nav, err := newNavigationTask(VLNTaskName, cfg, sensors)
	if err != nil {
		return nil, err
	}
	return &VLNTask{NavigationTask: nav}, nil
}

// NewVLNTaskFactory adapts NewVLNTask to ports.TaskFactory.
func NewVLNTaskFactory(cfg entities.TaskConfig, sensors []ports.Sensor) (ports.Task, error) {
	return NewVLNTask(cfg, sensors)
}
