// Package task implements the navigation task base and its VLN specialization.
package task

import (
	stdErrors "errors"
	"log/slog"

	"github.com/embodied-nav/vln-sdk/application/sensor"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

var (
	// ErrNoEpisode is returned by Step before the first Reset.
	ErrNoEpisode = stdErrors.New("task: no episode, call Reset first")

	// ErrEpisodeOver is returned by Step once the step limit is reached.
	ErrEpisodeOver = stdErrors.New("task: episode is over, call Reset")
)

// NavigationTaskName is the registry name of the plain navigation task.
const NavigationTaskName = "Nav-v0"

// NavigationTask runs one episode at a time and reports observations from its
// sensor suite. It does not execute actions; the simulator that owns the agent
// calls Step once per simulation step.
type NavigationTask struct {
	name     string
	cfg      entities.TaskConfig
	suite    *sensor.Suite
	episode  ports.Episode
	steps    int
	finished bool
}

var _ ports.Task = (*NavigationTask)(nil)

// NewNavigationTask creates a navigation task over the given sensors.
func NewNavigationTask(cfg entities.TaskConfig, sensors []ports.Sensor) (*NavigationTask, error) {
	return newNavigationTask(NavigationTaskName, cfg, sensors)
}

// NewNavigationTaskFactory adapts NewNavigationTask to ports.TaskFactory.
func NewNavigationTaskFactory(cfg entities.TaskConfig, sensors []ports.Sensor) (ports.Task, error) {
	return NewNavigationTask(cfg, sensors)
}

func newNavigationTask(name string, cfg entities.TaskConfig, sensors []ports.Sensor) (*NavigationTask, error) {
	suite, err := sensor.NewSuite(sensors...)
	if err != nil {
		return nil, err
	}
	return &NavigationTask{name: name, cfg: cfg, suite: suite}, nil
}

// Name returns the registry name of the task.
func (t *NavigationTask) Name() string {
	return t.name
}

// Config returns the configuration the task was built with.
func (t *NavigationTask) Config() entities.TaskConfig {
	return t.cfg
}

// Episode returns the current episode, or nil before the first Reset.
func (t *NavigationTask) Episode() ports.Episode {
	return t.episode
}

// Steps returns how many steps the current episode has taken.
func (t *NavigationTask) Steps() int {
	return t.steps
}

// Reset makes episode current and returns its initial observations. A nil
// episode, including a typed nil pointer, fails with ErrNoEpisode.
func (t *NavigationTask) Reset(episode ports.Episode) (entities.Observations, error) {
	if episode == nil || episode.Base() == nil {
		return nil, ErrNoEpisode
	}

	obs, err := t.suite.Observations(episode)
	if err != nil {
		return nil, err
	}

	t.episode = episode
	t.steps = 0
	t.finished = false

	slog.Debug("task reset",
		"task", t.name,
		"episode_id", episode.Base().EpisodeID,
		"scene_id", episode.Base().SceneID)
	return obs, nil
}

// Step advances the current episode by one step and returns fresh observations.
func (t *NavigationTask) Step() (entities.Observations, error) {
	if t.episode == nil {
		return nil, ErrNoEpisode
	}
	if t.finished {
		return nil, ErrEpisodeOver
	}

	t.steps++
	if t.cfg.MaxEpisodeSteps > 0 && t.steps >= t.cfg.MaxEpisodeSteps {
		t.finished = true
	}

	return t.suite.Observations(t.episode)
}

// IsEpisodeActive reports whether the current episode can still step.
func (t *NavigationTask) IsEpisodeActive() bool {
	return t.episode != nil && !t.finished
}

// ObservationSpaces returns the declared space of every sensor keyed by uuid.
func (t *NavigationTask) ObservationSpaces() map[string]entities.BoxSpace {
	return t.suite.Spaces()
}
