// Package episode builds VLN episodes from raw parameters, rejecting any record
// whose required fields are absent before it can reach a simulation loop.
package episode

import (
	stdErrors "errors"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/errors"
)

// validate is a package-level singleton; validators cache struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their dataset names rather than Go names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Params carries the raw fields of one VLN episode. Nil-able fields distinguish
// "absent" from a zero value; they decode directly from dataset JSON.
type Params struct {
	EpisodeID     string               `json:"episode_id" validate:"required"`
	SceneID       string               `json:"scene_id" validate:"required"`
	StartPosition *entities.Vec3       `json:"start_position" validate:"required"`
	StartRotation *entities.Quaternion `json:"start_rotation" validate:"required"`
	Info          map[string]any       `json:"info,omitempty"`

	Path         []entities.Vec3           `json:"path" validate:"required"`
	Instruction  *InstructionParams        `json:"instruction" validate:"required"`
	TrajectoryID *int                      `json:"trajectory_id" validate:"required"`
	Goals        []entities.NavigationGoal `json:"goals" validate:"required"`
}

// InstructionParams carries the raw instruction of an episode. An empty text is
// valid; an absent or null one is not.
type InstructionParams struct {
	InstructionText   *string  `json:"instruction_text" validate:"required"`
	InstructionTokens []string `json:"instruction_tokens,omitempty"`
}

// New validates params and builds the episode. Every absent required field is
// reported as an *errors.ValidationError; several failures are joined in field
// declaration order. Info is cloned shallowly: nested maps or slices inside it
// stay shared with the caller.
func New(params Params) (*entities.VLNEpisode, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}

	ep := &entities.VLNEpisode{
		Episode: entities.Episode{
			EpisodeID:     params.EpisodeID,
			SceneID:       params.SceneID,
			StartPosition: *params.StartPosition,
			StartRotation: *params.StartRotation,
			Info:          maps.Clone(params.Info),
		},
		Path:         slices.Clone(params.Path),
		TrajectoryID: *params.TrajectoryID,
		Goals:        cloneGoals(params.Goals),
		Instruction: &entities.InstructionData{
			InstructionText:   *params.Instruction.InstructionText,
			InstructionTokens: slices.Clone(params.Instruction.InstructionTokens),
		},
	}
	return ep, nil
}

// Validate checks params without building an episode.
func Validate(params Params) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &errors.ValidationError{Field: fieldPath(fe.Namespace()), Rule: fe.Tag()})
	}
	return stdErrors.Join(errs...)
}

// FromEpisode returns the params an existing episode was built from.
func FromEpisode(ep *entities.VLNEpisode) Params {
	pos := ep.StartPosition
	rot := ep.StartRotation
	traj := ep.TrajectoryID
	p := Params{
		EpisodeID:     ep.EpisodeID,
		SceneID:       ep.SceneID,
		StartPosition: &pos,
		StartRotation: &rot,
		Info:          maps.Clone(ep.Info),
		Path:          slices.Clone(ep.Path),
		TrajectoryID:  &traj,
		Goals:         cloneGoals(ep.Goals),
	}
	if ep.Instruction != nil {
		text := ep.Instruction.InstructionText
		p.Instruction = &InstructionParams{
			InstructionText:   &text,
			InstructionTokens: slices.Clone(ep.Instruction.InstructionTokens),
		}
	}
	return p
}

// fieldPath drops the root struct name from a validator namespace, so nested
// failures read "instruction.instruction_text".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func cloneGoals(goals []entities.NavigationGoal) []entities.NavigationGoal {
	if goals == nil {
		return nil
	}
	out := make([]entities.NavigationGoal, len(goals))
	for i, g := range goals {
		out[i] = entities.NavigationGoal{Position: g.Position}
		if g.Radius != nil {
			r := *g.Radius
			out[i].Radius = &r
		}
	}
	return out
}
