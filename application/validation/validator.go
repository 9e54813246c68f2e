// Package validation checks raw dataset records against the episode schema a
// task registered, before any record is decoded.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/embodied-nav/vln-sdk/domain/entities"
	domainerrors "github.com/embodied-nav/vln-sdk/domain/errors"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// SchemaSource provides stored episode schemas by task name.
type SchemaSource interface {
	EpisodeSchema(name string) (string, bool)
}

// schemaCacheSize bounds how many compiled task schemas a validator keeps.
const schemaCacheSize = 32

// EpisodeValidator implements ports.EpisodeValidator using JSON schemas.
// Compiled schemas are cached per task. It is safe for concurrent use.
type EpisodeValidator struct {
	source   SchemaSource
	compiled *lru.Cache[string, *jsonschema.Schema]
}

var _ ports.EpisodeValidator = (*EpisodeValidator)(nil)

// NewEpisodeValidator creates a validator reading schemas from source.
func NewEpisodeValidator(source SchemaSource) *EpisodeValidator {
	cache, err := lru.New[string, *jsonschema.Schema](schemaCacheSize)
	if err != nil {
		panic(fmt.Sprintf("validation: schema cache: %v", err))
	}
	return &EpisodeValidator{source: source, compiled: cache}
}

// Validate checks every raw record against the task's episode schema. A record
// failing the schema adds one entry per leaf error to the result; an error is
// returned only when the schema itself is unavailable.
func (v *EpisodeValidator) Validate(task string, records [][]byte) (*entities.ValidationResult, error) {
	sch, err := v.schema(task)
	if err != nil {
		return nil, err
	}

	result := &entities.ValidationResult{Valid: true}
	for i, raw := range records {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var obj any
		if err := dec.Decode(&obj); err != nil {
			result.Errors = append(result.Errors, entities.ValidationError{
				Index:   i,
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		if err := sch.Validate(obj); err != nil {
			result.Errors = append(result.Errors, flatten(i, err)...)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}

// ValidateValue checks an already decoded value by round-tripping it through
// JSON.
func (v *EpisodeValidator) ValidateValue(task string, value any) (*entities.ValidationResult, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare validation object: %w", err)
	}
	return v.Validate(task, [][]byte{raw})
}

func (v *EpisodeValidator) schema(task string) (*jsonschema.Schema, error) {
	if sch, ok := v.compiled.Get(task); ok {
		return sch, nil
	}

	doc, ok := v.source.EpisodeSchema(task)
	if !ok {
		return nil, &domainerrors.SchemaError{
			Type: task,
			Err:  fmt.Errorf("no episode schema registered for task %s", task),
		}
	}

	url := "vln:///" + task + "/episode.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(doc)); err != nil {
		return nil, &domainerrors.SchemaError{Type: task, Err: err}
	}
	sch, err := compiler.Compile(url)
	if err != nil {
		return nil, &domainerrors.SchemaError{Type: task, Err: err}
	}

	v.compiled.Add(task, sch)
	return sch, nil
}

// flatten turns a schema validation error into one entry per leaf cause.
func flatten(index int, err error) []entities.ValidationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []entities.ValidationError{{Index: index, Message: err.Error()}}
	}

	var out []entities.ValidationError
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, entities.ValidationError{
				Index:   index,
				Field:   e.InstanceLocation,
				Message: e.Message,
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}
