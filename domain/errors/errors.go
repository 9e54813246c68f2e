// Package errors provides domain-specific error types for the VLN extension.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/embodied-nav/vln-sdk/domain/entities"
)

// Sentinels matched with errors.Is.
var (
	// ErrNullField marks a required episode field that was absent at construction.
	ErrNullField = stdErrors.New("required field is null")

	// ErrMissingInstruction marks a sensor read of an episode without instruction.
	ErrMissingInstruction = stdErrors.New("episode has no instruction")

	// ErrDuplicate marks a registration under a name that is already taken.
	ErrDuplicate = stdErrors.New("already registered")

	// ErrNotFound marks a lookup of a name nobody registered.
	ErrNotFound = stdErrors.New("not registered")
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can convert themselves to a
// structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// Rules reported by ValidationError.
const (
	RuleRequired = "required"
)

// ValidationError is a construction-time failure of one episode field.
type ValidationError struct {
	// Field is the dataset name of the field, e.g. "instruction".
	Field string
	// Rule is the constraint that failed, e.g. "required".
	Rule string
}

func (e *ValidationError) Error() string {
	if e.Rule == RuleRequired {
		return fmt.Sprintf("episode validation failed for field '%s': must not be null", e.Field)
	}
	return fmt.Sprintf("episode validation failed for field '%s': rule %s", e.Field, e.Rule)
}

// Is reports ErrNullField for required-rule failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrNullField && e.Rule == RuleRequired
}

// ToErrorDetail implements DetailedError.
func (e *ValidationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: e.Field}
}

// AccessError is returned when a consumer reads a field that the episode
// contract guarantees is set, but it is not.
type AccessError struct {
	Field     string
	EpisodeID string
}

func (e *AccessError) Error() string {
	if e.EpisodeID != "" {
		return fmt.Sprintf("episode %s: cannot access %s: field is nil", e.EpisodeID, e.Field)
	}
	return fmt.Sprintf("cannot access %s: field is nil", e.Field)
}

// Unwrap returns the sentinel for the missing field.
func (e *AccessError) Unwrap() error {
	if e.Field == "instruction" {
		return ErrMissingInstruction
	}
	return nil
}

// ToErrorDetail implements DetailedError.
func (e *AccessError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "access", Code: e.Field}
}

// EpisodeTypeError is returned when a component receives an episode flavour it
// cannot read.
type EpisodeTypeError struct {
	Want string
	Got  string
}

func (e *EpisodeTypeError) Error() string {
	return fmt.Sprintf("unexpected episode type: want %s, got %s", e.Want, e.Got)
}

// ToErrorDetail implements DetailedError.
func (e *EpisodeTypeError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "episode_type"}
}

// RegistryError reports a failed registration or lookup.
type RegistryError struct {
	Err  error
	Kind string // "sensor" or "task"
	Name string
	Op   string // "register" or "lookup"
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Kind, e.Op, e.Name, e.Err)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *RegistryError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message:    e.Error(),
		Type:       "registry",
		Code:       e.Kind + "_" + e.Op,
		IsNotFound: stdErrors.Is(e.Err, ErrNotFound),
	}
}

// DatasetError reports an episode that could not be parsed or built.
type DatasetError struct {
	Err       error
	Source    string
	EpisodeID string
	Index     int
}

func (e *DatasetError) Error() string {
	loc := fmt.Sprintf("episode #%d", e.Index)
	if e.EpisodeID != "" {
		loc = fmt.Sprintf("episode #%d (%s)", e.Index, e.EpisodeID)
	}
	if e.Source != "" {
		return fmt.Sprintf("dataset %s: %s: %v", e.Source, loc, e.Err)
	}
	return fmt.Sprintf("dataset: %s: %v", loc, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *DatasetError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "dataset",
		Code:    e.EpisodeID,
		Wrapped: ToErrorDetail(e.Err),
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// SchemaError represents a schema generation or validation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "schema"}
}
