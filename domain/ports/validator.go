package ports

import "github.com/embodied-nav/vln-sdk/domain/entities"

// EpisodeValidator checks raw episode records against a task's episode schema.
type EpisodeValidator interface {
	// Validate checks each raw JSON record and reports every failure.
	Validate(task string, records [][]byte) (*entities.ValidationResult, error)
}
