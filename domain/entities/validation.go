package entities

// ValidationResult represents the outcome of validating a batch of raw records.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a specific validation failure.
type ValidationError struct {
	// Index is the position of the offending record in its batch.
	Index int

	// Field is the record field or schema location that failed.
	Field string

	Message string
}
