package domain

import (
	"errors"
	"strings"
)

// Sentinel errors
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownGoalType = errors.New("unknown goal type")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrUserIDRequired  = errors.New("user id is required")
)

// ValidationError describes a problem with a single input field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field problem found in one input.
// It matches ErrInvalidInput with errors.Is.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add records a field problem
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when nothing was recorded
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// AsValidationErrors extracts field errors from err, if any
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
