// Package transform implements composable what-if edits over a goal plan.
package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// PlanTransform defines the interface for all plan transformations.
// Transforms receive a copy of the plan and return a modified copy; the base
// plan is never mutated, so the same base can feed any number of what-ifs.
type PlanTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error)

	// Name returns a short identifier for this transform (e.g., "delay_goal").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against the plan without applying it.
	Validate(base domain.GoalPlanInput) error
}

// ApplyTransforms applies a sequence of transforms to a base plan, each
// receiving the output of the previous one.
func ApplyTransforms(base domain.GoalPlanInput, transforms []PlanTransform) (domain.GoalPlanInput, error) {
	current := base.Clone()
	for i, t := range transforms {
		if t == nil {
			return domain.GoalPlanInput{}, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return domain.GoalPlanInput{}, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current.Clone())
		if err != nil {
			return domain.GoalPlanInput{}, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
