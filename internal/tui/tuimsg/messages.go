// Package tuimsg holds the messages scenes send to the root model
package tuimsg

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// GoalSelectedMsg signals a goal type was chosen
type GoalSelectedMsg struct {
	GoalType domain.GoalType
}

// CalculateRequestMsg asks the root model to plan an input
type CalculateRequestMsg struct {
	Input domain.GoalPlanInput
}

// CalculationCompleteMsg carries the outcome of a calculation
type CalculationCompleteMsg struct {
	Input  domain.GoalPlanInput
	Result *domain.CalculationResult
	Err    error
}

// BackMsg asks the root model to leave the current scene
type BackMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
