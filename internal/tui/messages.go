package tui

import "github.com/rgehrsitz/goalplan/internal/tui/tuimsg"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneGoals Scene = iota
	SceneForm
	SceneResults
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Scene messages are defined in tuimsg so scenes can send them without
// importing this package.
type (
	GoalSelectedMsg        = tuimsg.GoalSelectedMsg
	CalculateRequestMsg    = tuimsg.CalculateRequestMsg
	CalculationCompleteMsg = tuimsg.CalculationCompleteMsg
	BackMsg                = tuimsg.BackMsg
	ErrorMsg               = tuimsg.ErrorMsg
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneGoals:
		return "Goals"
	case SceneForm:
		return "Inputs"
	case SceneResults:
		return "Results"
	default:
		return "Unknown"
	}
}
