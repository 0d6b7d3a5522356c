// Package tui is the interactive terminal planner: choose a goal, fill in
// its inputs and read the plan.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	engine *calculation.CalculationEngine

	goalsModel   *scenes.GoalsModel
	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel

	err error

	loading bool
}

// NewModel creates a new application model
func NewModel(engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		currentScene: SceneGoals,
		engine:       engine,
		goalsModel:   scenes.NewGoalsModel(engine.Profiles.List()),
		formModel:    scenes.NewFormModel(),
		resultsModel: scenes.NewResultsModel(),
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// Scene returns the scene on screen
func (m Model) Scene() Scene {
	return m.currentScene
}

// Err returns the error on screen, if any
func (m Model) Err() error {
	return m.err
}

// Form returns the input form scene
func (m Model) Form() *scenes.FormModel {
	return m.formModel
}

// Results returns the results scene
func (m Model) Results() *scenes.ResultsModel {
	return m.resultsModel
}

// calculateCmd returns a command that plans an input off the update loop
func calculateCmd(engine *calculation.CalculationEngine, in domain.GoalPlanInput) tea.Cmd {
	return func() tea.Msg {
		res, err := engine.Calculate(context.Background(), in)
		return CalculationCompleteMsg{Input: in, Result: res, Err: err}
	}
}
