package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/tui/scenes"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.goalsModel.SetSize(msg.Width, msg.Height-4)
		m.formModel.SetSize(msg.Width, msg.Height-4)
		m.resultsModel.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case GoalSelectedMsg:
		p, err := m.engine.Profiles.Lookup(msg.GoalType)
		if err != nil {
			m.err = err
			return m, nil
		}
		cmd := m.formModel.SetGoal(p)
		m.currentScene = SceneForm
		return m, cmd

	case CalculateRequestMsg:
		m.loading = true
		return m, calculateCmd(m.engine, msg.Input)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			if verrs, ok := domain.AsValidationErrors(msg.Err); ok {
				m.formModel.SetErrors(verrs)
				m.currentScene = SceneForm
				return m, nil
			}
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResult(msg.Input, msg.Result, m.formModel.Goal())
		m.currentScene = SceneResults
		return m, nil

	case BackMsg:
		switch m.currentScene {
		case SceneResults:
			m.currentScene = SceneForm
		case SceneForm:
			m.currentScene = SceneGoals
		}
		return m, nil

	case scenes.NewGoalMsg:
		m.currentScene = SceneGoals
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		// The form takes q as text.
		if m.currentScene != SceneForm {
			return m, tea.Quit
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
