package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}
	if m.loading {
		return m.renderApp(InfoStyle.Render("⠋ Calculating plan..."))
	}

	var content string
	switch m.currentScene {
	case SceneGoals:
		content = m.goalsModel.View()
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 0 {
		contentHeight = 0
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("GoalPlan - Goal-Based Financial Planning")

	crumbs := []string{SceneGoals.String()}
	if m.currentScene >= SceneForm {
		if goal := m.formModel.Goal(); goal.Title != "" {
			crumbs = append(crumbs, goal.Title)
		}
	}
	if m.currentScene == SceneResults {
		crumbs = append(crumbs, SceneResults.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(strings.Join(crumbs, " / ")))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneGoals:
		shortcuts = []string{formatShortcut("enter", "select"), formatShortcut("q", "quit")}
	case SceneForm:
		shortcuts = []string{formatShortcut("enter", "calculate"), formatShortcut("esc", "goals"), formatShortcut("ctrl+c", "quit")}
	case SceneResults:
		shortcuts = []string{formatShortcut("esc", "edit"), formatShortcut("n", "new goal"), formatShortcut("q", "quit")}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}
