package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/tui/components"
	"github.com/rgehrsitz/goalplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// GoalsModel is the goal type chooser
type GoalsModel struct {
	profiles      []profile.GoalProfile
	selectedIndex int
	width         int
	height        int
}

// NewGoalsModel lists the given profiles in registry order
func NewGoalsModel(profiles []profile.GoalProfile) *GoalsModel {
	return &GoalsModel{profiles: profiles}
}

// SetSize updates the scene dimensions
func (m *GoalsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted profile
func (m *GoalsModel) Selected() (profile.GoalProfile, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.profiles) {
		return profile.GoalProfile{}, false
	}
	return m.profiles[m.selectedIndex], true
}

// Update handles messages for the chooser
func (m *GoalsModel) Update(msg tea.Msg) (*GoalsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.profiles)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		p, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.GoalSelectedMsg{GoalType: p.Type}
		}
	}
	return m, nil
}

// View renders the chooser
func (m *GoalsModel) View() string {
	if len(m.profiles) == 0 {
		return tuistyles.SubtitleStyle.Render("No goal types are configured.")
	}

	header := tuistyles.TitleStyle.Render("What are you planning for?")

	// Keep the highlighted card on screen in short terminals.
	visible := len(m.profiles)
	if m.height > 0 {
		if fit := (m.height - 6) / 5; fit > 0 && fit < visible {
			visible = fit
		}
	}
	start := 0
	if m.selectedIndex >= visible {
		start = m.selectedIndex - visible + 1
	}

	cards := make([]string, 0, visible)
	for i := start; i < start+visible && i < len(m.profiles); i++ {
		cards = append(cards, components.NewGoalCard(m.profiles[i]).SetSelected(i == m.selectedIndex).Render())
	}

	help := strings.Join([]string{
		tuistyles.HelpKeyStyle.Render("↑/↓") + " " + tuistyles.HelpDescStyle.Render("choose"),
		tuistyles.HelpKeyStyle.Render("enter") + " " + tuistyles.HelpDescStyle.Render("plan this goal"),
	}, "  ")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(cards, "\n"), "", help)
}
