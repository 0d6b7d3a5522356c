package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// GoalCard summarizes a goal profile in the goal chooser
type GoalCard struct {
	Title       string
	Description string
	Highlights  []string
	Selected    bool
	Width       int
}

// NewGoalCard builds a card from a goal profile
func NewGoalCard(p profile.GoalProfile) *GoalCard {
	c := &GoalCard{Title: p.Title, Description: p.Description, Width: 56}
	if p.ChildRelative {
		c.Highlights = append(c.Highlights, "planned from the child's age")
	}
	if p.AnnualizeBase {
		c.Highlights = append(c.Highlights, "monthly cost until life expectancy")
	}
	if p.LoanAllowed {
		c.Highlights = append(c.Highlights, "loan option")
	}
	return c
}

// SetSelected marks the card as selected
func (c *GoalCard) SetSelected(selected bool) *GoalCard {
	c.Selected = selected
	return c
}

// Render returns the styled card
func (c *GoalCard) Render() string {
	border := tuistyles.ColorBorder
	title := tuistyles.UnselectedItemStyle.Bold(true).Render(c.Title)
	if c.Selected {
		border = tuistyles.ColorPrimary
		title = tuistyles.SelectedItemStyle.Render("▶ " + c.Title)
	}

	lines := []string{title}
	if c.Description != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(c.Description))
	}
	if len(c.Highlights) > 0 {
		lines = append(lines, tuistyles.InfoStyle.Render(strings.Join(c.Highlights, " • ")))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(c.Width).
		Render(strings.Join(lines, "\n"))
}
