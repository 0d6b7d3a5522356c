package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing what-ifs
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("GOAL PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s (%s)\n", compSet.BaseScenarioName, compSet.GoalType))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %5s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		"Years",
		numWidth, "Goal Cost",
		numWidth, "Monthly SIP",
		numWidth, "Shortfall",
		numWidth, "Achievable"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			if alt.Failed() {
				sb.WriteString(fmt.Sprintf("  Not possible: %s\n", alt.Error))
				continue
			}

			sb.WriteString(fmt.Sprintf("  Monthly SIP:      %s (%s%%)\n",
				tf.delta(alt.SIPDiffFromBase), alt.SIPPctFromBase.StringFixed(1)))
			if !alt.CostDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Goal Cost:        %s\n", tf.delta(alt.CostDiffFromBase)))
			}
			if alt.YearsDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Years to Goal:    %+d\n", alt.YearsDiffFromBase))
			}
			if !alt.RatioDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Achievability:    %s points\n", signed(alt.RatioDiffFromBase.Round(1))))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}
	if result.Failed() {
		return fmt.Sprintf("%-*s %s\n", nameWidth, tf.truncate(name, nameWidth), "not possible")
	}

	return fmt.Sprintf("%-*s %5d %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		result.YearsToGoal,
		numWidth, money.Compact(result.TotalGoalCost),
		numWidth, money.Format(result.SIPRequired),
		numWidth, money.Compact(result.Shortfall),
		numWidth, money.Percent(result.AchievabilityRatio))
}

// delta renders a signed currency change
func (tf *TableFormatter) delta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + money.Format(d)
	}
	return money.Format(d)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each what-if
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		switch {
		case alt.Failed():
			change = "n/a"
		case !alt.SIPDiffFromBase.IsZero():
			change = tf.delta(alt.SIPDiffFromBase) + "/mo"
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
