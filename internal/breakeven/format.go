package breakeven

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Goal:                %s (%s)\n", result.BaseInput.DisplayName(), result.BaseInput.GoalType))
	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Monthly Budget:      %s\n", money.Format(result.Budget)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN VALUE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(tf.optimalLine(result))
	sb.WriteString("\n")

	if result.Plan != nil {
		sb.WriteString("PLAN AT BREAK-EVEN\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Years to Goal:       %d\n", result.Plan.YearsToGoal))
		sb.WriteString(fmt.Sprintf("Total Goal Cost:     %s\n", money.Format(result.Plan.TotalGoalCost)))
		sb.WriteString(fmt.Sprintf("Monthly SIP:         %s\n", money.Format(result.Plan.SIPRequired)))
		sb.WriteString(fmt.Sprintf("Projected Value:     %s\n", money.Format(result.Plan.FutureValue)))
		sb.WriteString("\n")
	}

	sb.WriteString("COMPARISON TO BASE PLAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Monthly SIP:    %s\n", money.Format(result.BaseSIP)))
	sb.WriteString(fmt.Sprintf("SIP Change:          %s%s\n", tf.deltaSymbol(result.SIPDiffFromBase), money.Format(result.SIPDiffFromBase)))
	sb.WriteString("\n")

	return sb.String()
}

func (tf *TableFormatter) optimalLine(result *OptimizationResult) string {
	switch {
	case result.OptimalTargetAge != nil:
		return fmt.Sprintf("Target Age:          %d (base %d)\n", *result.OptimalTargetAge, result.BaseInput.TargetAge)
	case result.OptimalReturnRatePct != nil:
		return fmt.Sprintf("Expected Return:     %s%% (base %s%%)\n",
			result.OptimalReturnRatePct.StringFixed(2), result.BaseInput.ExpectedReturnRatePct.StringFixed(2))
	case result.OptimalSavings != nil:
		return fmt.Sprintf("Savings Today:       %s (%s more)\n",
			money.Format(*result.OptimalSavings), money.Format(result.AdditionalSavings))
	}
	return "None found\n"
}

// FormatMultiDimensional formats results from every target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Budget:      %s\n", money.Format(result.Budget)))
	sb.WriteString(fmt.Sprintf("Base Monthly SIP:    %s\n\n", money.Format(result.BaseSIP)))

	sb.WriteString("SUMMARY OF ALL TARGETS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %-22s %14s %14s %12s\n",
		"Target", "Break-Even Value", "Monthly SIP", "Goal Cost", "Iterations"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		sip, cost := decimal.Zero, decimal.Zero
		if res.Plan != nil {
			sip, cost = res.Plan.SIPRequired, res.Plan.TotalGoalCost
		}
		sb.WriteString(fmt.Sprintf("%-14s %-22s %14s %14s %12d\n",
			tf.truncate(string(res.Target), 14),
			tf.truncate(tf.shortValue(&res), 22),
			money.Format(sip),
			money.Compact(cost),
			res.Iterations))
	}
	sb.WriteString("\n")

	if len(result.Failures) > 0 {
		sb.WriteString("NOT REACHABLE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		targets := make([]string, 0, len(result.Failures))
		for t := range result.Failures {
			targets = append(targets, t)
		}
		sort.Strings(targets)
		for _, t := range targets {
			sb.WriteString(fmt.Sprintf("%-14s %s\n", t, result.Failures[t]))
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) shortValue(res *OptimizationResult) string {
	switch {
	case res.OptimalTargetAge != nil:
		return fmt.Sprintf("age %d", *res.OptimalTargetAge)
	case res.OptimalReturnRatePct != nil:
		return res.OptimalReturnRatePct.StringFixed(2) + "%"
	case res.OptimalSavings != nil:
		return "+" + money.Compact(res.AdditionalSavings)
	}
	return "-"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Budget met"
	}
	return "⚠ Budget not met"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
