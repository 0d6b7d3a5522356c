package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Years To Goal",
		"Total Goal Cost",
		"Required At Goal",
		"EMI",
		"Monthly SIP",
		"Future Value",
		"Shortfall",
		"Achievability %",
		"SIP Diff from Base",
		"SIP % Change",
		"Cost Diff from Base",
		"Shortfall Diff from Base",
		"Error",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.YearsToGoal),
		result.TotalGoalCost.StringFixed(2),
		result.TotalRequiredAtGoal.StringFixed(2),
		result.EMIAmount.StringFixed(2),
		result.SIPRequired.StringFixed(2),
		result.FutureValue.StringFixed(2),
		result.Shortfall.StringFixed(2),
		result.AchievabilityRatio.StringFixed(2),
		result.SIPDiffFromBase.StringFixed(2),
		result.SIPPctFromBase.StringFixed(2),
		result.CostDiffFromBase.StringFixed(2),
		result.ShortfallDiffFromBase.StringFixed(2),
		result.Error,
	}
}
