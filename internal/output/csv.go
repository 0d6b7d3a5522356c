package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/goalplan/internal/calculation"
)

// CSVFormatter writes one summary row per goal
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Goal", "GoalType", "YearsToGoal", "FutureBaseCost", "TotalGoalCost", "LoanAmount",
		"EMIAmount", "TotalRequiredAtGoal", "SIPRequired", "MonthlyContribution",
		"TotalInvestment", "FutureValue", "NetGains", "Shortfall", "AchievabilityRatio",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range r.Entries {
		res := e.Result
		row := []string{
			e.Name(),
			string(res.GoalType),
			strconv.Itoa(res.YearsToGoal),
			res.FutureBaseCost.StringFixed(2),
			res.TotalGoalCost.StringFixed(2),
			res.LoanAmount.StringFixed(2),
			res.EMIAmount.StringFixed(2),
			res.TotalRequiredAtGoal.StringFixed(2),
			res.SIPRequired.StringFixed(2),
			res.MonthlyContribution.StringFixed(2),
			res.TotalInvestment.StringFixed(2),
			res.FutureValue.StringFixed(2),
			res.NetGains.StringFixed(2),
			res.Shortfall.StringFixed(2),
			res.AchievabilityRatio.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ScheduleCSV writes a loan's month-by-month amortization
func ScheduleCSV(rows []calculation.AmortizationRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Month", "Opening", "Interest", "Principal", "Closing"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		rec := []string{
			strconv.Itoa(row.Month),
			row.Opening.StringFixed(2),
			row.Interest.StringFixed(2),
			row.Principal.StringFixed(2),
			row.Closing.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
