package output

import (
	"time"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/shopspring/decimal"
)

// Entry is one planned goal within a report
type Entry struct {
	Title    string                        `json:"title"`
	Input    domain.GoalPlanInput          `json:"input"`
	Result   *domain.CalculationResult     `json:"result"`
	Schedule []calculation.AmortizationRow `json:"schedule,omitempty"`
}

// Name returns the plan's display name
func (e Entry) Name() string {
	return e.Input.DisplayName()
}

// Report collects planned goals for rendering
type Report struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generatedAt"`
	Entries     []Entry   `json:"goals"`
}

// NewReport creates an empty report stamped with the given time
func NewReport(title string, at time.Time) *Report {
	if title == "" {
		title = "Goal Plan Report"
	}
	return &Report{Title: title, GeneratedAt: at.UTC()}
}

// Add appends a calculated goal, titled from the built-in goal profiles
func (r *Report) Add(in domain.GoalPlanInput, res *domain.CalculationResult) *Entry {
	title := string(in.GoalType)
	if p, ok := profile.Default().Get(in.GoalType); ok {
		title = p.Title
	}
	r.Entries = append(r.Entries, Entry{Title: title, Input: in, Result: res})
	return &r.Entries[len(r.Entries)-1]
}

// ScheduleYear summarizes twelve months of loan repayment
type ScheduleYear struct {
	Year      int
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Closing   decimal.Decimal
}

// YearlySchedule folds monthly amortization rows into loan years
func YearlySchedule(rows []calculation.AmortizationRow) []ScheduleYear {
	var out []ScheduleYear
	for _, row := range rows {
		year := (row.Month-1)/12 + 1
		if len(out) == 0 || out[len(out)-1].Year != year {
			out = append(out, ScheduleYear{Year: year})
		}
		y := &out[len(out)-1]
		y.Interest = y.Interest.Add(row.Interest)
		y.Principal = y.Principal.Add(row.Principal)
		y.Closing = row.Closing
	}
	return out
}

// FormatCurrency formats a monetary amount in whole units
func FormatCurrency(amount decimal.Decimal) string {
	return money.Format(amount)
}

// FormatMonthly formats a monthly payment to the paisa
func FormatMonthly(amount decimal.Decimal) string {
	return money.FormatFixed(amount, 2)
}

// FormatPercentage formats a whole-percent value
func FormatPercentage(pct decimal.Decimal) string {
	return money.Percent(pct)
}

// Status describes the achievability of the entry in one word, using the
// goal profile's near-miss threshold
func (e Entry) Status() string {
	if e.Result.IsAchievable() {
		return "On track"
	}
	nearMiss := decimal.NewFromInt(80)
	if p, ok := profile.Default().Get(e.Input.GoalType); ok && p.Thresholds.NearMissPct.IsPositive() {
		nearMiss = p.Thresholds.NearMissPct
	}
	if e.Result.AchievabilityRatio.GreaterThanOrEqual(nearMiss) {
		return "Close"
	}
	return "Off track"
}
