package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// ConsoleFormatter renders a plain-terminal report with pterm tables
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

var (
	successMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	warningMark = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorMark   = color.New(color.FgRed, color.Bold).SprintFunc()
	infoMark    = color.New(color.FgCyan).SprintFunc()
)

// recommendationMarker prefixes advice according to its kind
func recommendationMarker(kind domain.RecommendationKind) string {
	switch kind {
	case domain.KindSuccess:
		return successMark("[OK]")
	case domain.KindWarning:
		return warningMark("[!]")
	case domain.KindError:
		return errorMark("[X]")
	default:
		return infoMark("[i]")
	}
}

func renderTable(data pterm.TableData) (string, error) {
	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
}

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, strings.ToUpper(r.Title))
	fmt.Fprintln(&buf, rule)
	if len(r.Entries) == 0 {
		fmt.Fprintln(&buf, "No goals to report.")
		return buf.Bytes(), nil
	}

	for i, e := range r.Entries {
		if err := c.writeEntry(&buf, i+1, e); err != nil {
			return nil, fmt.Errorf("goal %d (%s): %w", i+1, e.Name(), err)
		}
	}

	if len(r.Entries) > 1 {
		summary := pterm.TableData{{"Goal", "Years", "Total Required", "Monthly SIP", "Achievability", "Status"}}
		for _, e := range r.Entries {
			summary = append(summary, []string{
				e.Name(),
				strconv.Itoa(e.Result.YearsToGoal),
				FormatCurrency(e.Result.TotalRequiredAtGoal),
				FormatCurrency(e.Result.SIPRequired),
				FormatPercentage(e.Result.AchievabilityRatio),
				e.Status(),
			})
		}
		table, err := renderTable(summary)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(&buf, "SUMMARY")
		fmt.Fprintln(&buf, table)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeEntry(buf *bytes.Buffer, n int, e Entry) error {
	res := e.Result
	fmt.Fprintf(buf, "GOAL %d: %s (%s)\n", n, e.Name(), e.Title)
	fmt.Fprintln(buf, strings.Repeat("-", 50))
	fmt.Fprintf(buf, "Years to goal:        %d\n", res.YearsToGoal)
	fmt.Fprintf(buf, "Status:               %s\n", e.Status())
	fmt.Fprintln(buf)

	costs := pterm.TableData{{"Cost", "Share", "Amount"}}
	costs = append(costs, []string{"Base cost (inflated)", "", FormatCurrency(res.FutureBaseCost)})
	for _, cat := range res.Categories {
		costs = append(costs, []string{cat.Name, FormatPercentage(cat.Percent), FormatCurrency(cat.Amount)})
	}
	costs = append(costs, []string{"Total goal cost", "", FormatCurrency(res.TotalGoalCost)})
	table, err := renderTable(costs)
	if err != nil {
		return err
	}
	fmt.Fprintln(buf, table)

	plan := pterm.TableData{{"Plan", "Amount"}}
	if res.LoanAmount.IsPositive() {
		plan = append(plan,
			[]string{"Loan amount", FormatCurrency(res.LoanAmount)},
			[]string{"Monthly EMI", FormatMonthly(res.EMIAmount)},
			[]string{"Total loan interest", FormatCurrency(res.TotalLoanInterest)},
		)
	}
	plan = append(plan,
		[]string{"Required at goal", FormatCurrency(res.TotalRequiredAtGoal)},
		[]string{"Monthly SIP required", FormatMonthly(res.SIPRequired)},
	)
	if !res.MonthlyContribution.Equal(res.SIPRequired) {
		plan = append(plan, []string{"Monthly investment", FormatMonthly(res.MonthlyContribution)})
	}
	plan = append(plan,
		[]string{"Total invested", FormatCurrency(res.TotalInvestment)},
		[]string{"Projected corpus", FormatCurrency(res.FutureValue)},
		[]string{"Net gains", FormatCurrency(res.NetGains)},
		[]string{"Shortfall", FormatCurrency(res.Shortfall)},
		[]string{"Achievability", FormatPercentage(res.AchievabilityRatio)},
	)
	table, err = renderTable(plan)
	if err != nil {
		return err
	}
	fmt.Fprintln(buf, table)

	if years := YearlySchedule(e.Schedule); len(years) > 0 {
		sched := pterm.TableData{{"Loan Year", "Interest", "Principal", "Balance"}}
		for _, y := range years {
			sched = append(sched, []string{
				strconv.Itoa(y.Year),
				FormatCurrency(y.Interest),
				FormatCurrency(y.Principal),
				FormatCurrency(y.Closing),
			})
		}
		table, err = renderTable(sched)
		if err != nil {
			return err
		}
		fmt.Fprintln(buf, "LOAN REPAYMENT")
		fmt.Fprintln(buf, table)
	}

	fmt.Fprintln(buf, "ASSUMPTIONS:")
	for _, a := range EntryAssumptions(e) {
		fmt.Fprintf(buf, "• %s\n", a)
	}
	fmt.Fprintln(buf)

	if len(res.Recommendations) > 0 {
		fmt.Fprintln(buf, "RECOMMENDATIONS:")
		for _, rec := range res.Recommendations {
			fmt.Fprintf(buf, "%s %s\n", recommendationMarker(rec.Kind), rec.Text)
		}
		fmt.Fprintln(buf)
	}
	return nil
}
