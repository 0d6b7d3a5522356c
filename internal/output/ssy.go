package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// SsyFormatter renders a girl-child savings scheme simulation as console,
// csv or json
type SsyFormatter struct {
	Kind string
}

func (s SsyFormatter) Name() string { return "ssy-" + s.Kind }

func (s SsyFormatter) Format(res *domain.SsyResult) ([]byte, error) {
	switch s.Kind {
	case "", "console":
		return s.console(res)
	case "csv":
		return s.csv(res)
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported ssy format: %s", s.Kind)
	}
}

func (s SsyFormatter) console(res *domain.SsyResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SUKANYA SAMRIDDHI ACCOUNT PROJECTION")
	fmt.Fprintln(&buf, "====================================")
	fmt.Fprintf(&buf, "Opening age:      %d\n", res.Input.GirlAge)
	fmt.Fprintf(&buf, "Annual deposit:   %s\n", FormatCurrency(res.Input.AnnualDeposit))
	fmt.Fprintf(&buf, "Start year:       %d\n", res.Input.StartYear)
	fmt.Fprintln(&buf)

	data := pterm.TableData{{"Year", "Calendar", "Age", "Deposit", "Rate", "Interest", "Balance"}}
	for _, y := range res.YearlyBreakdown {
		data = append(data, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.CalendarYear),
			strconv.Itoa(y.Age),
			FormatCurrency(y.Deposit),
			FormatPercentage(y.RatePct),
			FormatCurrency(y.Interest),
			FormatCurrency(y.Balance),
		})
	}
	table, err := renderTable(data)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(&buf, table)

	fmt.Fprintf(&buf, "Total invested:   %s\n", FormatCurrency(res.TotalInvestment))
	fmt.Fprintf(&buf, "Total interest:   %s\n", FormatCurrency(res.TotalInterest))
	fmt.Fprintf(&buf, "Maturity amount:  %s (%d)\n", FormatCurrency(res.MaturityAmount), res.MaturityYear)
	return buf.Bytes(), nil
}

func (s SsyFormatter) csv(res *domain.SsyResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "CalendarYear", "Age", "Deposit", "RatePct", "Interest", "Balance"}); err != nil {
		return nil, err
	}
	for _, y := range res.YearlyBreakdown {
		row := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.CalendarYear),
			strconv.Itoa(y.Age),
			y.Deposit.StringFixed(2),
			y.RatePct.String(),
			y.Interest.StringFixed(2),
			y.Balance.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
