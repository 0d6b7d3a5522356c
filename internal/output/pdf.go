package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/shopspring/decimal"
)

// PDFFormatter renders a printable report with the standard PDF fonts
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfMargin      = 15.0
	pdfContentWide = 210.0 - 2*pdfMargin
	pdfCurrency    = "Rs. "
)

// pdfText replaces characters the core fonts cannot encode
func pdfText(s string) string {
	s = strings.ReplaceAll(s, money.Symbol, pdfCurrency)
	return strings.ReplaceAll(s, "•", "-")
}

func pdfMoney(d decimal.Decimal) string {
	return money.FormatWith(pdfCurrency, d, 0)
}

type pdfReport struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (p PDFFormatter) Format(r *Report) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetCreationDate(r.GeneratedAt)
	doc.SetTitle(r.Title, true)

	rep := &pdfReport{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	rep.cover(r)
	for _, e := range r.Entries {
		rep.entry(e)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) text(s string) string {
	return r.tr(pdfText(s))
}

func (r *pdfReport) heading(s string, size float64) {
	r.pdf.SetFont("Arial", "B", size)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWide, size/2+2, r.text(s), "", 1, "L", false, 0, "")
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) cover(rep *Report) {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 24)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(30)
	r.pdf.CellFormat(pdfContentWide, 14, r.text(rep.Title), "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(pdfContentWide, 8, "Generated: "+rep.GeneratedAt.Format("2 January 2006"), "", 1, "C", false, 0, "")
	r.pdf.Ln(12)

	if len(rep.Entries) == 0 {
		r.pdf.SetFont("Arial", "", 11)
		r.pdf.CellFormat(pdfContentWide, 7, "No goals to report.", "", 1, "C", false, 0, "")
		return
	}

	widths := []float64{60, 20, 40, 30, 30}
	r.tableHeader(widths, "Goal", "Years", "Required", "Monthly SIP", "Achievable")
	r.pdf.SetFont("Arial", "", 10)
	for _, e := range rep.Entries {
		r.tableRow(widths,
			e.Name(),
			strconv.Itoa(e.Result.YearsToGoal),
			pdfMoney(e.Result.TotalRequiredAtGoal),
			pdfMoney(e.Result.SIPRequired),
			money.Percent(e.Result.AchievabilityRatio),
		)
	}

	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(pdfContentWide, 4.5, r.text(strings.Join(DefaultAssumptions, ". ")+"."), "", "L", false)
}

func (r *pdfReport) tableHeader(widths []float64, cols ...string) {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetFillColor(240, 244, 248)
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		r.pdf.CellFormat(widths[i], 7, r.text(c), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) tableRow(widths []float64, cols ...string) {
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		r.pdf.CellFormat(widths[i], 6, r.text(c), "1", 0, align, false, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) entry(e Entry) {
	res := e.Result
	r.pdf.AddPage()
	r.heading(fmt.Sprintf("%s (%s)", e.Name(), e.Title), 16)
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.CellFormat(pdfContentWide, 7, fmt.Sprintf("Years to goal: %d    Status: %s", res.YearsToGoal, e.Status()), "", 1, "L", false, 0, "")
	r.pdf.Ln(3)

	widths := []float64{100, 30, 50}
	r.tableHeader(widths, "Cost", "Share", "Amount")
	r.pdf.SetFont("Arial", "", 10)
	r.tableRow(widths, "Base cost (inflated)", "", pdfMoney(res.FutureBaseCost))
	for _, c := range res.Categories {
		r.tableRow(widths, c.Name, money.Percent(c.Percent), pdfMoney(c.Amount))
	}
	r.tableRow(widths, "Total goal cost", "", pdfMoney(res.TotalGoalCost))
	r.pdf.Ln(5)

	plan := [][2]string{}
	if res.LoanAmount.IsPositive() {
		plan = append(plan,
			[2]string{"Loan amount", pdfMoney(res.LoanAmount)},
			[2]string{"Monthly EMI", pdfMoney(res.EMIAmount)},
			[2]string{"Total loan interest", pdfMoney(res.TotalLoanInterest)},
		)
	}
	plan = append(plan,
		[2]string{"Required at goal", pdfMoney(res.TotalRequiredAtGoal)},
		[2]string{"Monthly SIP required", pdfMoney(res.SIPRequired)},
		[2]string{"Monthly investment", pdfMoney(res.MonthlyContribution)},
		[2]string{"Projected corpus", pdfMoney(res.FutureValue)},
		[2]string{"Shortfall", pdfMoney(res.Shortfall)},
		[2]string{"Achievability", money.Percent(res.AchievabilityRatio)},
	)
	pw := []float64{130, 50}
	r.tableHeader(pw, "Plan", "Amount")
	r.pdf.SetFont("Arial", "", 10)
	for _, row := range plan {
		r.tableRow(pw, row[0], row[1])
	}

	if years := YearlySchedule(e.Schedule); len(years) > 0 {
		r.pdf.Ln(5)
		r.heading("Loan repayment", 12)
		sw := []float64{30, 50, 50, 50}
		r.tableHeader(sw, "Loan year", "Interest", "Principal", "Balance")
		r.pdf.SetFont("Arial", "", 10)
		for _, y := range years {
			r.tableRow(sw, strconv.Itoa(y.Year), pdfMoney(y.Interest), pdfMoney(y.Principal), pdfMoney(y.Closing))
		}
	}

	if len(res.Recommendations) > 0 {
		r.pdf.Ln(5)
		r.heading("Recommendations", 12)
		r.pdf.SetFont("Arial", "", 10)
		for _, rec := range res.Recommendations {
			r.setKindColor(rec.Kind)
			r.pdf.MultiCell(pdfContentWide, 5, r.text("- "+rec.Text), "", "L", false)
		}
		r.pdf.SetTextColor(50, 50, 50)
	}
}

func (r *pdfReport) setKindColor(kind domain.RecommendationKind) {
	switch kind {
	case domain.KindSuccess:
		r.pdf.SetTextColor(33, 110, 28)
	case domain.KindWarning:
		r.pdf.SetTextColor(138, 97, 0)
	case domain.KindError:
		r.pdf.SetTextColor(160, 27, 20)
	default:
		r.pdf.SetTextColor(36, 90, 141)
	}
}
