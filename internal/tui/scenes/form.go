package scenes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldInt
	fieldAmount
	fieldPercent
	fieldBool
)

type formField struct {
	key   string
	label string
	kind  fieldKind
	input textinput.Model
}

// Default assumptions prefilled into a new form
const (
	DefaultInflationPct = "6"
	DefaultReturnPct    = "12"
	DefaultLoanYears    = "10"
	DefaultLoanRatePct  = "10"
)

// FormModel edits the inputs of one goal
type FormModel struct {
	goal    profile.GoalProfile
	fields  []formField
	focused int
	errors  map[string]string
	width   int
	height  int
}

// NewFormModel creates an empty form; SetGoal fills it
func NewFormModel() *FormModel {
	return &FormModel{errors: map[string]string{}}
}

func newField(k, label, placeholder string, kind fieldKind) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 20
	ti.CharLimit = 16
	if kind == fieldText {
		ti.CharLimit = 40
		ti.Width = 30
	}
	return formField{key: k, label: label, kind: kind, input: ti}
}

// SetGoal rebuilds the fields for a goal profile. Values typed earlier for
// the same goal type are kept.
func (m *FormModel) SetGoal(p profile.GoalProfile) tea.Cmd {
	if m.goal.Type == p.Type && len(m.fields) > 0 {
		return m.focus(m.focused)
	}
	m.goal = p
	m.errors = map[string]string{}

	fields := []formField{
		newField("name", "Plan name", p.Title, fieldText),
		newField("currentAge", "Your age", "35", fieldInt),
	}
	if p.ChildRelative {
		fields = append(fields,
			newField("childCurrentAge", "Child's age", "5", fieldInt),
			newField("targetAge", "Child's age at goal", "18", fieldInt))
	} else {
		fields = append(fields, newField("targetAge", "Age at goal", "60", fieldInt))
	}
	if p.AnnualizeBase {
		fields = append(fields,
			newField("lifeExpectancy", "Life expectancy", strconv.Itoa(p.DefaultLifeExpectancy), fieldInt),
			newField("baseCost", "Monthly expenses today", "50000", fieldAmount))
	} else {
		fields = append(fields, newField("baseCost", "Cost today", "1000000", fieldAmount))
	}
	fields = append(fields,
		newField("currentSavings", "Savings set aside", "0", fieldAmount),
		newField("monthlyIncome", "Monthly income", "100000", fieldAmount),
		newField("monthlyInvestment", "Monthly investment", "0", fieldAmount),
		newField("inflationRatePct", "Inflation (%)", DefaultInflationPct, fieldPercent),
		newField("expectedReturnRatePct", "Expected return (%)", DefaultReturnPct, fieldPercent),
	)
	if p.LoanAllowed {
		fields = append(fields,
			newField("wantLoan", "Take a loan (y/n)", "n", fieldBool),
			newField("loanTenureYears", "Loan tenure (years)", DefaultLoanYears, fieldInt),
			newField("loanInterestRatePct", "Loan interest (%)", DefaultLoanRatePct, fieldPercent))
	}
	m.fields = fields

	m.SetValue("inflationRatePct", DefaultInflationPct)
	m.SetValue("expectedReturnRatePct", DefaultReturnPct)
	if p.LoanAllowed {
		m.SetValue("wantLoan", "n")
		m.SetValue("loanTenureYears", DefaultLoanYears)
		m.SetValue("loanInterestRatePct", DefaultLoanRatePct)
	}
	return m.focus(0)
}

// Goal returns the profile being edited
func (m *FormModel) Goal() profile.GoalProfile {
	return m.goal
}

// SetValue sets a field by key and reports whether it exists
func (m *FormModel) SetValue(k, v string) bool {
	for i := range m.fields {
		if m.fields[i].key == k {
			m.fields[i].input.SetValue(v)
			return true
		}
	}
	return false
}

// SetErrors shows validation problems next to their fields
func (m *FormModel) SetErrors(errs domain.ValidationErrors) {
	m.errors = map[string]string{}
	for _, e := range errs {
		m.errors[e.Field] = e.Message
	}
}

// Errors returns the messages currently shown, keyed by field
func (m *FormModel) Errors() map[string]string {
	return m.errors
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *FormModel) focus(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.fields[m.focused].input.Blur()
	m.focused = (i + len(m.fields)) % len(m.fields)
	return m.fields[m.focused].input.Focus()
}

// Input parses the fields into a plan input. Blank numeric fields are zero.
func (m *FormModel) Input() (domain.GoalPlanInput, error) {
	in := domain.GoalPlanInput{GoalType: m.goal.Type}
	var errs domain.ValidationErrors

	for _, f := range m.fields {
		raw := strings.TrimSpace(f.input.Value())
		switch f.kind {
		case fieldText:
			if f.key == "name" {
				in.Name = raw
			}
		case fieldInt:
			v := 0
			if raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil {
					errs.Add(f.key, "must be a whole number")
					continue
				}
				v = n
			}
			setInt(&in, f.key, v)
		case fieldAmount, fieldPercent:
			v := decimal.Zero
			if raw != "" {
				d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
				if err != nil {
					errs.Add(f.key, "must be a number")
					continue
				}
				v = d
			}
			setDecimal(&in, f.key, v)
		case fieldBool:
			switch strings.ToLower(raw) {
			case "y", "yes", "true":
				in.WantLoan = true
			case "", "n", "no", "false":
				in.WantLoan = false
			default:
				errs.Add(f.key, "answer y or n")
			}
		}
	}

	if err := errs.Err(); err != nil {
		return in, err
	}
	return in, nil
}

func setInt(in *domain.GoalPlanInput, k string, v int) {
	switch k {
	case "currentAge":
		in.CurrentAge = v
	case "childCurrentAge":
		in.ChildCurrentAge = v
	case "targetAge":
		in.TargetAge = v
	case "lifeExpectancy":
		in.LifeExpectancy = v
	case "loanTenureYears":
		in.LoanTenureYears = v
	}
}

func setDecimal(in *domain.GoalPlanInput, k string, v decimal.Decimal) {
	switch k {
	case "baseCost":
		in.BaseCost = v
	case "currentSavings":
		in.CurrentSavings = v
	case "monthlyIncome":
		in.MonthlyIncome = v
	case "monthlyInvestment":
		in.MonthlyInvestment = v
	case "inflationRatePct":
		in.InflationRatePct = v
	case "expectedReturnRatePct":
		in.ExpectedReturnRatePct = v
	case "loanInterestRatePct":
		in.LoanInterestRatePct = v
	}
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "down"))):
			return m, m.focus(m.focused + 1)
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
			return m, m.focus(m.focused - 1)
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
			return m, func() tea.Msg { return tuimsg.BackMsg{} }
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			in, err := m.Input()
			if err != nil {
				if verrs, ok := domain.AsValidationErrors(err); ok {
					m.SetErrors(verrs)
				}
				return m, nil
			}
			m.errors = map[string]string{}
			return m, func() tea.Msg { return tuimsg.CalculateRequestMsg{Input: in} }
		}
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

// View renders the form
func (m *FormModel) View() string {
	if len(m.fields) == 0 {
		return tuistyles.SubtitleStyle.Render("Choose a goal first.")
	}

	var rows []string
	rows = append(rows, tuistyles.TitleStyle.Render(m.goal.Title), "")
	for i, f := range m.fields {
		label := tuistyles.FieldLabelStyle.Render(f.label)
		if i == m.focused {
			label = tuistyles.FocusedFieldLabelStyle.Render("› " + f.label)
		}
		row := label + f.input.View()
		if msg, ok := m.errors[f.key]; ok {
			row += "  " + tuistyles.ErrorStyle.Render(msg)
		}
		rows = append(rows, row)
	}

	// Errors for fields the form does not show, such as planYear.
	var other []string
	for k := range m.errors {
		if !m.hasField(k) {
			other = append(other, k)
		}
	}
	sort.Strings(other)
	for _, k := range other {
		rows = append(rows, tuistyles.ErrorStyle.Render(fmt.Sprintf("%s: %s", k, m.errors[k])))
	}

	help := strings.Join([]string{
		tuistyles.HelpKeyStyle.Render("tab/↓") + " " + tuistyles.HelpDescStyle.Render("next"),
		tuistyles.HelpKeyStyle.Render("shift+tab/↑") + " " + tuistyles.HelpDescStyle.Render("previous"),
		tuistyles.HelpKeyStyle.Render("enter") + " " + tuistyles.HelpDescStyle.Render("calculate"),
		tuistyles.HelpKeyStyle.Render("esc") + " " + tuistyles.HelpDescStyle.Render("back"),
	}, "  ")
	rows = append(rows, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *FormModel) hasField(k string) bool {
	for _, f := range m.fields {
		if f.key == k {
			return true
		}
	}
	return false
}
