package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPlan = `
assumptions:
  inflation_rate_pct: 6
  expected_return_rate_pct: 12
  loan_interest_rate_pct: 9.5
  loan_tenure_years: 7
  plan_year: 2025
goals:
  - name: College
    goal_type: child_education
    current_age: 38
    child_current_age: 8
    target_age: 18
    base_cost: 1500000
    current_savings: 200000
    monthly_income: 150000
    want_loan: true
  - name: Europe trip
    goal_type: vacation
    current_age: 38
    target_age: 40
    base_cost: 400000
    inflation_rate_pct: 4
`

const tomlPlan = `
[assumptions]
inflation_rate_pct = 6.0
expected_return_rate_pct = 12.0

[[goals]]
name = "College"
goal_type = "child_education"
child_current_age = 8
target_age = 18
base_cost = 1000000
monthly_income = 90000
`

const jsonPlan = `{
  "assumptions": {"inflationRatePct": 5, "expectedReturnRatePct": 10},
  "goals": [
    {"goalType": "retirement", "currentAge": 40, "targetAge": 60, "baseCost": "60000"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("plan.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan.YML"))
	assert.Equal(t, FormatTOML, FormatFromPath("plan.toml"))
	assert.Equal(t, FormatJSON, FormatFromPath("/tmp/plan.json"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan"))
}

func TestLoadFromFile_YAML(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(writeFile(t, "plan.yaml", yamlPlan))
	require.NoError(t, err)
	require.Len(t, plan.Goals, 2)

	college := plan.Goals[0]
	assert.Equal(t, domain.GoalChildEducation, college.GoalType)
	assert.True(t, college.BaseCost.Equal(decimal.NewFromInt(1500000)))
	assert.True(t, college.InflationRatePct.Equal(decimal.NewFromInt(6)), "assumption applied")
	assert.True(t, college.LoanInterestRatePct.Equal(decimal.RequireFromString("9.5")))
	assert.Equal(t, 7, college.LoanTenureYears)
	assert.Equal(t, 2025, college.PlanYear)

	trip := plan.Goals[1]
	assert.True(t, trip.InflationRatePct.Equal(decimal.NewFromInt(4)), "goal value wins over assumption")
	assert.Equal(t, 0, trip.LoanTenureYears, "loan defaults only apply to goals that want a loan")
}

func TestLoadFromFile_TOML(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(writeFile(t, "plan.toml", tomlPlan))
	require.NoError(t, err)
	require.Len(t, plan.Goals, 1)

	g := plan.Goals[0]
	assert.Equal(t, "College", g.Name)
	assert.Equal(t, 8, g.ChildCurrentAge)
	assert.True(t, g.BaseCost.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, g.ExpectedReturnRatePct.Equal(decimal.NewFromInt(12)))
}

func TestLoadFromFile_JSON(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(writeFile(t, "plan.json", jsonPlan))
	require.NoError(t, err)
	require.Len(t, plan.Goals, 1)
	assert.Equal(t, domain.GoalRetirement, plan.Goals[0].GoalType)
	assert.True(t, plan.Goals[0].InflationRatePct.Equal(decimal.NewFromInt(5)))
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = parser.LoadFromFile(writeFile(t, "bad.yaml", "goals: [::"))
	assert.Error(t, err)

	_, err = parser.LoadFromFile(writeFile(t, "empty.yaml", "goals: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no goals provided")

	invalid := `
goals:
  - goal_type: child_education
    child_current_age: 12
    target_age: 10
    base_cost: 100000
`
	_, err = parser.LoadFromFile(writeFile(t, "invalid.yaml", invalid))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "goal 0 (child_education)")

	unknown := `
goals:
  - goal_type: yacht
    current_age: 40
    target_age: 45
    base_cost: 100000
`
	_, err = parser.LoadFromFile(writeFile(t, "unknown.yaml", unknown))
	assert.ErrorIs(t, err, domain.ErrUnknownGoalType)
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writeFile(t, "plan.yaml", yamlPlan))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, SaveToFile(out, plan))

	reloaded, err := parser.LoadFromFile(out)
	require.NoError(t, err)
	require.Len(t, reloaded.Goals, len(plan.Goals))
	for i := range plan.Goals {
		assert.True(t, plan.Goals[i].BaseCost.Equal(reloaded.Goals[i].BaseCost))
		assert.True(t, plan.Goals[i].InflationRatePct.Equal(reloaded.Goals[i].InflationRatePct))
		assert.Equal(t, plan.Goals[i].TargetAge, reloaded.Goals[i].TargetAge)
	}
}

func TestApplyAssumptions_RetirementLifeExpectancy(t *testing.T) {
	life := 90
	plan := &domain.PlanFile{
		Assumptions: domain.Assumptions{LifeExpectancy: &life},
		Goals: []domain.GoalPlanInput{
			{GoalType: domain.GoalRetirement},
			{GoalType: domain.GoalVacation},
		},
	}
	ApplyAssumptions(plan)
	assert.Equal(t, 90, plan.Goals[0].LifeExpectancy)
	assert.Equal(t, 0, plan.Goals[1].LifeExpectancy)
}
