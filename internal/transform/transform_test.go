package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Helper function to create a basic test plan
func createTestPlan() domain.GoalPlanInput {
	return domain.GoalPlanInput{
		Name:                  "College",
		GoalType:              domain.GoalChildEducation,
		CurrentAge:            38,
		ChildCurrentAge:       8,
		TargetAge:             18,
		BaseCost:              dec("1000000"),
		CostBreakdown:         map[string]decimal.Decimal{"Travel": dec("5")},
		CurrentSavings:        dec("200000"),
		MonthlyIncome:         dec("150000"),
		InflationRatePct:      dec("6"),
		ExpectedReturnRatePct: dec("12"),
	}
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := createTestPlan()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result.TargetAge != base.TargetAge {
		t.Error("Expected an unchanged copy")
	}

	result.CostBreakdown["Travel"] = dec("50")
	if !base.CostBreakdown["Travel"].Equal(dec("5")) {
		t.Error("Result must not share the cost breakdown map with the base")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestPlan(), []PlanTransform{nil})
	if err == nil {
		t.Fatal("Expected error for nil transform")
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestPlan()
	transforms := []PlanTransform{
		&DelayGoal{Years: 2},
		&AddSavings{Amount: dec("50000")},
		&SetLoan{Want: true, TenureYears: 7, RatePct: dec("9.5")},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("ApplyTransforms failed: %v", err)
	}

	if result.TargetAge != 20 {
		t.Errorf("Expected target age 20, got %d", result.TargetAge)
	}
	if !result.CurrentSavings.Equal(dec("250000")) {
		t.Errorf("Expected savings 250000, got %s", result.CurrentSavings)
	}
	if !result.WantLoan || result.LoanTenureYears != 7 || !result.LoanInterestRatePct.Equal(dec("9.5")) {
		t.Errorf("Expected 7-year loan at 9.5%%, got %+v", result)
	}

	if base.TargetAge != 18 || !base.CurrentSavings.Equal(dec("200000")) || base.WantLoan {
		t.Error("Base plan was modified")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(createTestPlan(), []PlanTransform{&DelayGoal{Years: 0}})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "delay_goal validation failed") {
		t.Errorf("Unexpected error: %v", err)
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatal("Expected a TransformError in the chain")
	}
	if te.Operation != "validate" {
		t.Errorf("Expected validate operation, got %s", te.Operation)
	}
}

func TestDelayGoal_LifeExpectancy(t *testing.T) {
	base := domain.GoalPlanInput{GoalType: domain.GoalRetirement, CurrentAge: 40, TargetAge: 60, LifeExpectancy: 62}
	if _, err := ApplyTransforms(base, []PlanTransform{&DelayGoal{Years: 2}}); err == nil {
		t.Error("Expected error when the target age reaches life expectancy")
	}
}

func TestSetTargetAge(t *testing.T) {
	base := createTestPlan()

	result, err := ApplyTransforms(base, []PlanTransform{&SetTargetAge{Age: 22}})
	if err != nil {
		t.Fatalf("SetTargetAge failed: %v", err)
	}
	if result.TargetAge != 22 {
		t.Errorf("Expected 22, got %d", result.TargetAge)
	}

	// Education goals count from the child's age, so 7 is in the past
	if _, err := ApplyTransforms(base, []PlanTransform{&SetTargetAge{Age: 7}}); err == nil {
		t.Error("Expected error for a target age before the child's age")
	}
}

func TestAdjustInflation_FloorsAtZero(t *testing.T) {
	result, err := ApplyTransforms(createTestPlan(), []PlanTransform{&AdjustInflation{DeltaPct: dec("-10")}})
	if err != nil {
		t.Fatalf("AdjustInflation failed: %v", err)
	}
	if !result.InflationRatePct.IsZero() {
		t.Errorf("Expected inflation floored at 0, got %s", result.InflationRatePct)
	}

	if err := (&AdjustInflation{}).Validate(createTestPlan()); err == nil {
		t.Error("Expected error for zero delta")
	}
}

func TestAdjustReturn(t *testing.T) {
	result, err := ApplyTransforms(createTestPlan(), []PlanTransform{&AdjustReturn{DeltaPct: dec("-2")}})
	if err != nil {
		t.Fatalf("AdjustReturn failed: %v", err)
	}
	if !result.ExpectedReturnRatePct.Equal(dec("10")) {
		t.Errorf("Expected 10, got %s", result.ExpectedReturnRatePct)
	}
}

func TestSetLoan_KeepsExistingTerms(t *testing.T) {
	base := createTestPlan()
	base.LoanTenureYears = 5
	base.LoanInterestRatePct = dec("8")

	result, err := ApplyTransforms(base, []PlanTransform{&SetLoan{Want: true}})
	if err != nil {
		t.Fatalf("SetLoan failed: %v", err)
	}
	if result.LoanTenureYears != 5 || !result.LoanInterestRatePct.Equal(dec("8")) {
		t.Errorf("Expected existing terms to be kept, got %d years at %s", result.LoanTenureYears, result.LoanInterestRatePct)
	}

	result, err = ApplyTransforms(result, []PlanTransform{&SetLoan{Want: false}})
	if err != nil {
		t.Fatalf("SetLoan failed: %v", err)
	}
	if result.WantLoan {
		t.Error("Expected loan to be switched off")
	}
}

func TestSetLoanTenure_RequiresLoan(t *testing.T) {
	if err := (&SetLoanTenure{Years: 5}).Validate(createTestPlan()); err == nil {
		t.Error("Expected error when the plan has no loan")
	}

	base := createTestPlan()
	base.WantLoan = true
	result, err := ApplyTransforms(base, []PlanTransform{&SetLoanTenure{Years: 5}})
	if err != nil {
		t.Fatalf("SetLoanTenure failed: %v", err)
	}
	if result.LoanTenureYears != 5 {
		t.Errorf("Expected 5 years, got %d", result.LoanTenureYears)
	}
}

func TestSavingsTransforms(t *testing.T) {
	if err := (&AddSavings{Amount: dec("-1")}).Validate(createTestPlan()); err == nil {
		t.Error("Expected error for negative amount")
	}
	if err := (&ScaleSavings{Factor: dec("-1")}).Validate(createTestPlan()); err == nil {
		t.Error("Expected error for negative factor")
	}

	result, err := ApplyTransforms(createTestPlan(), []PlanTransform{&ScaleSavings{Factor: dec("1.5")}})
	if err != nil {
		t.Fatalf("ScaleSavings failed: %v", err)
	}
	if !result.CurrentSavings.Equal(dec("300000")) {
		t.Errorf("Expected 300000, got %s", result.CurrentSavings)
	}
}

func TestSetMonthlyInvestment(t *testing.T) {
	result, err := ApplyTransforms(createTestPlan(), []PlanTransform{&SetMonthlyInvestment{Amount: dec("12000")}})
	if err != nil {
		t.Fatalf("SetMonthlyInvestment failed: %v", err)
	}
	if !result.MonthlyInvestment.Equal(dec("12000")) {
		t.Errorf("Expected 12000, got %s", result.MonthlyInvestment)
	}
	if (&SetMonthlyInvestment{}).Description() != "Invest exactly the required SIP" {
		t.Error("Unexpected description for zero amount")
	}
}

func TestTransformError(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransformError("delay_goal", "apply", "bad years", cause)

	if !strings.Contains(err.Error(), "transform delay_goal (apply): bad years: boom") {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	plain := NewTransformError("delay_goal", "validate", "bad years", nil)
	if plain.Error() != "transform delay_goal (validate): bad years" {
		t.Errorf("Unexpected message: %s", plain.Error())
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantName string
	}{
		{"delay_goal:years=2", "delay_goal"},
		{"set_target_age:age=21", "set_target_age"},
		{"adjust_inflation:delta=-0.5", "adjust_inflation"},
		{"adjust_return:delta=1.5", "adjust_return"},
		{"set_return:rate=9", "set_return"},
		{"set_loan:want=true,tenure=7,rate=9.5", "set_loan"},
		{"set_loan:want=false", "set_loan"},
		{"set_loan_tenure:years=5", "set_loan_tenure"},
		{"add_savings:amount=50000", "add_savings"},
		{"scale_savings:factor=2", "scale_savings"},
		{"set_monthly_investment:amount=15000", "set_monthly_investment"},
	}
	for _, tt := range tests {
		tr, err := registry.ParseTransformSpec(tt.spec)
		if err != nil {
			t.Errorf("ParseTransformSpec(%q) failed: %v", tt.spec, err)
			continue
		}
		if tr.Name() != tt.wantName {
			t.Errorf("ParseTransformSpec(%q) = %s, want %s", tt.spec, tr.Name(), tt.wantName)
		}
	}

	loan, _ := registry.ParseTransformSpec("set_loan:want=true,tenure=7,rate=9.5")
	sl := loan.(*SetLoan)
	if !sl.Want || sl.TenureYears != 7 || !sl.RatePct.Equal(dec("9.5")) {
		t.Errorf("Unexpected loan params: %+v", sl)
	}
}

func TestTransformRegistry_ParseErrors(t *testing.T) {
	registry := NewTransformRegistry()

	bad := []string{
		"delay_goal",
		"delay_goal:years",
		"delay_goal:months=3",
		"delay_goal:years=abc",
		"adjust_return:delta=x",
		"set_loan:tenure=5",
		"set_loan:want=maybe",
		"unknown:x=1",
	}
	for _, spec := range bad {
		if _, err := registry.ParseTransformSpec(spec); err == nil {
			t.Errorf("Expected error for %q", spec)
		}
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	if len(names) != 10 {
		t.Errorf("Expected 10 transforms, got %d: %v", len(names), names)
	}
	if names[0] != "add_savings" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}
