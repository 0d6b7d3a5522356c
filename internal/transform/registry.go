package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("delay_goal", createDelayGoal)
	registry.Register("set_target_age", createSetTargetAge)
	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("set_return", createSetReturn)
	registry.Register("set_loan", createSetLoan)
	registry.Register("set_loan_tenure", createSetLoanTenure)
	registry.Register("add_savings", createAddSavings)
	registry.Register("scale_savings", createScaleSavings)
	registry.Register("set_monthly_investment", createSetMonthlyInvestment)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_loan:want=true,tenure=7,rate=9.5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireInt(params map[string]string, transform, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func requireDecimal(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createDelayGoal(params map[string]string) (PlanTransform, error) {
	years, err := requireInt(params, "delay_goal", "years")
	if err != nil {
		return nil, err
	}
	return &DelayGoal{Years: years}, nil
}

func createSetTargetAge(params map[string]string) (PlanTransform, error) {
	age, err := requireInt(params, "set_target_age", "age")
	if err != nil {
		return nil, err
	}
	return &SetTargetAge{Age: age}, nil
}

func createAdjustInflation(params map[string]string) (PlanTransform, error) {
	delta, err := requireDecimal(params, "adjust_inflation", "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{DeltaPct: delta}, nil
}

func createAdjustReturn(params map[string]string) (PlanTransform, error) {
	delta, err := requireDecimal(params, "adjust_return", "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{DeltaPct: delta}, nil
}

func createSetReturn(params map[string]string) (PlanTransform, error) {
	rate, err := requireDecimal(params, "set_return", "rate")
	if err != nil {
		return nil, err
	}
	return &SetReturn{RatePct: rate}, nil
}

func createSetLoan(params map[string]string) (PlanTransform, error) {
	wantStr, ok := params["want"]
	if !ok {
		return nil, fmt.Errorf("set_loan requires 'want' parameter")
	}
	want, err := strconv.ParseBool(wantStr)
	if err != nil {
		return nil, fmt.Errorf("invalid want value: %w", err)
	}
	t := &SetLoan{Want: want}
	if _, ok := params["tenure"]; ok {
		if t.TenureYears, err = requireInt(params, "set_loan", "tenure"); err != nil {
			return nil, err
		}
	}
	if _, ok := params["rate"]; ok {
		if t.RatePct, err = requireDecimal(params, "set_loan", "rate"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func createSetLoanTenure(params map[string]string) (PlanTransform, error) {
	years, err := requireInt(params, "set_loan_tenure", "years")
	if err != nil {
		return nil, err
	}
	return &SetLoanTenure{Years: years}, nil
}

func createAddSavings(params map[string]string) (PlanTransform, error) {
	amount, err := requireDecimal(params, "add_savings", "amount")
	if err != nil {
		return nil, err
	}
	return &AddSavings{Amount: amount}, nil
}

func createScaleSavings(params map[string]string) (PlanTransform, error) {
	factor, err := requireDecimal(params, "scale_savings", "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleSavings{Factor: factor}, nil
}

func createSetMonthlyInvestment(params map[string]string) (PlanTransform, error) {
	amount, err := requireDecimal(params, "set_monthly_investment", "amount")
	if err != nil {
		return nil, err
	}
	return &SetMonthlyInvestment{Amount: amount}, nil
}
