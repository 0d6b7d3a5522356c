// Package compare runs what-if templates against a base goal plan and
// reports how each one changes the required SIP, cost and achievability.
package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/transform"
)

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// Templates are built-in template names or ad-hoc transform specs
	// such as "delay_goal:years=2".
	Templates  []string
	ConfigPath string
}

// resolve turns a template name or transform spec into a template
func (ce *CompareEngine) resolve(name string) (transform.Template, error) {
	if t, ok := ce.TemplateRegistry.Get(name); ok {
		return t, nil
	}
	if strings.Contains(name, ":") {
		tr, err := ce.TransformRegistry.ParseTransformSpec(name)
		if err != nil {
			return transform.Template{}, err
		}
		return transform.Template{Name: name, Description: tr.Description(), Transforms: []transform.PlanTransform{tr}}, nil
	}
	return transform.Template{}, fmt.Errorf("template %s not found", name)
}

// Compare calculates the base plan and every requested what-if. A what-if
// that yields an invalid plan is reported on its result rather than failing
// the whole comparison.
func (ce *CompareEngine) Compare(ctx context.Context, base domain.GoalPlanInput, options CompareOptions) (*ComparisonSet, error) {
	baseRes, err := ce.CalcEngine.Calculate(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.DisplayName(), base, baseRes)

	alternatives := make([]ComparisonResult, 0, len(options.Templates))
	for _, name := range options.Templates {
		template, err := ce.resolve(name)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			alternatives = append(alternatives, ComparisonResult{ScenarioName: template.Name, Description: template.Description, Error: err.Error()})
			continue
		}

		altRes, err := ce.CalcEngine.Calculate(ctx, modified)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				alternatives = append(alternatives, ComparisonResult{ScenarioName: template.Name, Description: template.Description, Input: modified, Error: err.Error()})
				continue
			}
			return nil, fmt.Errorf("failed to calculate %s: %w", template.Name, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(template.Name, modified, altRes)
		alt.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.DisplayName(),
		GoalType:           base.GoalType,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
