package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pct(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// CreateBuiltInTemplates creates a template registry with common what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "delay_1yr",
		Description: "Reach the goal one year later",
		Transforms:  []PlanTransform{&DelayGoal{Years: 1}},
	})
	registry.Register(Template{
		Name:        "delay_3yr",
		Description: "Reach the goal three years later",
		Transforms:  []PlanTransform{&DelayGoal{Years: 3}},
	})

	registry.Register(Template{
		Name:        "inflation_plus_1",
		Description: "Costs inflate one point faster",
		Transforms:  []PlanTransform{&AdjustInflation{DeltaPct: pct(1)}},
	})
	registry.Register(Template{
		Name:        "inflation_minus_1",
		Description: "Costs inflate one point slower",
		Transforms:  []PlanTransform{&AdjustInflation{DeltaPct: pct(-1)}},
	})

	registry.Register(Template{
		Name:        "return_plus_2",
		Description: "Investments return two points more",
		Transforms:  []PlanTransform{&AdjustReturn{DeltaPct: pct(2)}},
	})
	registry.Register(Template{
		Name:        "return_minus_2",
		Description: "Investments return two points less",
		Transforms:  []PlanTransform{&AdjustReturn{DeltaPct: pct(-2)}},
	})

	registry.Register(Template{
		Name:        "no_loan",
		Description: "Fund the whole goal from investments",
		Transforms:  []PlanTransform{&SetLoan{Want: false}},
	})
	registry.Register(Template{
		Name:        "with_loan",
		Description: "Borrow part of the goal cost",
		Transforms:  []PlanTransform{&SetLoan{Want: true}},
	})

	registry.Register(Template{
		Name:        "double_savings",
		Description: "Start with twice the current savings",
		Transforms:  []PlanTransform{&ScaleSavings{Factor: pct(2)}},
	})

	registry.Register(Template{
		Name:        "cautious",
		Description: "Costs inflate one point faster and returns are two points lower",
		Transforms: []PlanTransform{
			&AdjustInflation{DeltaPct: pct(1)},
			&AdjustReturn{DeltaPct: pct(-2)},
		},
	})
	registry.Register(Template{
		Name:        "delay_1yr_no_loan",
		Description: "Wait one more year instead of borrowing",
		Transforms: []PlanTransform{
			&DelayGoal{Years: 1},
			&SetLoan{Want: false},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base plan
func ApplyTemplate(base domain.GoalPlanInput, template Template) (domain.GoalPlanInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Timing", "Assumptions", "Funding", "Combinations"}
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := "Combinations"
		switch {
		case len(t.Transforms) > 1:
		case strings.HasPrefix(name, "delay_"):
			category = "Timing"
		case strings.HasPrefix(name, "inflation_"), strings.HasPrefix(name, "return_"):
			category = "Assumptions"
		default:
			category = "Funding"
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  goalplan compare plan.yaml --with delay_1yr,return_minus_2\n")
	sb.WriteString("  goalplan compare plan.yaml --with no_loan --goal college\n")

	return sb.String()
}
