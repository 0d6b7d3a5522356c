package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"gopkg.in/yaml.v3"
)

// Format is a plan file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from a file extension; unknown
// extensions are read as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// InputParser handles parsing of plan files
type InputParser struct {
	Profiles *profile.Registry
}

// NewInputParser creates a new input parser using the built-in goal profiles
func NewInputParser() *InputParser {
	return &InputParser{Profiles: profile.Default()}
}

// LoadFromFile loads a plan from a YAML, TOML or JSON file, applies the
// shared assumptions and validates every goal
func (ip *InputParser) LoadFromFile(filename string) (*domain.PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatFromPath(filename))
}

// Parse decodes, defaults and validates a plan
func (ip *InputParser) Parse(data []byte, format Format) (*domain.PlanFile, error) {
	plan, err := decodePlan(data, format)
	if err != nil {
		return nil, err
	}
	ApplyAssumptions(plan)
	if err := ip.ValidatePlan(plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return plan, nil
}

func decodePlan(data []byte, format Format) (*domain.PlanFile, error) {
	var plan domain.PlanFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatTOML:
		tree, err := toml.Load(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		// Re-encode through YAML so TOML files share the snake_case keys and
		// decimal handling of the YAML layout.
		intermediate, err := yaml.Marshal(tree.ToMap())
		if err != nil {
			return nil, fmt.Errorf("failed to convert TOML: %w", err)
		}
		if err := yaml.Unmarshal(intermediate, &plan); err != nil {
			return nil, fmt.Errorf("failed to decode TOML plan: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return &plan, nil
}

// ApplyAssumptions fills goal fields left at zero from the plan's shared
// assumptions. Loan defaults only apply to goals that want a loan.
func ApplyAssumptions(plan *domain.PlanFile) {
	a := plan.Assumptions
	for i := range plan.Goals {
		g := &plan.Goals[i]
		if a.InflationRatePct != nil && g.InflationRatePct.IsZero() {
			g.InflationRatePct = *a.InflationRatePct
		}
		if a.ExpectedReturnRatePct != nil && g.ExpectedReturnRatePct.IsZero() {
			g.ExpectedReturnRatePct = *a.ExpectedReturnRatePct
		}
		if g.WantLoan {
			if a.LoanInterestRatePct != nil && g.LoanInterestRatePct.IsZero() {
				g.LoanInterestRatePct = *a.LoanInterestRatePct
			}
			if a.LoanTenureYears != nil && g.LoanTenureYears == 0 {
				g.LoanTenureYears = *a.LoanTenureYears
			}
		}
		if a.LifeExpectancy != nil && g.LifeExpectancy == 0 && g.GoalType == domain.GoalRetirement {
			g.LifeExpectancy = *a.LifeExpectancy
		}
		if a.PlanYear != nil && g.PlanYear == 0 {
			g.PlanYear = *a.PlanYear
		}
	}
}

// ValidatePlan validates every goal in the plan
func (ip *InputParser) ValidatePlan(plan *domain.PlanFile) error {
	if len(plan.Goals) == 0 {
		return fmt.Errorf("no goals provided")
	}
	for i, g := range plan.Goals {
		if err := ip.ValidateGoal(g); err != nil {
			return fmt.Errorf("goal %d (%s) validation failed: %w", i, g.DisplayName(), err)
		}
	}
	return nil
}

// ValidateGoal checks a single goal against its profile
func (ip *InputParser) ValidateGoal(g domain.GoalPlanInput) error {
	p, err := ip.Profiles.Lookup(g.GoalType)
	if err != nil {
		return err
	}
	return calculation.ValidateInput(g, p)
}

// SaveToFile writes a plan as YAML
func SaveToFile(filename string, plan *domain.PlanFile) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
