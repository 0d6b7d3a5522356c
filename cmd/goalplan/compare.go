package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/breakeven"
	"github.com/rgehrsitz/goalplan/internal/compare"
	"github.com/rgehrsitz/goalplan/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a goal against what-if templates",
		Long: `Compare a goal plan against alternative assumptions, timings and funding.

Examples:
  goalplan compare plan.yaml --goal College --with delay_1yr,return_plus_2
  goalplan compare plan.yaml --with with_loan,delay_goal:years=3 --format csv
  goalplan compare --list-templates  # Show all available templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompare,
	}
	cmd.Flags().String("with", "", "Comma-separated list of templates or transform specs to compare (required)")
	cmd.Flags().String("goal", "", "Goal name or goal type (required when the plan has several goals)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if list, _ := cmd.Flags().GetBool("list-templates"); list {
		fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
	}

	templatesStr, _ := cmd.Flags().GetString("with")
	templates := transform.ParseTemplateList(templatesStr)
	if len(templates) == 0 {
		return fmt.Errorf("--with flag is required to specify templates to compare (or use --list-templates)")
	}

	plan, err := loadPlan(args[0])
	if err != nil {
		return err
	}
	goalName, _ := cmd.Flags().GetString("goal")
	base, err := selectGoal(plan, goalName)
	if err != nil {
		return err
	}

	engine := compare.NewCompareEngine(newEngine(cmd))
	set, err := engine.Compare(cmd.Context(), base, compare.CompareOptions{Templates: templates, ConfigPath: args[0]})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, s)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(out, s)
	case "compact":
		fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(set))
	case "table", "console", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	return nil
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [plan-file]",
		Short: "Find the plan change that fits a monthly SIP budget",
		Long: `Find the later goal age, the higher expected return, or the extra savings
today at which the required monthly SIP fits a budget.

Examples:
  goalplan break-even plan.yaml --budget 8000
  goalplan break-even plan.yaml --goal College --budget 8000 --target return_rate
  goalplan break-even plan.yaml --budget 5000 --target savings --max-savings 500000`,
		Args: cobra.ExactArgs(1),
		RunE: runBreakEven,
	}
	cmd.Flags().String("budget", "", "Monthly SIP budget (required)")
	cmd.Flags().String("target", string(breakeven.OptimizeAll), "What to solve for (target_age, return_rate, savings, all)")
	cmd.Flags().String("goal", "", "Goal name or goal type (required when the plan has several goals)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Int("min-age", 0, "Earliest target age to consider")
	cmd.Flags().Int("max-age", 0, "Latest target age to consider")
	cmd.Flags().String("max-return", "", "Highest expected return (%) to consider")
	cmd.Flags().String("max-savings", "", "Most savings today to consider")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func decimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return &d, nil
}

func breakEvenConstraints(cmd *cobra.Command) (breakeven.Constraints, error) {
	var c breakeven.Constraints
	if cmd.Flags().Changed("min-age") {
		v, _ := cmd.Flags().GetInt("min-age")
		c.MinTargetAge = &v
	}
	if cmd.Flags().Changed("max-age") {
		v, _ := cmd.Flags().GetInt("max-age")
		c.MaxTargetAge = &v
	}
	var err error
	if c.MaxReturnPct, err = decimalFlag(cmd, "max-return"); err != nil {
		return c, err
	}
	if c.MaxSavings, err = decimalFlag(cmd, "max-savings"); err != nil {
		return c, err
	}
	return c, nil
}

func runBreakEven(cmd *cobra.Command, args []string) error {
	budget, err := decimalFlag(cmd, "budget")
	if err != nil {
		return err
	}
	if budget == nil {
		return fmt.Errorf("--budget is required")
	}
	targetStr, _ := cmd.Flags().GetString("target")
	target, err := breakeven.ParseTarget(targetStr)
	if err != nil {
		return err
	}
	constraints, err := breakEvenConstraints(cmd)
	if err != nil {
		return err
	}

	plan, err := loadPlan(args[0])
	if err != nil {
		return err
	}
	goalName, _ := cmd.Flags().GetString("goal")
	base, err := selectGoal(plan, goalName)
	if err != nil {
		return err
	}

	solver := breakeven.NewDefaultSolver(newEngine(cmd))
	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "table" && format != "console" && format != "json" && format != "" {
		return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}

	if target == breakeven.OptimizeAll {
		result, err := solver.OptimizeMultiDimensional(cmd.Context(), base, *budget, constraints)
		if err != nil {
			return err
		}
		if format == "json" {
			s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
			return nil
		}
		fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
		return nil
	}

	result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
		Base:        base,
		Budget:      *budget,
		Target:      target,
		Constraints: constraints,
	})
	if err != nil {
		return err
	}
	if format == "json" {
		s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
		return nil
	}
	fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
	return nil
}
