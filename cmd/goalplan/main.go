package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/logging"
	"github.com/rgehrsitz/goalplan/internal/money"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "goalplan",
		Short: "Goal-based financial planning calculator",
		Long: `Plan savings for life goals such as retirement, a child's education or a
vacation: project the cost, size the monthly SIP, and see whether the plan is achievable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		goalsCmd(),
		compareCmd(),
		breakEvenCmd(),
		ssyCmd(),
		reportCmd(),
		planCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goalplan %s (commit %s, built %s)\n", version, commit, date)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Include module build information")
	return cmd
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newEngine builds a calculation engine, logging to stderr when --debug is set
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger := logging.SetupWriter(cmd.ErrOrStderr(), "development", "debug")
		engine.SetLogger(logging.NewZerologAdapter(logger))
	}
	return engine
}

func loadPlan(path string) (*domain.PlanFile, error) {
	plan, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func matchesGoal(g domain.GoalPlanInput, name string) bool {
	if strings.EqualFold(g.Name, name) {
		return true
	}
	gt, err := domain.ParseGoalType(name)
	return err == nil && g.GoalType == gt
}

// selectGoals returns the goals matching name (by plan name or goal type),
// or every goal when name is empty
func selectGoals(plan *domain.PlanFile, name string) ([]domain.GoalPlanInput, error) {
	if name == "" {
		return plan.Goals, nil
	}
	var out []domain.GoalPlanInput
	for _, g := range plan.Goals {
		if matchesGoal(g, name) {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("goal %q not found in plan", name)
	}
	return out, nil
}

// selectGoal is selectGoals for commands that work on exactly one goal
func selectGoal(plan *domain.PlanFile, name string) (domain.GoalPlanInput, error) {
	goals, err := selectGoals(plan, name)
	if err != nil {
		return domain.GoalPlanInput{}, err
	}
	if len(goals) > 1 {
		return domain.GoalPlanInput{}, fmt.Errorf("plan has %d matching goals; choose one with --goal", len(goals))
	}
	return goals[0], nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			ok := color.New(color.FgGreen)
			ok.Fprintf(cmd.OutOrStdout(), "✓ Plan file %s is valid (%d goals)\n", args[0], len(plan.Goals))
			return nil
		},
	}
}

func goalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "List the supported goal types",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"Type", "Title", "Horizon From", "Loan", "Max Target Age"}}
			for _, p := range profile.Default().List() {
				horizon := "your age"
				if p.ChildRelative {
					horizon = "child's age"
				}
				loan := "no"
				if p.LoanAllowed {
					loan = "up to " + money.Percent(p.LoanCoverageRatio.Shift(2))
				}
				maxAge := "-"
				if p.MaxTargetAge > 0 {
					maxAge = fmt.Sprintf("%d", p.MaxTargetAge)
				}
				data = append(data, []string{string(p.Type), p.Title, horizon, loan, maxAge})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
