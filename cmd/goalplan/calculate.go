package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/goalplan/internal/archive"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [plan-file]",
		Short: "Calculate the goals in a plan file",
		Long: `Calculate every goal in a YAML, TOML or JSON plan file and print the result.

Examples:
  goalplan calculate plan.yaml
  goalplan calculate plan.yaml --goal College --schedule
  goalplan calculate plan.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runCalculate,
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().String("goal", "", "Only calculate the goal with this name or goal type")
	cmd.Flags().Bool("schedule", false, "Include the loan amortization schedule")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	plan, err := loadPlan(args[0])
	if err != nil {
		return err
	}
	goalName, _ := cmd.Flags().GetString("goal")
	goals, err := selectGoals(plan, goalName)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	withSchedule, _ := cmd.Flags().GetBool("schedule")
	report, err := buildReport(cmd.Context(), newEngine(cmd), goals, withSchedule)
	if err != nil {
		return err
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// buildReport calculates each goal and collects the results
func buildReport(ctx context.Context, engine *calculation.CalculationEngine, goals []domain.GoalPlanInput, withSchedule bool) (*output.Report, error) {
	report := output.NewReport("", time.Now())
	for _, in := range goals {
		res, err := engine.Calculate(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("goal %s: %w", in.DisplayName(), err)
		}
		entry := report.Add(in, res)
		if withSchedule && in.WantLoan {
			sched, err := engine.LoanSchedule(in)
			if err != nil {
				return nil, fmt.Errorf("goal %s: %w", in.DisplayName(), err)
			}
			entry.Schedule = sched.Rows()
		}
	}
	return report, nil
}

var reportContentTypes = map[string]string{
	"console": "text/plain; charset=utf-8",
	"json":    "application/json",
	"csv":     "text/csv",
	"html":    "text/html; charset=utf-8",
	"pdf":     "application/pdf",
}

var reportExtensions = map[string]string{
	"console": "txt",
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [plan-file]",
		Short: "Render a plan report and archive it",
		Long: `Render a report for the goals in a plan file and store it in a local
directory or an S3 bucket. The S3 archive reads S3_BUCKET, S3_REGION,
S3_ENDPOINT and the AWS credentials from the environment.

Examples:
  goalplan report plan.yaml --out reports
  goalplan report plan.yaml --format html --archive s3`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}
	cmd.Flags().StringP("format", "f", "pdf", "Report format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().String("out", "reports", "Directory for the dir archive")
	cmd.Flags().String("archive", "dir", "Where to store the report (dir, s3)")
	cmd.Flags().String("goal", "", "Only include the goal with this name or goal type")
	cmd.Flags().Duration("link-expiry", time.Hour, "Lifetime of the download link for S3 reports")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	plan, err := loadPlan(args[0])
	if err != nil {
		return err
	}
	goalName, _ := cmd.Flags().GetString("goal")
	goals, err := selectGoals(plan, goalName)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	report, err := buildReport(ctx, newEngine(cmd), goals, true)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	ext := f.Name()
	if e, ok := reportExtensions[ext]; ok {
		ext = e
	}
	goalType, name := "plan", "goals"
	if len(goals) == 1 {
		goalType, name = string(goals[0].GoalType), goals[0].DisplayName()
	}
	key := archive.ReportKey(goalType, name, ext, report.GeneratedAt)

	kind, _ := cmd.Flags().GetString("archive")
	switch strings.ToLower(kind) {
	case "dir", "":
		dir, _ := cmd.Flags().GetString("out")
		location, err := archive.NewDirArchive(dir).Put(ctx, key, reportContentTypes[f.Name()], data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", location)

	case "s3":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := archive.NewS3Archive(ctx, cfg.S3)
		if err != nil {
			return err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return err
		}
		location, err := store.Put(ctx, key, reportContentTypes[f.Name()], data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report uploaded to %s\n", location)

		expiry, _ := cmd.Flags().GetDuration("link-expiry")
		link, err := store.PresignedURL(ctx, key, expiry)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Download link (valid %s): %s\n", expiry, link)

	default:
		return fmt.Errorf("unknown archive: %s (valid: dir, s3)", kind)
	}
	return nil
}
