package main

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/ssy"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func ssyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssy",
		Short: "Sukanya Samriddhi (girl-child savings scheme) rates and projections",
	}

	rateCmd := &cobra.Command{
		Use:   "rate [year]",
		Short: "Show the scheme's interest rate for a calendar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			limits := ssy.DefaultLimits()
			if err := ssy.ValidateYear(year, limits.MinYear, limits.MaxYear); err != nil {
				return err
			}

			schedule := ssy.DefaultSchedule()
			rate, period := schedule.Resolve(year)
			var source string
			switch {
			case period != nil:
				source = "published rate, " + period.PeriodLabel
			case year > schedule.LastTableYear():
				source = "projected rate"
			default:
				source = "rate before the published table"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%s)\n", year, output.FormatPercentage(rate), source)
			return nil
		},
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project an account from opening to maturity",
		Long: `Project a Sukanya Samriddhi account year by year.

Examples:
  goalplan ssy simulate --age 3 --deposit 150000 --start-year 2024
  goalplan ssy simulate --age 5 --deposit 50000 --start-year 2025 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			age, _ := cmd.Flags().GetInt("age")
			depositStr, _ := cmd.Flags().GetString("deposit")
			deposit, err := decimal.NewFromString(depositStr)
			if err != nil {
				return fmt.Errorf("invalid --deposit %q: %w", depositStr, err)
			}
			startYear, _ := cmd.Flags().GetInt("start-year")
			maturityAge, _ := cmd.Flags().GetInt("maturity-age")
			depositYears, _ := cmd.Flags().GetInt("deposit-years")

			res, err := ssy.Simulate(domain.SsyInput{
				GirlAge:            age,
				AnnualDeposit:      deposit,
				StartYear:          startYear,
				MaturityAge:        maturityAge,
				DepositPeriodYears: depositYears,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			data, err := output.SsyFormatter{Kind: format}.Format(res)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	simulateCmd.Flags().Int("age", 0, "Girl's age when the account is opened")
	simulateCmd.Flags().String("deposit", "", "Annual deposit")
	simulateCmd.Flags().Int("start-year", 0, "Calendar year of the first deposit")
	simulateCmd.Flags().Int("maturity-age", 0, "Age at maturity (default 21)")
	simulateCmd.Flags().Int("deposit-years", 0, "Years of deposits (default 15)")
	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	_ = simulateCmd.MarkFlagRequired("deposit")
	_ = simulateCmd.MarkFlagRequired("start-year")

	cmd.AddCommand(rateCmd, simulateCmd)
	return cmd
}
