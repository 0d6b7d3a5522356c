package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/logging"
	"github.com/rgehrsitz/goalplan/internal/planstore"
	"github.com/rgehrsitz/goalplan/internal/server"
	"github.com/rgehrsitz/goalplan/internal/ssy"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Load and save plans on a plan service",
	}
	cmd.PersistentFlags().String("server", "", "Plan service URL (default PLAN_SERVICE_URL or http://localhost:$PORT)")
	cmd.PersistentFlags().String("user", "", "User id sent as X-User-ID (required)")
	cmd.PersistentFlags().String("goal", "", "Goal type (required)")

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Fetch a saved plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, userID, goalType, err := planFlags(cmd)
			if err != nil {
				return err
			}
			saved, err := store.Load(cmd.Context(), userID, goalType)
			if err != nil {
				return err
			}

			plan := &domain.PlanFile{Goals: []domain.GoalPlanInput{saved.Input}}
			if file, _ := cmd.Flags().GetString("file"); file != "" {
				if err := config.SaveToFile(file, plan); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Plan %s saved to %s\n", saved.ID, file)
				return nil
			}
			data, err := yaml.Marshal(plan)
			if err != nil {
				return fmt.Errorf("failed to encode plan: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	loadCmd.Flags().String("file", "", "Write the plan to this file instead of stdout")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Store a goal from a plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, userID, goalType, err := planFlags(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			plan, err := loadPlan(file)
			if err != nil {
				return err
			}
			in, err := selectGoal(plan, string(goalType))
			if err != nil {
				return err
			}
			saved, err := store.Save(cmd.Context(), userID, goalType, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s plan %s for %s\n", goalType, saved.ID, userID)
			return nil
		},
	}
	saveCmd.Flags().String("file", "", "Plan file containing the goal (required)")
	_ = saveCmd.MarkFlagRequired("file")

	cmd.AddCommand(loadCmd, saveCmd)
	return cmd
}

// planFlags resolves the store and key shared by the plan subcommands
func planFlags(cmd *cobra.Command) (planstore.Store, string, domain.GoalType, error) {
	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		return nil, "", "", fmt.Errorf("--user is required")
	}
	goal, _ := cmd.Flags().GetString("goal")
	goalType, err := domain.ParseGoalType(goal)
	if err != nil {
		return nil, "", "", err
	}

	url, _ := cmd.Flags().GetString("server")
	if url == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", "", err
		}
		url = cfg.PlanServiceURL
		if url == "" {
			url = "http://localhost:" + cfg.Port
		}
	}
	return planstore.NewHTTPStore(url), userID, goalType, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the planning API. Configuration is read from the environment and an
optional .env file: PORT, ENV, LOG_LEVEL, DATABASE_URL or PLAN_SERVICE_URL,
REDIS_ADDR, PLAN_CACHE_TTL, RATE_LIMIT_PER_MINUTE, SSY_MIN_YEAR, SSY_MAX_YEAR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.Setup(cfg.Env, cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, closeStore, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(logging.NewZerologAdapter(logger))

			srv := server.New(server.Options{
				Engine:             engine,
				Store:              store,
				Limits:             ssy.SimulationLimits{MinYear: cfg.SsyMinYear, MaxYear: cfg.SsyMaxYear},
				Logger:             logger,
				RateLimitPerMinute: cfg.RateLimitPerMinute,
				Version:            version,
			})
			return srv.Run(ctx, ":"+cfg.Port)
		},
	}
}

// openStore picks Postgres, a remote plan service or memory, and puts a
// Redis cache in front when REDIS_ADDR is set
func openStore(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (planstore.Store, func(), error) {
	var (
		store   planstore.Store
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, pool.Close)
		if err := pool.Ping(ctx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		pg := planstore.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			closeAll()
			return nil, nil, err
		}
		logger.Info().Msg("Storing plans in Postgres")
		store = pg
	case cfg.PlanServiceURL != "":
		logger.Info().Str("url", cfg.PlanServiceURL).Msg("Storing plans on the plan service")
		store = planstore.NewHTTPStore(cfg.PlanServiceURL)
	default:
		logger.Warn().Msg("No DATABASE_URL or PLAN_SERVICE_URL; plans are kept in memory")
		store = planstore.NewMemoryStore()
	}

	if cfg.RedisAddr != "" {
		cache := planstore.NewRedisCache(cfg.RedisAddr)
		if err := cache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable; plan cache disabled")
			_ = cache.Close()
		} else {
			closers = append(closers, func() { _ = cache.Close() })
			store = planstore.NewCachedStore(store, cache, cfg.PlanCacheTTL, logger)
		}
	}
	return store, closeAll, nil
}
