package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shelterrights/shelterrights-api/internal/api"
	"github.com/shelterrights/shelterrights-api/internal/config"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/genai"
	"github.com/shelterrights/shelterrights-api/internal/logging"
	"github.com/shelterrights/shelterrights-api/internal/ratelimit"
	"github.com/shelterrights/shelterrights-api/internal/server"
	"github.com/shelterrights/shelterrights-api/internal/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	serviceName     = "shelterrights-api"
	shutdownTimeout = 10 * time.Second
)

type serveOptions struct {
	addr           string
	dsn            string
	jwtSecret      string
	allowedOrigins []string
	migrate        bool
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "ShelterRights housing affordability API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func serveCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", config.DefaultAddr(), "server address")
	cmd.Flags().StringVar(&opts.dsn, "dsn", os.Getenv("DATABASE_URL"), "database connection string")
	cmd.Flags().StringVar(&opts.jwtSecret, "jwt-secret", os.Getenv("SUPABASE_JWT_SECRET"), "secret used to verify access tokens")
	cmd.Flags().StringSliceVar(&opts.allowedOrigins, "allowed-origins",
		splitOrigins(config.Getenv("FRONTEND_URL", "http://localhost:5173")), "comma-separated list of allowed origins for CORS")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func serve(ctx context.Context, opts *serveOptions) error {
	cfg, err := config.NewConfig(opts.addr, opts.dsn, opts.jwtSecret, opts.allowedOrigins)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.LoadOptional()

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbConn, err := database.NewPgRepository(dbCtx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("db close", zap.Error(err))
		}
	}()

	if opts.migrate {
		if err := database.MigrateUp(dbConn.DB()); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)
	statsUpdater.Run()
	defer statsUpdater.Stop()

	advisor := genai.NewAdvisor(cfg.Gemini, logger, statsUpdater)
	if !advisor.Configured() {
		logger.Warn("GEMINI_API_KEY is not set, assistant responses will use fallback text")
	}

	var limiter ratelimit.Limiter = ratelimit.Noop{}
	if cfg.Redis.Enabled() {
		client := ratelimit.NewRedisClient(cfg.Redis)
		defer client.Close()
		limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimitPerMinute, time.Minute)
		logger.Info("rate limiting enabled",
			zap.String("redis_addr", cfg.Redis.Addr),
			zap.Int("per_minute", cfg.RateLimitPerMinute))
	}

	chat := api.NewTenantChat(dbConn, advisor, logger)
	hub := server.NewHub(logger, chat, statsUpdater)
	go hub.Run()

	app := api.NewApp(mux, logger, hub, dbConn, statsUpdater, advisor, limiter, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Info("received signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("server", zap.Error(err))
		}
	}

	shutDownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	var shutdownErr error
	if err := app.Shutdown(shutDownCtx); err != nil {
		shutdownErr = errors.Join(shutdownErr, err)
	}

	logger.Info("shutting down assistant sessions")
	if err := hub.Shutdown(shutDownCtx); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("hub shutdown: %w", err))
	}

	if shutdownErr != nil {
		return shutdownErr
	}
	logger.Info("shutdown complete")
	return nil
}

func migrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "database connection string")

	open := func(ctx context.Context) (*database.PgRepository, error) {
		if dsn == "" {
			return nil, errors.New("database DSN cannot be empty")
		}
		return database.NewPgRepository(ctx, dsn)
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.MigrateUp(db.DB()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.MigrateDown(db.DB(), steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
