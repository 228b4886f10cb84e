package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "energy_tracker/docs"
	"energy_tracker/internal/handlers"
	"energy_tracker/internal/logger"
	"energy_tracker/internal/repository"
	"energy_tracker/internal/repository/db"
	"energy_tracker/internal/server"
	"energy_tracker/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title                       Energy Tracker API
// @version                     1.0
// @description                 Appliances, goals, calculators and a notification inbox with goal milestone alerts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:          "energytrack",
		Short:        "Personal energy tracker backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configDir)
		},
	}
	root.PersistentFlags().StringVar(&configDir, "config", "configs", "directory containing config.yml")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the goal monitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configDir)
		},
	})
	root.AddCommand(newCalcCmd())
	return root
}

func serve(parent context.Context, configDir string) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := loadConfig(viper.GetViper(), configDir)
	if err != nil {
		return fmt.Errorf("error reading config: %w", err)
	}

	// init logger
	log := logger.GetWithFormat(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("failed to init sqlite: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services, err := service.NewService(repos, service.Config{
		SigningKey:      cfg.SigningKey,
		TokenTTL:        cfg.TokenTTL,
		InboxCacheSize:  cfg.InboxCacheSize,
		MonitorDelay:    cfg.MonitorDelay,
		MonitorInterval: cfg.MonitorInterval,
	}, log)
	if err != nil {
		return err
	}
	apiHandler := handlers.NewHandler(services, log)
	apiHandler.SetStreamInterval(cfg.StreamInterval)
	apiHandler.SetCORSOrigins(cfg.CORSOrigins)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{})
	g, gctx := errgroup.WithContext(ctx)

	// goal monitor
	g.Go(func() error {
		services.Monitor.Run(gctx)
		return nil
	})

	// HTTP server
	g.Go(func() error {
		log.Infow("http_server_started", "port", cfg.Port)
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes()); err != nil {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})

	// graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openDB initializes the SQLite database.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "energy.db")
		path = "energy.db"
	}
	return db.InitDB(path)
}
