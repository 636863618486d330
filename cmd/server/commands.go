package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/behavioral-assessment/internal/auth"
	"github.com/SAP-F-2025/behavioral-assessment/internal/config"
	"github.com/SAP-F-2025/behavioral-assessment/internal/handlers"
	"github.com/SAP-F-2025/behavioral-assessment/internal/metrics"
	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories/postgres"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/SAP-F-2025/behavioral-assessment/internal/validator"
	"github.com/SAP-F-2025/behavioral-assessment/pkg"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "behavioral-assessment",
		Short:         "Behavioral assessment API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newExpireInvitationsCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run database migrations before serving")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := pkg.InitDatabase(cfg)
			if err != nil {
				return err
			}
			defer pkg.CloseDatabase(db)

			if err := pkg.Migrate(db); err != nil {
				return err
			}
			logger.Info("Database migrated")
			return nil
		},
	}
}

func newExpireInvitationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-invitations",
		Short: "Mark pending invitations past their expiry as expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			app, err := newApplication(cmd.Context(), cfg, logger, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer app.close()

			expired, err := app.services.Invitation().ExpireStale(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("Expired stale invitations", "count", expired)
			return nil
		},
	}
}

func bootstrap() (*config.Config, utils.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, utils.NewLogger(cfg.Environment, cfg.LogLevel), nil
}

// application holds the wired dependencies shared by the commands.
type application struct {
	db       *gorm.DB
	metrics  *metrics.Metrics
	services services.ServiceManager
	closers  []func() error
	logger   utils.Logger
}

func newApplication(ctx context.Context, cfg *config.Config, logger utils.Logger, reg prometheus.Registerer) (*application, error) {
	slogger := utils.ToSlogLogger(logger)
	app := &application{logger: logger}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.closers = append(app.closers, func() error { return pkg.CloseDatabase(db) })

	cacheService, closeCache, err := pkg.NewCache(ctx, cfg, logger)
	if err != nil {
		app.close()
		return nil, err
	}
	app.closers = append(app.closers, closeCache)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}
	app.closers = append(app.closers, publisher.Close)

	app.metrics = metrics.MustNewMetrics(reg)
	app.services = services.NewServiceManager(
		postgres.NewRepository(db),
		cacheService,
		publisher,
		app.metrics,
		slogger,
		validator.New(),
		services.ManagerConfig{
			SessionTTL:    cfg.SessionTTL,
			InvitationTTL: cfg.InvitationTTL,
		},
	)
	return app, nil
}

// close releases resources in reverse order of acquisition.
func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to release resource", "error", err)
		}
	}
}

func serve(ctx context.Context, migrate bool) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := newApplication(ctx, cfg, logger, registry)
	if err != nil {
		return err
	}
	defer app.close()

	if migrate {
		if err := pkg.Migrate(app.db); err != nil {
			return err
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.LoggerMiddleware(logger),
		utils.ContextLogger(logger),
		app.metrics.GinMiddleware(),
	)

	handlers.NewHandlerManager(
		app.services,
		validator.New(),
		logger,
		auth.NewCasdoorParser(cfg.Auth),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
