// Package cmd assembles the application: configuration, logging, database,
// repositories, services, HTTP server, and graceful shutdown.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/daniel-torresc/emerald-backend-sub002/api"
	apiaccount "github.com/daniel-torresc/emerald-backend-sub002/api/account"
	apiaccounttype "github.com/daniel-torresc/emerald-backend-sub002/api/accounttype"
	apicard "github.com/daniel-torresc/emerald-backend-sub002/api/card"
	"github.com/daniel-torresc/emerald-backend-sub002/api/health"
	apiinstitution "github.com/daniel-torresc/emerald-backend-sub002/api/institution"
	apiuser "github.com/daniel-torresc/emerald-backend-sub002/api/user"
	accountapp "github.com/daniel-torresc/emerald-backend-sub002/application/account"
	accounttypeapp "github.com/daniel-torresc/emerald-backend-sub002/application/accounttype"
	appaudit "github.com/daniel-torresc/emerald-backend-sub002/application/audit"
	cardapp "github.com/daniel-torresc/emerald-backend-sub002/application/card"
	institutionapp "github.com/daniel-torresc/emerald-backend-sub002/application/institution"
	userapp "github.com/daniel-torresc/emerald-backend-sub002/application/user"
	"github.com/daniel-torresc/emerald-backend-sub002/config"
	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql"
	"github.com/daniel-torresc/emerald-backend-sub002/pkg/logger"
)

type App struct {
	cfg      *config.Config
	db       *gorm.DB
	recorder *appaudit.AsyncRecorder
	server   *http.Server
	router   *api.Router
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	db, err := mysql.Connect(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	factory := mysql.NewUnitOfWorkFactory(db, &cfg.Database)
	reads := mysql.NewRepositorySet(db)

	auditStore := mysql.NewAuditRepository(db)
	recorder := appaudit.NewAsyncRecorder(auditStore, cfg.Audit)

	userService := userapp.NewApplicationService(factory, reads, recorder)
	institutionService := institutionapp.NewApplicationService(factory, reads, recorder)
	accountTypeService := accounttypeapp.NewApplicationService(factory, reads, recorder)
	accountService := accountapp.NewApplicationService(factory, reads, recorder)
	cardService := cardapp.NewApplicationService(factory, reads, recorder)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}

	router := api.NewRouter(
		cfg,
		health.NewController(cfg, sqlDB),
		apiuser.NewController(userService),
		apiinstitution.NewController(institutionService),
		apiaccounttype.NewController(accountTypeService),
		apiaccount.NewController(accountService),
		apicard.NewController(cardService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		cfg:      cfg,
		db:       db,
		recorder: recorder,
		server:   server,
		router:   router,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down in order: HTTP server,
// audit recorder drain, database pool.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownTimeout := a.cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if err := a.recorder.Close(ctx); err != nil {
		logger.Warn("Audit recorder did not drain in time", zap.Error(err))
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Database close reported an error", zap.Error(err))
		}
	}

	_ = logger.Sync()
	logger.Info("Server stopped")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() *gin.Engine {
	return a.router.GetEngine()
}
