// @title        Gatehouse Backend API
// @version      1.0
// @description  Credential issuance, gate event ingestion, and the kiosk dashboard for the campus gatehouse.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	_ "github.com/shub-krishan208/pale-tsg-v2/docs"
	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/handler"
	db "github.com/shub-krishan208/pale-tsg-v2/internal/backend/repository/db"
	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/service"
	"github.com/shub-krishan208/pale-tsg-v2/internal/config"
	"github.com/shub-krishan208/pale-tsg-v2/internal/telemetry"
	"github.com/shub-krishan208/pale-tsg-v2/internal/token"
)

func main() {
	// --- Structured Logger ---
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// --- Configuration (.env, environment, Vault) ---
	cfg, err := config.LoadBackend()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	// --- OpenTelemetry Tracer & Meter ---
	if cfg.OTELEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), "gatehouse-backend", cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", cfg.OTELEndpoint))
		}
		mp, err := telemetry.InitMeterProvider(context.Background(), "gatehouse-backend", cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
	}

	// --- Database Connection Pool (instrumented with OTel) ---
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to parse DATABASE_URL", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database (OTel-instrumented)")

	// --- Credential Signing Key ---
	privKey, err := token.LoadPrivateKey(cfg.PrivateKeyPath)
	if err != nil {
		logger.Fatal("failed to load signing key", zap.String("path", cfg.PrivateKeyPath), zap.Error(err))
	}
	signer := token.NewSigner(privKey)

	loc, err := time.LoadLocation(cfg.DashboardTimezone)
	if err != nil {
		logger.Fatal("invalid DASHBOARD_TIMEZONE", zap.String("timezone", cfg.DashboardTimezone), zap.Error(err))
	}

	// --- Repository & Service Layers ---
	querier := db.New(pool)
	syncSvc := service.NewSyncService(pool, logger)
	issueSvc := service.NewIssueService(querier, signer, logger)
	dashboardSvc := service.NewDashboardService(querier, loc)

	// --- HTTP Server (Echo) ---
	e := echo.New()
	e.HideBanner = true
	// OTel tracing middleware (must be first)
	e.Use(otelecho.Middleware("gatehouse-backend"))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	handler.NewSyncHandler(syncSvc, cfg.GateAPIKey, cfg.SyncMaxEvents, logger).Register(e)
	handler.NewEntriesHandler(issueSvc, dashboardSvc, cfg.KioskToken, logger).Register(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI at /swagger/*
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		logger.Info("backend HTTP server listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Drain HTTP connections
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Echo shutdown error", zap.Error(err))
	}

	// Drain database pool
	pool.Close()

	logger.Info("backend shut down cleanly")
}
