package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/isp-backoffice-api/api/swagger"
	"github.com/noah-isme/isp-backoffice-api/internal/handler"
	"github.com/noah-isme/isp-backoffice-api/internal/middleware"
	"github.com/noah-isme/isp-backoffice-api/internal/repository"
	"github.com/noah-isme/isp-backoffice-api/internal/service"
	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	"github.com/noah-isme/isp-backoffice-api/internal/table"
	"github.com/noah-isme/isp-backoffice-api/migrations"
	"github.com/noah-isme/isp-backoffice-api/pkg/cache"
	"github.com/noah-isme/isp-backoffice-api/pkg/config"
	"github.com/noah-isme/isp-backoffice-api/pkg/database"
	"github.com/noah-isme/isp-backoffice-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/isp-backoffice-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/isp-backoffice-api/pkg/middleware/requestid"
)

// @title ISP Back Office API
// @version 1.0.0
// @description Customer, bundle and payment administration for the ISP dashboard
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if _, err := database.Migrate(db, migrations.FS, logr); err != nil {
			return err
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "isp-backoffice", logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	customerRepo := repository.NewCustomerRepository(db)
	bundleRepo := repository.NewBundleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	observer := metrics.SnapshotObserver()
	customerSnap := snapshot.New(snapshot.Customers, snapshot.FromList(customerRepo.ListAll), observer)
	bundleSnap := snapshot.New(snapshot.Bundles, snapshot.FromList(bundleRepo.ListAll), observer)
	paymentSnap := snapshot.New(snapshot.Payments, snapshot.FromList(paymentRepo.ListAll), observer)
	registry := snapshot.NewRegistry(customerSnap, bundleSnap, paymentSnap)

	refresher := snapshot.NewRefresher(registry, cfg.Snapshot.Workers, metrics.JobObserver("snapshots"), logr)
	if err := refresher.Start(ctx, cfg.Snapshot.RefreshSpec); err != nil {
		return err
	}
	defer refresher.Stop()

	engine := table.NewEngine(cfg.Table.Locale)
	viewCfg := service.ViewConfig{
		ItemsPerPage: cfg.Table.ItemsPerPage,
		MaxPageSize:  cfg.Table.MaxPageSize,
		PageButtons:  cfg.Table.PageButtons,
	}
	customerView := service.NewResourceView(customerSnap, service.CustomerTable, engine, viewCfg, logr)
	bundleView := service.NewResourceView(bundleSnap, service.BundleTable, engine, viewCfg, logr)
	paymentView := service.NewResourceView(paymentSnap, service.PaymentTable, engine, viewCfg, logr)

	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	customerSvc := service.NewCustomerService(customerRepo, bundleRepo, adminRepo, customerView, refresher, cfg.Subscriptions.MaxEntries, validate, logr)
	bundleSvc := service.NewBundleService(bundleRepo, adminRepo, bundleView, refresher, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, customerRepo, adminRepo, paymentView, refresher, validate, logr)
	exportSvc := service.NewExportService(nil, nil, logr)

	var drafts service.DraftStore = service.NewMemoryDraftStore(cfg.Subscriptions.MaxDrafts, cfg.Subscriptions.DraftTTL)
	if redisClient != nil {
		drafts = service.NewCacheDraftStore(service.NewCacheService(cacheRepo, metrics, cfg.Subscriptions.DraftTTL, logr, true))
	}
	draftSvc := service.NewDraftService(drafts, customerSvc, metrics, service.DraftConfig{
		MaxEntries: cfg.Subscriptions.MaxEntries,
		TTL:        cfg.Subscriptions.DraftTTL,
	}, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	health := handler.NewHealthHandler(metrics, db)
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", health.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Customers: handler.NewCustomerHandler(customerSvc, exportSvc),
		Bundles:   handler.NewBundleHandler(bundleSvc, exportSvc),
		Payments:  handler.NewPaymentHandler(paymentSvc, exportSvc),
		Snapshots: handler.NewSnapshotHandler(registry, refresher),
		Drafts:    handler.NewDraftHandler(draftSvc),
	}, authSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
