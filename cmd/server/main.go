package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/dreamshub/backend/internal/application/audit"
	catalogapp "github.com/dreamshub/backend/internal/application/catalog"
	ledgerapp "github.com/dreamshub/backend/internal/application/ledger"
	reportapp "github.com/dreamshub/backend/internal/application/report"
	infraauth "github.com/dreamshub/backend/internal/infrastructure/auth"
	"github.com/dreamshub/backend/internal/infrastructure/config"
	"github.com/dreamshub/backend/internal/infrastructure/event"
	"github.com/dreamshub/backend/internal/infrastructure/logger"
	"github.com/dreamshub/backend/internal/infrastructure/persistence"
	"github.com/dreamshub/backend/internal/interfaces/http/handler"
	"github.com/dreamshub/backend/internal/interfaces/http/middleware"
	"github.com/dreamshub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Dreams Hub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	serialRepo := persistence.NewGormSerialNumberRepository(db.DB)
	logRepo := persistence.NewGormLogRepository(db.DB)

	// Event bus with the audit recorder listening on every domain event
	// it knows how to narrate
	eventBus := event.NewInMemoryEventBus(log)
	recorder := auditapp.NewRecorder(logRepo, log)
	eventBus.Subscribe(recorder)

	// Application services
	writer := ledgerapp.NewMovementWriter(movementRepo, productRepo, warehouseRepo)
	writer.SetEventPublisher(eventBus)
	inventoryService := ledgerapp.NewInventoryService(movementRepo, productRepo, categoryRepo, warehouseRepo, batchRepo, serialRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, batchRepo, serialRepo, warehouseRepo, movementRepo, writer)
	productService.SetEventPublisher(eventBus)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	categoryService.SetEventPublisher(eventBus)
	warehouseService := catalogapp.NewWarehouseService(warehouseRepo)
	analyticsService := reportapp.NewAnalyticsService(movementRepo, productRepo, categoryRepo, batchRepo)
	auditQueries := auditapp.NewQueryService(logRepo)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := warehouseService.EnsureDefault(startupCtx); err != nil {
		cancelStartup()
		log.Fatal("Failed to ensure default location", zap.Error(err))
	}
	cancelStartup()

	// Auth
	users := infraauth.NewStaticUserStore()
	if err := users.SeedDefaults(); err != nil {
		log.Fatal("Failed to seed user store", zap.Error(err))
	}
	jwtService := infraauth.NewJWTService(cfg.JWT)

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(users, jwtService, logRepo, log)
	productHandler := handler.NewProductHandler(productService, log)
	categoryHandler := handler.NewCategoryHandler(categoryService, log)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService, log)
	ledgerHandler := handler.NewLedgerHandler(writer, log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, log)
	reportHandler := handler.NewReportHandler(analyticsService, log)
	auditHandler := handler.NewAuditHandler(auditQueries, log)
	healthHandler := handler.NewHealthHandler(db, log)

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine := router.New(jwtService, cors, log).
		Public(healthHandler, authHandler).
		Protected(
			router.RegistrarFunc(authHandler.RegisterProtectedRoutes),
			productHandler,
			categoryHandler,
			warehouseHandler,
			ledgerHandler,
			inventoryHandler,
			reportHandler,
			auditHandler,
		).
		Manager(router.RegistrarFunc(ledgerHandler.RegisterManagerRoutes)).
		Build()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
