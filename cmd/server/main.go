package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/warehouse/backend/internal/application/audit"
	catalogapp "github.com/warehouse/backend/internal/application/catalog"
	inventoryapp "github.com/warehouse/backend/internal/application/inventory"
	tradeapp "github.com/warehouse/backend/internal/application/trade"
	"github.com/warehouse/backend/internal/infrastructure/auth"
	"github.com/warehouse/backend/internal/infrastructure/config"
	"github.com/warehouse/backend/internal/infrastructure/logger"
	"github.com/warehouse/backend/internal/infrastructure/persistence"
	"github.com/warehouse/backend/internal/infrastructure/push"
	"github.com/warehouse/backend/internal/interfaces/http/handler"
	"github.com/warehouse/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Repositories
	products := persistence.NewGormProductRepository(db.DB)
	orders := persistence.NewGormOrderRepository(db.DB)
	purchases := persistence.NewGormPurchaseRepository(db.DB)
	sessions := persistence.NewGormCountSessionRepository(db.DB)
	entries := persistence.NewGormChangeEntryRepository(db.DB)
	subscriptions := persistence.NewGormSubscriptionRepository(db.DB)
	roles := persistence.NewGormRoleRepository(db.DB)

	// Services
	transport := push.NewWebPushTransport(cfg.Push, log)
	recorder := auditapp.NewService(entries, subscriptions, transport, log)
	productService := catalogapp.NewProductService(products, orders, recorder, log)
	orderService := tradeapp.NewOrderService(orders, productService, roles, recorder, log)
	purchaseService := tradeapp.NewPurchaseService(purchases, products, productService, recorder, log)
	countService := inventoryapp.NewCountService(sessions, products, productService, recorder, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := router.New(cfg, log, jwtService, roles, router.Handlers{
		System:   handler.NewSystemHandler(db),
		Product:  handler.NewProductHandler(productService),
		Order:    handler.NewOrderHandler(orderService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Count:    handler.NewCountHandler(countService),
		Audit:    handler.NewAuditHandler(recorder),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
