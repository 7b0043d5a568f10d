package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/handler"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/logger"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	spiffetls "github.com/cloud-wave-best-zizon/storefront-service/pkg/tls"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Product store
	var store service.ProductStore
	if cfg.LocalMode {
		appLogger.Info("LOCAL_MODE enabled, using in-memory product store")
		store = repository.NewMemoryProductRepository()
	} else {
		dynamoClient, err := repository.NewDynamoDBClient(ctx, cfg)
		if err != nil {
			appLogger.Fatal("Failed to create DynamoDB client", zap.Error(err))
		}
		store = repository.NewProductRepository(dynamoClient, cfg.ProductTableName, cfg.ProductSlugIndex)
	}

	// Change events
	var publisher events.Publisher = events.Discard{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, appLogger)
		defer producer.Close()
		publisher = producer
		appLogger.Info("Publishing product events",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	productService := service.NewProductService(store, publisher, appLogger)
	productHandler := handler.NewProductHandler(productService, appLogger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLogger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	productHandler.RegisterRoutes(router.Group("/api"), middleware.AdminKey(cfg.AdminKey, appLogger))

	tlsConfig, source, err := spiffetls.Load(ctx, spiffetls.TLSConfig{
		Enabled:    cfg.TLSEnabled,
		SocketPath: cfg.SpireSocketPath,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load TLS config", zap.Error(err))
	}
	defer source.Close()
	if source != nil {
		go source.Watch(ctx, 30*time.Second)
	}

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	go func() {
		appLogger.Info("Starting server",
			zap.String("port", cfg.Port),
			zap.Bool("tls", tlsConfig != nil))

		var err error
		if tlsConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited")
}
