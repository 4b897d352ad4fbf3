package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/httpresponse"
	"github.com/fekuna/omnipos-catalog-service/internal/middleware"
	"github.com/fekuna/omnipos-catalog-service/pkg/blob"
	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"

	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"

	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.RunMigrations {
		if err := postgres.Migrate(ctx, db); err != nil {
			appLogger.Fatal("Could not migrate database", zap.Error(err))
		}
		appLogger.Info("Database schema is up to date")
	}

	// 4. Initialize Blob Store
	store, err := blob.NewS3Store(ctx, &blob.Config{
		Bucket:        cfg.Blob.Bucket,
		Region:        cfg.Blob.Region,
		Endpoint:      cfg.Blob.Endpoint,
		AccessKey:     cfg.Blob.AccessKey,
		SecretKey:     cfg.Blob.SecretKey,
		PublicBaseURL: cfg.Blob.PublicBaseURL,
		UsePathStyle:  cfg.Blob.UsePathStyle,
	})
	if err != nil {
		appLogger.Fatal("Could not initialize blob store", zap.Error(err))
	}
	appLogger.Info("Blob store ready", zap.String("bucket", store.Container()))

	// 5. Initialize Kafka Publisher
	publisher := broker.NewPublisher(&broker.KafkaConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	}, appLogger)
	dispatcher := broker.NewAsyncDispatcher(publisher, 5*time.Second, appLogger)

	// 6. Initialize Repositories and UseCases
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)

	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, store, dispatcher,
		prodUCPkg.Options{LegacyDelete: cfg.Catalog.LegacyDelete}, appLogger)

	// 7. HTTP
	gin.SetMode(gin.ReleaseMode)
	if logConfig.IsDevelopment {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	r.Use(middleware.RequestID(), middleware.Logging(appLogger), gin.CustomRecovery(middleware.HandlePanics(appLogger)))
	r.GET("/healthz", healthz(db))

	api := r.Group("/api/v1")
	catH.NewCategoryHandler(catUC, appLogger).RegisterRoutes(api)
	prodH.NewProductHandler(prodUC, appLogger, cfg.Server.MaxUploadBytes).RegisterRoutes(api)

	httpSrv := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 8. gRPC health
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	reflection.Register(grpcSrv)

	// 9. Start servers
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
		if err != nil {
			return err
		}
		appLogger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		healthSrv.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP server shutdown failed", zap.Error(err))
		}
		// No request can dispatch events past this point.
		if err := dispatcher.Close(shutdownCtx); err != nil {
			appLogger.Error("Event dispatcher shutdown failed", zap.Error(err))
		}
		grpcSrv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server exited with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func healthz(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpresponse.ErrorResponse{Error: "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func listenAddr(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
