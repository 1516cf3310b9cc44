package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"members-api.backend/internal/config"
	"members-api.backend/internal/infrastructure/datasources/postgres"
	"members-api.backend/internal/infrastructure/repositories"
	"members-api.backend/internal/interfaces/http/handlers"
	"members-api.backend/internal/interfaces/http/middleware"
	"members-api.backend/internal/usecases"
	"members-api.backend/pkg/logger"
	"members-api.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	newRedis   = redis.New
	openDB     = postgres.NewConnection
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	runServer  = serve
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var idempotencyStore middleware.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err := newRedis(cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redisClient.Close()
		idempotencyStore = redisClient
		logger.Info(ctx, "Redis initialized")
	} else {
		logger.Warn(ctx, "REDIS_URL not set, idempotency keys are ignored")
	}

	db, err := openDB(cfg.Datastore.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to datastore")
	}

	memberRepo := repositories.NewMemberRepository(db)
	memberUsecase := usecases.NewMemberUsecase(memberRepo)
	memberHandler := handlers.NewMemberHandler(memberUsecase)

	r, err := newRouter(routeDeps{
		memberHandler:    memberHandler,
		idempotencyStore: idempotencyStore,
		allowedOrigins:   cfg.CORS.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Server is running", zap.String("url", "http://localhost:"+cfg.Server.Port))
	if err := runServer(sigCtx, srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

// serve runs srv until it fails or ctx is cancelled, then drains
// in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info(context.Background(), "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
