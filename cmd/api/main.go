package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/grocify/price-service/config"
	"github.com/grocify/price-service/internal/auth"
	"github.com/grocify/price-service/internal/maintenance"
	"github.com/grocify/price-service/internal/scraper"
	"github.com/grocify/price-service/pkg/cache"
	"github.com/grocify/price-service/pkg/database"
	"github.com/grocify/price-service/pkg/logger"

	historyRepoPkg "github.com/grocify/price-service/internal/history/repository"
	priceRepoPkg "github.com/grocify/price-service/internal/price/repository"

	predictH "github.com/grocify/price-service/internal/predict/handler"
	predictUCPkg "github.com/grocify/price-service/internal/predict/usecase"

	prodH "github.com/grocify/price-service/internal/product/handler"
	prodRepoPkg "github.com/grocify/price-service/internal/product/repository"
	prodUCPkg "github.com/grocify/price-service/internal/product/usecase"

	userH "github.com/grocify/price-service/internal/user/handler"
	userRepoPkg "github.com/grocify/price-service/internal/user/repository"
	userUCPkg "github.com/grocify/price-service/internal/user/usecase"

	"github.com/grocify/price-service/internal/predict"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.New(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.NewPostgres(&database.Config{
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

	// 4. Initialize Redis (quote cache is optional; the service degrades
	// to always-live scraping without it)
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, quote caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Repositories
	prodRepo := prodRepoPkg.NewPGRepository(db)
	priceRepo := priceRepoPkg.NewPGRepository(db)
	historyRepo := historyRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)

	// 6. Initialize Scraper Aggregator
	httpClient := &http.Client{Timeout: cfg.Scraper.AdapterTimeout}
	aggregator := scraper.NewAggregator(
		scraper.DefaultAdapters(httpClient, cfg.Scraper.UserAgent),
		cfg.Scraper.AdapterTimeout,
		appLogger,
	)
	appLogger.Info("Configured store adapters", zap.Strings("stores", aggregator.Stores()))

	// 7. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, priceRepo, historyRepo, aggregator, redisClient, cfg.Scraper.QuoteCacheTTL, appLogger)
	predictUC := predictUCPkg.NewPredictUseCase(prodRepo, priceRepo, predict.Options{
		RegressionWeight: cfg.Predictor.RegressionWeight,
		MovingAvgWeight:  cfg.Predictor.MovingAvgWeight,
		BlendMinPoints:   cfg.Predictor.BlendMinPoints,
	}, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, appLogger)

	// 8. Initialize Auth + Handlers
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	predictHandler := predictH.NewPredictHandler(predictUC, appLogger)
	userHandler := userH.NewUserHandler(userUC, tokens, appLogger)

	// 9. Start background maintenance
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleaner := maintenance.NewCleaner(priceRepo, cfg.Cleanup.Interval, cfg.Cleanup.RetentionDays, appLogger)
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		cleaner.Run(ctx)
	}()

	// 10. Build Router
	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authRequired := auth.Middleware(tokens, userRepo)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", userHandler.Signup)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/logout", userHandler.Logout)
		authGroup.GET("/verify", authRequired, userHandler.Verify)
	}

	api := router.Group("", authRequired)
	{
		api.POST("/search", prodHandler.Search)
		api.GET("/product/:id", prodHandler.GetProduct)
		api.GET("/products/suggest", prodHandler.Suggest)
		api.GET("/search-history", prodHandler.SearchHistory)
		api.POST("/predict", predictHandler.Predict)
	}

	// 11. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server ListenAndServe: %v", err)
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown", zap.Error(err))
	}

	wg.Wait()
	appLogger.Info("Server stopped")
}
