package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"telatour/config"
	"telatour/database"
	festivalRepoPkg "telatour/database/repository/festival"
	placeRepoPkg "telatour/database/repository/place"
	reviewRepoPkg "telatour/database/repository/review"
	userRepoPkg "telatour/database/repository/user"
	"telatour/handlers"
	"telatour/middleware"
	"telatour/routes"
	"telatour/services/festival"
	"telatour/services/notification"
	"telatour/services/place"
	"telatour/services/review"
	"telatour/services/user"
	"telatour/utils"
)

const detailCacheTTL = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	utils.SetLoggerEnv(cfg.Env)
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to mongodb: %v", err)
	}
	db := mongoClient.Database(cfg.DatabaseName)

	cacheClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to redis cache: %v", err)
	}
	authClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to redis auth store: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(cfg.MaxRequestsPerMin))
	routes.SetupCORS(router, cfg.AllowedOrigins())

	// Repositories.
	placeRepo := placeRepoPkg.NewMongoPlaceRepo(db)
	festivalRepo := festivalRepoPkg.NewMongoFestivalRepo(db)
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)

	// Shared infrastructure.
	jwtManager := utils.NewJWTManager(cfg.JWTSecret)
	sessions := utils.NewSessionStore(authClient, 24*time.Hour)
	detailCache := utils.NewCache(cacheClient, detailCacheTTL)
	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		User:       cfg.SMTPUser,
		Pass:       cfg.SMTPPass,
		AdminEmail: cfg.AdminEmail,
	}, logger)

	// Services.
	placeService := &place.DefaultPlaceService{
		Repo:   placeRepo,
		Cache:  detailCache,
		Logger: logger,
	}
	festivalService := &festival.DefaultFestivalService{
		Repo:   festivalRepo,
		Cache:  detailCache,
		Logger: logger,
	}
	aggregator := &review.Aggregator{
		Reviews:   reviewRepo,
		Places:    placeRepo,
		Festivals: festivalRepo,
		Cache:     detailCache,
		Logger:    logger,
	}
	reviewService := &review.DefaultReviewService{
		Repo:       reviewRepo,
		Aggregator: aggregator,
		Mailer:     mailer,
		Logger:     logger,
	}
	userService := user.NewDefaultUserService(userRepo, jwtManager, sessions, logger)

	// Handlers and routes.
	bundle := &routes.HandlerBundle{
		Places:    handlers.NewPlaceHandler(placeService),
		Festivals: handlers.NewFestivalHandler(festivalService),
		Reviews:   handlers.NewReviewHandler(reviewService),
		Users:     handlers.NewUserHandler(userService),
		JWT:       jwtManager,
		Sessions:  sessions,
	}
	routes.RegisterAll(router, bundle)

	utils.StartHealthMonitor([]*redis.Client{cacheClient, authClient}, mongoClient)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("mongodb disconnect failed", zap.Error(err))
	}
	_ = cacheClient.Close()
	_ = authClient.Close()
	logger.Info("server stopped")
}
