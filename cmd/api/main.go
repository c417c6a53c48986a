package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"studiobook/internal/config"
	"studiobook/internal/database"
	"studiobook/internal/middleware"
	"studiobook/internal/modules/booking"
	"studiobook/internal/modules/catalog"
	jwtsvc "studiobook/internal/pkg/jwt"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/pkg/response"
	"studiobook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logCloser, err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		LogFile:     cfg.LogFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}
	defer logCloser.Close()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	redisClient, err := database.NewRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	var locker booking.Locker
	if redisClient != nil {
		locker = booking.NewRedisLocker(redisClient, cfg.BookingLockTTL)
	} else {
		locker = booking.NewLocalLocker()
	}

	bookingRepo := repository.NewBookingRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	eventRepo := repository.NewEventRepository(db)
	txManager := repository.NewTxManager(db)

	bookingService := booking.NewService(bookingRepo, catalogRepo, eventRepo, txManager, locker, booking.Settings{
		Currency: cfg.BookingCurrency,
		Location: cfg.BookingLocation,
		Refund: booking.RefundPolicy{
			MinLeadTime: cfg.RefundLeadTime,
			Percent:     cfg.RefundPercent,
		},
	})
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(catalogRepo, txManager)
	catalogHandler := catalog.NewHandler(catalogService)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// protected routes
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))

		catalogHandler.RegisterRoutes(v1, protected)
		bookingHandler.RegisterRoutes(v1, protected)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.AppEnv).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
