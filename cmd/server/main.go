package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/healtrip/backend/internal/api/handlers"
	"github.com/healtrip/backend/internal/artifacts"
	"github.com/healtrip/backend/internal/catalog"
	"github.com/healtrip/backend/internal/config"
	"github.com/healtrip/backend/internal/database"
	"github.com/healtrip/backend/internal/health"
	"github.com/healtrip/backend/internal/middleware"
	"github.com/healtrip/backend/internal/repository"
	"github.com/healtrip/backend/internal/services"
	"github.com/healtrip/backend/pkg/utils"
)

func main() {
	godotenv.Load()
	utils.InitLogger()
	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	dbManager, err := database.NewManager(&database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	store, err := artifacts.Load(cfg.Artifacts.Dir, catalog.Domains, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load catalog artifacts")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)
	cache := database.NewCache(dbManager.Redis, logger)

	service, err := services.NewRecommendationService(store, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build recommendation service")
	}

	checker := health.NewHealthChecker(dbManager, store, repoManager.SystemHealth, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go checker.PeriodicHealthCheck(ctx, 30*time.Second)

	recommendHandler := handlers.NewRecommendHandler(service, repoManager, cache, logger)
	diagnosisHandler := handlers.NewDiagnosisHandler(service, logger)
	pricingHandler := handlers.NewPricingHandler(service, logger)
	feedbackHandler := handlers.NewFeedbackHandler(repoManager, logger)
	healthHandler := handlers.NewHealthHandler(checker, logger)

	router := setupRouter(recommendHandler, diagnosisHandler, pricingHandler, feedbackHandler, healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting recommendation server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
}

func setupRouter(
	recommend *handlers.RecommendHandler,
	diagnosis *handlers.DiagnosisHandler,
	pricing *handlers.PricingHandler,
	feedback *handlers.FeedbackHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.NewRateLimiter(120).RateLimit())

	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/healthz", healthHandler.HandleLiveness)

	api := router.Group("/api/v1")
	{
		rec := api.Group("/recommend")
		{
			rec.GET("/flights", recommend.HandleFlights)
			rec.GET("/hotels", recommend.HandleHotels)
			rec.GET("/hospitals", recommend.HandleHospitals)
			rec.GET("/mental", recommend.HandleWellness(catalog.DomainMental))
			rec.GET("/yoga", recommend.HandleWellness(catalog.DomainYoga))
		}

		api.GET("/hospitals/by-city", recommend.HandleHospitalsByCity)
		api.GET("/yoga/cluster-info", recommend.HandleClusterInfo)

		api.POST("/diagnosis/classify", diagnosis.HandleClassify)
		api.POST("/diagnosis/predict-all", diagnosis.HandlePredictAll)

		price := api.Group("/predict-price")
		{
			price.POST("/hotels", pricing.HandleHotelPrice)
			price.POST("/mental", pricing.HandleMentalPrice)
			price.POST("/yoga", pricing.HandleYogaPrice)
		}

		api.POST("/feedback", feedback.HandleFeedback)
		api.GET("/suggestions", feedback.HandleSuggestions)
	}

	return router
}
