package main

import (
	"context"
	"log"
	"neonatal-triage-service/internal/app/config"
	"neonatal-triage-service/internal/app/delivery/http/controllers"
	"neonatal-triage-service/internal/app/delivery/http/middlewares"
	"neonatal-triage-service/internal/app/delivery/http/routers"
	"neonatal-triage-service/internal/app/drivers/database"
	"neonatal-triage-service/internal/app/drivers/logger"
	"neonatal-triage-service/internal/app/drivers/messaging"
	"neonatal-triage-service/internal/app/services/core/assessments"
	"neonatal-triage-service/internal/app/services/core/profiles"
	"neonatal-triage-service/internal/app/services/core/wizard"
	"neonatal-triage-service/internal/app/services/shared/alerts"
	"neonatal-triage-service/internal/app/services/shared/classifier"
	"neonatal-triage-service/internal/app/services/shared/locker"
	"neonatal-triage-service/internal/app/services/shared/ratelimiter"
	"neonatal-triage-service/internal/app/services/shared/redis"
	"neonatal-triage-service/internal/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	for _, envErr := range utils.MalformedEnv() {
		zapLogger.Warn("config.NewInternalConfig ignoring malformed environment value, using default", zap.Error(envErr))
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if internalConfig.Alerts.HighRiskEnabled {
		rabbitMQ := messaging.NewRabbitMQ(driverConfig)
		err = messaging.DeclareQueue(rabbitMQ, internalConfig.Alerts.Queue)
		if err != nil {
			log.Fatalf("Error declaring alert queue: %v", err)
		}
		bootstrap.RabbitMQ = rabbitMQ
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port), zap.String("env", internalConfig.App.Env))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to release drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := database.EnsureIndexes(ctx, bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	if err != nil {
		return err
	}

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	quotaLimiter := ratelimiter.NewQuotaLimiter(redisRepository, bootstrap.Logger)
	classifierClient := classifier.NewClassifierClient(
		bootstrap.InternalConfig.Classifier.BaseUrl,
		time.Duration(bootstrap.InternalConfig.Classifier.TimeoutInSeconds)*time.Second,
		bootstrap.Logger,
	)

	alertPublisher := alerts.NewNoopAlertPublisher(bootstrap.Logger)
	if bootstrap.RabbitMQ != nil {
		alertPublisher, err = alerts.NewAlertPublisher(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Alerts.Queue)
		if err != nil {
			return err
		}
		bootstrap.AlertChannel = alertPublisher
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Profile
	profileMongoRepository := profiles.NewProfileMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	profileCache := profiles.NewProfileRedisCache(redisRepository)
	profileUsecase := profiles.NewProfileUsecase(profileMongoRepository, profileCache, bootstrap.Logger)
	profileController := controllers.NewProfileController(bootstrap.Logger, profileUsecase)

	// Assessment
	assessmentMongoRepository := assessments.NewAssessmentMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	assessmentUsecase := assessments.NewAssessmentUsecase(assessmentMongoRepository, classifierClient, alertPublisher, bootstrap.Logger)
	assessmentController := controllers.NewAssessmentController(bootstrap.Logger, assessmentUsecase)

	// Wizard
	wizardSessionRepository := wizard.NewWizardSessionRedisRepository(
		redisRepository,
		time.Duration(bootstrap.InternalConfig.Wizard.SessionTTLInMinutes)*time.Minute,
	)
	wizardUsecase := wizard.NewWizardUsecase(
		wizardSessionRepository,
		profileUsecase,
		assessmentUsecase,
		lockerService,
		quotaLimiter,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	wizardController := controllers.NewWizardController(bootstrap.Logger, wizardUsecase, bootstrap.InternalConfig)

	// Health
	mongoPing := func(ctx context.Context) error {
		return bootstrap.MongoDB.Ping(ctx, readpref.Primary())
	}
	healthController := controllers.NewHealthController(bootstrap.Logger, map[string]controllers.DependencyCheck{
		"mongodb": mongoPing,
		"redis":   redisRepository.Ping,
	})

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		healthController,
		profileController,
		wizardController,
		assessmentController,
	)
	return nil
}
