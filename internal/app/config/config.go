package config

import (
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/utils"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "neonatal"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
			URI:      utils.GetEnvString("MONGODB_URI", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "America/Mexico_City"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			CorsAllowedOrigins:         splitCSV(utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", "*")),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			SubmitRatePerMinute:        utils.GetEnvInt("APP_SUBMIT_RATE_PER_MINUTE", 6),
			SubmitBurst:                utils.GetEnvInt("APP_SUBMIT_BURST", 2),
			SubmitQuotaPerHour:         utils.GetEnvInt("APP_SUBMIT_QUOTA_PER_HOUR", 20),
		},
		Classifier: AppClassifier{
			BaseUrl:          utils.GetEnvString("CLASSIFIER_BASE_URL", constvars.DefaultClassifierURL),
			TimeoutInSeconds: utils.GetEnvInt("CLASSIFIER_TIMEOUT_IN_SECONDS", 30),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Wizard: AppWizard{
			SessionTTLInMinutes: utils.GetEnvInt("APP_WIZARD_SESSION_TTL_IN_MINUTES", 60),
			LockTTLInSeconds:    utils.GetEnvInt("APP_WIZARD_LOCK_TTL_IN_SECONDS", 45),
		},
		Alerts: AppAlerts{
			HighRiskEnabled: utils.GetEnvBool("APP_HIGH_RISK_ALERTS_ENABLED", false),
			Queue:           utils.GetEnvString("APP_RABBITMQ_ALERT_QUEUE", "neonatal_high_risk_alerts"),
		},
	}
}

func splitCSV(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
