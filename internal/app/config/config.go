package config

import (
	"carelink-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:            utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:            utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:        utils.GetEnvString("POSTGRES_USERNAME", "carelink"),
			Password:        utils.GetEnvString("POSTGRES_PASSWORD", "carelink"),
			DbName:          utils.GetEnvString("POSTGRES_DB_NAME", "carelink"),
			SSLMode:         utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns:    utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: utils.GetEnvInt("POSTGRES_CONN_MAX_LIFETIME_IN_MINUTES", 30),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "carelink_audit"),
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
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                                      utils.GetEnvString("APP_ENV", "development"),
			Port:                                     utils.GetEnvString("APP_PORT", "8080"),
			Version:                                  utils.GetEnvString("APP_VERSION", "v1"),
			Address:                                  utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			BaseUrl:                                  utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			FrontendDomain:                           utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:                           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                              utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:                 utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:                utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:               utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 12),
			LoginSessionExpiredTimeInHours:           utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 24),
			DocumentMaxUploadSizeInMB:                utils.GetEnvInt64("APP_DOCUMENT_MAX_UPLOAD_SIZE_IN_MB", 10),
			MinioPreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 1),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "change-me"),
		},
		Mailer: AppMailer{
			EmailSender: utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "no-reply@carelink.local"),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("APP_MINIO_BUCKET_NAME", "carelink-documents"),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue: utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mailer"),
		},
		Messaging: AppMessaging{
			MaxMessagesPerWindow:    utils.GetEnvInt("APP_MESSAGE_RATE_LIMIT_MAX", 20),
			WindowInSeconds:         utils.GetEnvInt("APP_MESSAGE_RATE_LIMIT_WINDOW_IN_SECONDS", 60),
			SocketEventsPerSecond:   utils.GetEnvInt("APP_WEBSOCKET_EVENTS_PER_SECOND", 2),
			SocketEventBurst:        utils.GetEnvInt("APP_WEBSOCKET_EVENT_BURST", 5),
			SocketWriteWaitInSecond: utils.GetEnvInt("APP_WEBSOCKET_WRITE_WAIT_IN_SECONDS", 10),
			SocketPongWaitInSecond:  utils.GetEnvInt("APP_WEBSOCKET_PONG_WAIT_IN_SECONDS", 60),
		},
		LicenseRegistry: AppLicenseRegistry{
			BaseUrl:               utils.GetEnvString("LICENSE_REGISTRY_BASE_URL", "http://localhost:9090"),
			ApiKey:                utils.GetEnvString("LICENSE_REGISTRY_API_KEY", ""),
			RequestTimeoutSeconds: utils.GetEnvInt("LICENSE_REGISTRY_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RetryCount:            utils.GetEnvInt("LICENSE_REGISTRY_RETRY_COUNT", 2),
		},
		Worker: AppWorker{
			ReminderCronSpec:             utils.GetEnvString("APP_REMINDER_WORKER_CRON_SPEC", "@hourly"),
			StaleSwitchRequestAgeInHours: utils.GetEnvInt("APP_STALE_SWITCH_REQUEST_AGE_IN_HOURS", 72),
			ReminderLockTTLInSeconds:     utils.GetEnvInt("APP_REMINDER_WORKER_LOCK_TTL_IN_SECONDS", 300),
			ReminderBatchSize:            utils.GetEnvInt("APP_REMINDER_WORKER_BATCH_SIZE", 100),
		},
	}
}
