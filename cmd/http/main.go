package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"
	"carelink-service/internal/app/delivery/http/routers"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/drivers/logger"
	"carelink-service/internal/app/drivers/messaging"
	"carelink-service/internal/app/drivers/rbac"
	"carelink-service/internal/app/drivers/storage"
	"carelink-service/internal/app/services/core/agencies"
	"carelink-service/internal/app/services/core/auditlogs"
	"carelink-service/internal/app/services/core/auth"
	"carelink-service/internal/app/services/core/conversations"
	"carelink-service/internal/app/services/core/documents"
	"carelink-service/internal/app/services/core/esignatures"
	"carelink-service/internal/app/services/core/notifications"
	"carelink-service/internal/app/services/core/profiles"
	"carelink-service/internal/app/services/core/reminders"
	"carelink-service/internal/app/services/core/session"
	"carelink-service/internal/app/services/core/switchrequests"
	"carelink-service/internal/app/services/shared/access"
	"carelink-service/internal/app/services/shared/licensing"
	"carelink-service/internal/app/services/shared/locker"
	"carelink-service/internal/app/services/shared/mailer"
	"carelink-service/internal/app/services/shared/ratelimiter"
	"carelink-service/internal/app/services/shared/realtime"
	"carelink-service/internal/app/services/shared/redis"
	sharedStorage "carelink-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig, internalConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig)

	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		log.Fatalf("Failed to build RBAC enforcer: %v", err)
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		PostgresDB:     postgresDB,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQConnection,
		Enforcer:       enforcer,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	sessionService := session.NewSessionService(redisRepository, internalConfig)
	lockerService := locker.NewLockService(redisRepository, log)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)
	storageService := sharedStorage.NewMinioStorage(bootstrap.Minio, internalConfig.Minio.BucketName)
	licenseRegistryClient := licensing.NewLicenseRegistryClient(internalConfig, log)

	mailerService, err := mailer.NewMailerService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	realtimeHub, err := realtime.NewRealtimeHub(bootstrap.Redis, redisRepository, internalConfig, log)
	if err != nil {
		return fmt.Errorf("realtime hub: %w", err)
	}
	bootstrap.RealtimeStop = realtimeHub.Close

	// Repositories
	profileRepository := profiles.NewProfilePostgresRepository(bootstrap.PostgresDB)
	agencyRepository := agencies.NewAgencyPostgresRepository(bootstrap.PostgresDB)
	agencyMemberRepository := agencies.NewAgencyMemberPostgresRepository(bootstrap.PostgresDB)
	switchRequestRepository := switchrequests.NewSwitchRequestPostgresRepository(bootstrap.PostgresDB)
	documentRepository := documents.NewDocumentPostgresRepository(bootstrap.PostgresDB)
	eSignatureRepository := esignatures.NewESignaturePostgresRepository(bootstrap.PostgresDB)
	conversationRepository := conversations.NewConversationPostgresRepository(bootstrap.PostgresDB)
	notificationRepository := notifications.NewNotificationPostgresRepository(bootstrap.PostgresDB)
	auditLogRepository := auditlogs.NewAuditLogMongoRepository(bootstrap.MongoDB)

	accessGuard := access.NewAccessGuard(agencyMemberRepository)

	// Usecases
	auditLogUsecase := auditlogs.NewAuditLogUsecase(auditLogRepository, log)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, profileRepository, mailerService, internalConfig, log)
	authUsecase := auth.NewAuthUsecase(profileRepository, sessionService, auditLogUsecase, log)
	profileUsecase := profiles.NewProfileUsecase(profileRepository, auditLogUsecase, log)
	agencyUsecase := agencies.NewAgencyUsecase(
		agencyRepository,
		agencyMemberRepository,
		profileRepository,
		licenseRegistryClient,
		accessGuard,
		auditLogUsecase,
		log,
	)
	switchRequestUsecase := switchrequests.NewSwitchRequestUsecase(
		switchRequestRepository,
		agencyRepository,
		agencyMemberRepository,
		profileRepository,
		conversationRepository,
		accessGuard,
		notificationUsecase,
		auditLogUsecase,
		internalConfig,
		log,
	)
	documentUsecase := documents.NewDocumentUsecase(
		documentRepository,
		agencyMemberRepository,
		switchRequestUsecase,
		storageService,
		notificationUsecase,
		auditLogUsecase,
		internalConfig,
		log,
	)
	eSignatureUsecase := esignatures.NewESignatureUsecase(
		eSignatureRepository,
		documentRepository,
		agencyMemberRepository,
		switchRequestUsecase,
		storageService,
		notificationUsecase,
		auditLogUsecase,
		internalConfig,
		log,
	)
	conversationUsecase := conversations.NewConversationUsecase(
		conversationRepository,
		agencyMemberRepository,
		accessGuard,
		resourceLimiter,
		realtimeHub,
		notificationUsecase,
		internalConfig,
		log,
	)

	// Background workers
	reminderWorker := reminders.NewWorker(
		log,
		internalConfig,
		lockerService,
		switchRequestRepository,
		agencyMemberRepository,
		notificationUsecase,
	)
	reminderWorker.Start(context.Background())
	bootstrap.WorkerStop = reminderWorker.Stop

	// Delivery
	middlewares := middlewares.NewMiddlewares(log, sessionService, bootstrap.Enforcer, internalConfig)

	healthChecks := map[string]controllers.HealthCheck{
		"postgres": bootstrap.PostgresDB.PingContext,
		"redis": func(ctx context.Context) error {
			return bootstrap.Redis.Ping(ctx).Err()
		},
		"mongodb": func(ctx context.Context) error {
			return bootstrap.MongoDB.Client().Ping(ctx, nil)
		},
		"rabbitmq": func(ctx context.Context) error {
			if bootstrap.RabbitMQ.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		},
	}

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, &routers.Controllers{
		Auth:          controllers.NewAuthController(log, authUsecase),
		Profile:       controllers.NewProfileController(log, profileUsecase),
		Agency:        controllers.NewAgencyController(log, agencyUsecase),
		SwitchRequest: controllers.NewSwitchRequestController(log, switchRequestUsecase),
		Document:      controllers.NewDocumentController(log, documentUsecase),
		ESignature:    controllers.NewESignatureController(log, eSignatureUsecase),
		Conversation:  controllers.NewConversationController(log, conversationUsecase, realtimeHub, internalConfig),
		Notification:  controllers.NewNotificationController(log, notificationUsecase),
		AuditLog:      controllers.NewAuditLogController(log, auditLogUsecase),
		Health:        controllers.NewHealthController(log, healthChecks),
	})

	return nil
}
