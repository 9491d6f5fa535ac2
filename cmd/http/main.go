package main

import (
	"context"
	"labtrail-service/internal/app/config"
	"labtrail-service/internal/app/delivery/http/middlewares"
	"labtrail-service/internal/app/delivery/http/routers"
	"labtrail-service/internal/app/drivers/database"
	"labtrail-service/internal/app/drivers/logger"
	"labtrail-service/internal/app/drivers/messaging"
	"labtrail-service/internal/app/drivers/storage"
	"labtrail-service/internal/app/services/core/access"
	"labtrail-service/internal/app/services/core/assignments"
	"labtrail-service/internal/app/services/core/patients"
	"labtrail-service/internal/app/services/core/projects"
	"labtrail-service/internal/app/services/core/results"
	"labtrail-service/internal/app/services/core/session"
	"labtrail-service/internal/app/services/core/specimens"
	"labtrail-service/internal/app/services/core/testtypes"
	"labtrail-service/internal/app/services/shared/audit"
	"labtrail-service/internal/app/services/shared/locker"
	"labtrail-service/internal/app/services/shared/redis"
	"labtrail-service/internal/app/services/shared/secrets"
	sharedStorage "labtrail-service/internal/app/services/shared/storage"
	"labtrail-service/internal/app/services/shared/transactions"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Minio:          minioClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	secretService := secrets.NewSecretService()
	txRunner := transactions.NewMongoTxRunner(bootstrap.MongoClient)
	objectStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)

	auditRecorder, err := audit.NewAuditRecorder(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.AuditQueue, bootstrap.Logger)
	if err != nil {
		logrus.Fatalf("Failed to initialize audit recorder: %v", err)
	}

	// Session
	sessionService := session.NewSessionService(redisRepository)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, bootstrap.InternalConfig)

	// Repositories
	specimenRepository := specimens.NewSpecimenMongoRepository(bootstrap.MongoClient, dbName)
	assignmentRepository := assignments.NewAssignmentMongoRepository(bootstrap.MongoClient, dbName)
	accessRecordRepository := access.NewAccessRecordMongoRepository(bootstrap.MongoClient, dbName)
	resultRepository := results.NewResultMongoRepository(bootstrap.MongoClient, dbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoClient, dbName)
	testTypeRepository := testtypes.NewTestTypeMongoRepository(bootstrap.MongoClient, dbName)
	projectAccessChecker := projects.NewProjectAccessMongoRepository(bootstrap.MongoClient, dbName)

	// Specimen
	accessionAllocator := specimens.NewAccessionAllocator(
		specimenRepository,
		bootstrap.InternalConfig.App.AccessionPrefix,
		bootstrap.InternalConfig.App.AccessionMaxAttempts,
		bootstrap.Logger,
	)
	specimenUsecase := specimens.NewSpecimenUsecase(
		specimenRepository,
		assignmentRepository,
		accessRecordRepository,
		patientRepository,
		testTypeRepository,
		projectAccessChecker,
		secretService,
		accessionAllocator,
		lockerService,
		txRunner,
		auditRecorder,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	specimenController := specimens.NewSpecimenController(bootstrap.Logger, specimenUsecase)

	// Result
	resultUsecase := results.NewResultUsecase(
		resultRepository,
		specimenRepository,
		assignmentRepository,
		accessRecordRepository,
		testTypeRepository,
		objectStorage,
		txRunner,
		auditRecorder,
		bootstrap.DriverConfig.Minio.BucketName,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	resultController := results.NewResultController(bootstrap.Logger, resultUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, specimenController, resultController)
}
