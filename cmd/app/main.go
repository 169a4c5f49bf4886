package main

import (
	"fmt"
	"log/slog"
	"os"

	"parcels/cmd"
	parcelshttp "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/postgres/assignmentrepo"
	"parcels/internal/adapters/out/postgres/directoryrepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/proofrepo"
	"parcels/internal/adapters/out/postgres/routerepo"
	"parcels/internal/adapters/out/postgres/scaneventrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	redisClient := connectRedis(configs, logger)

	root := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:          goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:      goDotEnvVariable("REDIS_PASSWORD"),
		StatusCacheTTLSecs: goDotEnvVariable("STATUS_CACHE_TTL_SECS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&scaneventrepo.ScanEventDTO{},
		&routerepo.RouteDTO{},
		&assignmentrepo.AssignmentDTO{},
		&proofrepo.ProofOfDeliveryDTO{},
		&directoryrepo.HubDTO{},
		&directoryrepo.CourierDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

// connectRedis returns nil when REDIS_ADDR is unset; the status cache is
// optional and reads fall through to postgres.
func connectRedis(configs cmd.Config, logger *slog.Logger) *redis.Client {
	if configs.RedisAddr == "" {
		logger.Info("Redis not configured, parcel status cache disabled")
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	server := parcelshttp.NewServer(
		root.CreateRegisterParcelCommandHandler(),
		root.CreateIngestScanEventCommandHandler(),
		root.CreateAssignRouteCommandHandler(),
		root.CreateDeactivateAssignmentCommandHandler(),
		root.CreateSubmitProofCommandHandler(),
		root.CreateCreateRouteCommandHandler(),
		root.CreateStartRouteCommandHandler(),
		root.CreateCompleteRouteCommandHandler(),
		root.CreateCancelRouteCommandHandler(),
		root.CreateGetParcelQueryHandler(),
		root.CreateGetScanEventsQueryHandler(),
		root.CreateGetActiveAssignmentQueryHandler(),
		invalidatorOrNil(root),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

// invalidatorOrNil avoids handing the server a typed nil behind a non-nil
// interface value.
func invalidatorOrNil(root *cmd.CompositionRoot) parcelshttp.StatusCacheInvalidator {
	if cache := root.StatusCache(); cache != nil {
		return cache
	}
	return nil
}
