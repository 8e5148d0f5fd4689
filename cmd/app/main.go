package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"relief/cmd"
	httpin "relief/internal/adapters/in/http"
	"relief/internal/adapters/out/postgres/intakerepo"
	"relief/internal/adapters/out/postgres/inventoryrepo"
	"relief/internal/adapters/out/postgres/packagerepo"
	"relief/internal/adapters/out/postgres/requestrepo"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := openDatabase(configs)

	root := cmd.NewCompositionRoot(configs, db)

	jobManager := startJobs(&root, configs)
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		LowStockThreshold: goDotEnvVariable("LOW_STOCK_THRESHOLD"),
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

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&inventoryrepo.InventoryDTO{},
		&requestrepo.RequestDTO{},
		&requestrepo.RequestItemDTO{},
		&packagerepo.PackageDTO{},
		&packagerepo.PackageItemDTO{},
		&intakerepo.IntakeDTO{},
		&intakerepo.IntakeItemDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return db
}

func startJobs(root *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	threshold, err := kernel.QuantityFromString(configs.LowStockThreshold)
	if err != nil {
		log.Fatalf("Invalid LOW_STOCK_THRESHOLD: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		root.CreateGetLowStockQueryHandler(),
		threshold,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	return jobManager
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		root.CreateReviewRequestCommandHandler(),
		root.CreateCreatePackageCommandHandler(),
		root.CreateDispatchPackageCommandHandler(),
		root.CreateRecordIntakeCommandHandler(),
		root.CreateGetPackagesQueryHandler(),
		root.CreateGetLowStockQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
