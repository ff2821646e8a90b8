package main

import (
	"fmt"
	"log/slog"
	"os"

	"swiftdrop/cmd"
	httpadapter "swiftdrop/internal/adapters/in/http"
	"swiftdrop/internal/adapters/out/postgres/orderrepo"
	"swiftdrop/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := connectToDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := startJobs(&app)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		GeoAPIURL:  goDotEnvVariable("GEO_API_URL"),
		GeoAPIKey:  goDotEnvVariable("GEO_API_KEY"),
		JWTSecret:  goDotEnvVariable("JWT_SECRET"),
		JWTExpiry:  goDotEnvVariable("JWT_EXPIRY"),
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

func connectToDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startJobs(app *cmd.CompositionRoot) *jobs.JobManager {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(app.CreateRefreshEtaCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	startDeliveryHandler, err := app.CreateStartDeliveryCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create start delivery handler: %v", err)
	}
	completeDeliveryHandler, err := app.CreateCompleteDeliveryCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create complete delivery handler: %v", err)
	}
	cancelOrderHandler, err := app.CreateCancelOrderCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create cancel order handler: %v", err)
	}
	reportPositionHandler, err := app.CreateReportPositionCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create report position handler: %v", err)
	}

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAssignOrderCommandHandler(),
		startDeliveryHandler,
		completeDeliveryHandler,
		cancelOrderHandler,
		reportPositionHandler,
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderPositionQueryHandler(),
		app.NotificationChannel(),
		app.JWTService(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
