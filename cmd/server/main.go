package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dhealy/applytrack/internal/config"
	"github.com/dhealy/applytrack/internal/domain/fiber/handler"
	"github.com/dhealy/applytrack/internal/middleware"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/dhealy/applytrack/internal/repository"
	"github.com/dhealy/applytrack/internal/service"
	"github.com/dhealy/applytrack/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	jobRepo := repository.NewJobRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	letterRepo := repository.NewCoverLetterRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	fetcher := service.NewFetcherService()
	llm := buildCompletionClient(ctx)

	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo, applicationRepo, letterRepo)
	importUC := usecase.NewImportUsecase(jobRepo, usageRepo, fetcher, llm)
	discoveryUC := usecase.NewDiscoveryUsecase(jobRepo, settingsRepo, usageRepo, fetcher, llm)
	analysisUC := usecase.NewAnalysisUsecase(jobRepo, settingsRepo, usageRepo, llm)
	letterUC := usecase.NewCoverLetterUsecase(jobRepo, letterRepo, settingsRepo, usageRepo, llm)
	settingsUC := usecase.NewSettingsUsecase(settingsRepo)
	dashboardUC := usecase.NewDashboardUsecase(jobRepo, applicationRepo, settingsRepo)

	handler.NewJobHandler(jobUC, importUC, discoveryUC, analysisUC, letterUC).RegisterRoutes(app)
	handler.NewSettingsHandler(settingsUC).RegisterRoutes(app)
	handler.NewDashboardHandler(dashboardUC).RegisterRoutes(app)

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// buildCompletionClient picks the completion backend from LLM_PROVIDER.
// Anthropic is the default; Gemini is kept as a drop-in alternative.
func buildCompletionClient(ctx context.Context) service.CompletionClientInterface {
	llmConfig := config.LoadLLMConfig()
	if llmConfig.Provider == "gemini" {
		gemini, err := service.NewGeminiService(ctx)
		if err != nil {
			log.Fatal(err)
		}
		return gemini
	}
	return service.NewAnthropicService()
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey,
	// which the job repository relies on for URL dedup.
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.Job{},
		&model.Company{},
		&model.Application{},
		&model.CoverLetter{},
		&model.BotSetting{},
		&model.AiUsageLog{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
