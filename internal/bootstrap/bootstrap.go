package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	appControllers "github.com/lcarvalho/academico/internal/app/controllers"
	appMigrations "github.com/lcarvalho/academico/internal/app/migrations"
	appRepos "github.com/lcarvalho/academico/internal/app/repositories"
	appRoutes "github.com/lcarvalho/academico/internal/app/routes"
	appServices "github.com/lcarvalho/academico/internal/app/services"
	"github.com/lcarvalho/academico/internal/config"
	"github.com/lcarvalho/academico/internal/db"
	appMiddleware "github.com/lcarvalho/academico/internal/middleware"
	"github.com/lcarvalho/academico/internal/pkg/logger"
	"github.com/lcarvalho/academico/internal/seed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService    *appServices.StudentService
	CourseService     *appServices.CourseService
	AuthService       *appServices.AuthService
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// .env is optional, it only feeds the environment overrides
	_ = godotenv.Load()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds defaults.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		lgr.Warn().Err(err).Msg("Seeding default data reported errors")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	studentRepo := appRepos.NewStudentRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	studentService := appServices.NewStudentService(studentRepo, courseRepo)
	courseService := appServices.NewCourseService(courseRepo)
	authService := appServices.NewAuthService(userRepo)

	return &Dependencies{
		StudentService:    studentService,
		CourseService:     courseService,
		AuthService:       authService,
		StudentController: appControllers.NewStudentController(studentService),
		CourseController:  appControllers.NewCourseController(courseService),
		AuthMiddleware:    appMiddleware.NewAuthMiddleware(authService),
		Logger:            lgr,
	}
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router, deps.StudentController, deps.CourseController, deps.AuthMiddleware)

	lgr.Info().Msg("Router configured")
	return router
}
