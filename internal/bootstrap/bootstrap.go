package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/davnat/scolaris/internal/app/auth"
	appControllers "github.com/davnat/scolaris/internal/app/controllers"
	appMigrations "github.com/davnat/scolaris/internal/app/migrations"
	appRepos "github.com/davnat/scolaris/internal/app/repositories"
	appRoutes "github.com/davnat/scolaris/internal/app/routes"
	appServices "github.com/davnat/scolaris/internal/app/services"
	"github.com/davnat/scolaris/internal/config"
	"github.com/davnat/scolaris/internal/db"
	appMiddleware "github.com/davnat/scolaris/internal/middleware"
	pkgAuth "github.com/davnat/scolaris/internal/pkg/auth"
	"github.com/davnat/scolaris/internal/pkg/logger"
	"github.com/davnat/scolaris/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService

	AuthService       *appServices.AuthService
	CollegeService    *appServices.CollegeService
	DepartmentService *appServices.DepartmentService
	ClassroomService  *appServices.ClassroomService
	SubjectService    *appServices.SubjectService
	TeacherService    *appServices.TeacherService
	StudentService    *appServices.StudentService
	EnrollmentService *appServices.EnrollmentService
	GradeService      *appServices.GradeService
	StatisticsService *appServices.StatisticsService

	AuthController       *appControllers.AuthController
	CollegeController    *appControllers.CollegeController
	DepartmentController *appControllers.DepartmentController
	ClassroomController  *appControllers.ClassroomController
	SubjectController    *appControllers.SubjectController
	TeacherController    *appControllers.TeacherController
	StudentController    *appControllers.StudentController
	GradeController      *appControllers.GradeController
	StatisticsController *appControllers.StatisticsController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the bootstrap administrator.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultAdmin(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	repos := deps.Repos

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenDuration(),
		RefreshTokenExp: cfg.RefreshTokenDuration(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(
		repos.TeacherRepository,
		repos.DepartmentRepository,
		logger.With("authorization"),
	)

	deps.AuthService = appServices.NewAuthService(repos.UserRepository, deps.JWTService, logger.With("auth"))
	deps.CollegeService = appServices.NewCollegeService(
		repos.CollegeRepository, repos.DepartmentRepository, deps.AuthzService, logger.With("colleges"))
	deps.DepartmentService = appServices.NewDepartmentService(
		repos.DepartmentRepository, repos.CollegeRepository, repos.TeacherRepository,
		repos.SubjectRepository, deps.AuthzService, logger.With("departments"))
	deps.ClassroomService = appServices.NewClassroomService(
		repos.ClassroomRepository, repos.SubjectRepository, deps.AuthzService, logger.With("classrooms"))
	deps.SubjectService = appServices.NewSubjectService(
		repos.SubjectRepository, repos.DepartmentRepository, repos.ClassroomRepository,
		repos.TeacherRepository, repos.EnrollmentRepository, repos.GradeRepository,
		deps.AuthzService, logger.With("subjects"))
	deps.TeacherService = appServices.NewTeacherService(
		repos.TeacherRepository, repos.UserRepository, repos.DepartmentRepository,
		repos.SubjectRepository, repos.DepartmentRepository, deps.AuthzService, logger.With("teachers"))
	deps.StudentService = appServices.NewStudentService(
		repos.StudentRepository, repos.UserRepository, deps.AuthzService, logger.With("students"))
	deps.EnrollmentService = appServices.NewEnrollmentService(
		repos.EnrollmentRepository, repos.StudentRepository, repos.SubjectRepository,
		repos.GradeRepository, deps.AuthzService, logger.With("enrollments"))
	deps.GradeService = appServices.NewGradeService(
		repos.GradeRepository, repos.SubjectRepository, repos.StudentRepository,
		repos.EnrollmentRepository, deps.AuthzService, logger.With("grades"))
	deps.StatisticsService = appServices.NewStatisticsService(
		repos.GradeRepository, repos.SubjectRepository, repos.EnrollmentRepository,
		logger.With("statistics"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CollegeController = appControllers.NewCollegeController(deps.CollegeService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.ClassroomController = appControllers.NewClassroomController(deps.ClassroomService)
	deps.SubjectController = appControllers.NewSubjectController(deps.SubjectService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.EnrollmentService)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)
	deps.StatisticsController = appControllers.NewStatisticsController(deps.StatisticsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CollegeController,
		deps.DepartmentController,
		deps.ClassroomController,
		deps.SubjectController,
		deps.TeacherController,
		deps.StudentController,
		deps.GradeController,
		deps.StatisticsController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
