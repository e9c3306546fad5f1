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
	"github.com/rs/zerolog"

	appAuth "github.com/futureedge/counselling/internal/app/auth"
	appControllers "github.com/futureedge/counselling/internal/app/controllers"
	appMigrations "github.com/futureedge/counselling/internal/app/migrations"
	appRepos "github.com/futureedge/counselling/internal/app/repositories"
	appRoutes "github.com/futureedge/counselling/internal/app/routes"
	appServices "github.com/futureedge/counselling/internal/app/services"
	"github.com/futureedge/counselling/internal/config"
	"github.com/futureedge/counselling/internal/db"
	appMiddleware "github.com/futureedge/counselling/internal/middleware"
	pkgAuth "github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/futureedge/counselling/internal/pkg/email"
	"github.com/futureedge/counselling/internal/pkg/filestorage"
	"github.com/futureedge/counselling/internal/pkg/helpers"
	"github.com/futureedge/counselling/internal/pkg/logger"
	"github.com/futureedge/counselling/internal/pkg/validation"
	"github.com/futureedge/counselling/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware
	FileStorage    *filestorage.LocalStorage
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:        logLevel,
		Pretty:       strings.ToLower(cfg.Logging.Format) == "text",
		RollbarToken: cfg.Logging.RollbarToken,
		Environment:  cfg.Logging.Environment,
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, runs migrations and seeds the first admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := config.GetEnv("MIGRATIONS_DIR", "migrations")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	adminSeed := seed.AdminSeed{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		FullName: cfg.Seed.AdminName,
	}
	hasher := pkgAuth.NewBcryptHasher(pkgAuth.BcryptCost)
	if err := seed.CreateDefaultAdmin(ctx, appRepos.NewAdminRepository(database.Pool), hasher, adminSeed, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create seed admin, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, q db.DBTX, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(q)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.DocumentsBucket, cfg.Storage.FormsBucket)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:         cfg.JWT.Secret,
		AdminTokenExp:     helpers.ParseDuration(cfg.JWT.AdminTokenExpiration, 12*time.Hour),
		StudentSessionExp: helpers.ParseDuration(cfg.JWT.StudentSessionExpiration, 24*time.Hour),
		TokenIssuer:       cfg.JWT.Issuer,
	})
	signer := pkgAuth.NewURLSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.Server.BaseURL)
	hasher := pkgAuth.NewBcryptHasher(pkgAuth.BcryptCost)

	mailer := email.NewMailer(email.Config{
		Provider: cfg.Mail.Provider,
		SMTP: email.SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUsername,
			Password: cfg.Mail.SMTPPassword,
			UseTLS:   cfg.Mail.SMTPUseTLS,
		},
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
		FromName:       cfg.Mail.FromName,
		FromEmail:      cfg.Mail.FromEmail,
	}, lgr)

	studentLimits := appServices.UploadLimits{MaxBytes: cfg.Upload.Student.MaxBytes, AllowedTypes: cfg.Upload.Student.Types()}
	adminLimits := appServices.UploadLimits{MaxBytes: cfg.Upload.Admin.MaxBytes, AllowedTypes: cfg.Upload.Admin.Types()}

	repos := deps.Repos
	authService := appServices.NewAuthService(
		repos.StudentRepository,
		repos.AdminRepository,
		repos.PasswordResetRepository,
		hasher,
		deps.JWTService,
		mailer,
		appServices.AuthConfig{
			SiteURL:       cfg.App.SiteURL,
			ResetTokenTTL: helpers.ParseDuration(cfg.App.ResetTokenTTL, time.Hour),
		},
		lgr,
	)
	studentService := appServices.NewStudentService(repos.StudentRepository, repos.DocumentRepository, repos.FormRepository, hasher, lgr)
	noticeService := appServices.NewNoticeService(repos.NoticeRepository, lgr)
	dashboardService := appServices.NewDashboardService(repos.StudentRepository, repos.AlertRepository, noticeService)
	documentService := appServices.NewDocumentService(repos.DocumentRepository, repos.StudentRepository, deps.FileStorage, cfg.Storage.DocumentsBucket, lgr)
	fileService := appServices.NewFileService(repos.DocumentRepository, repos.FormRepository, deps.FileStorage, signer, appServices.FileAccessConfig{
		DocumentsBucket: cfg.Storage.DocumentsBucket,
		FormsBucket:     cfg.Storage.FormsBucket,
		DocumentURLTTL:  helpers.ParseDuration(cfg.Storage.DocumentURLTTL, time.Hour),
		FormURLTTL:      helpers.ParseDuration(cfg.Storage.FormURLTTL, 5*time.Minute),
	})
	formService := appServices.NewFormService(repos.FormRepository, repos.StudentRepository, deps.FileStorage, fileService, lgr)
	alertService := appServices.NewAlertService(repos.AlertRepository, repos.StudentRepository, lgr)

	deps.AuthzService = appAuth.NewAuthorizationService(repos.RoleRepository)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService, lgr),
		Student:      appControllers.NewStudentController(studentService, dashboardService, lgr),
		AdminStudent: appControllers.NewAdminStudentController(studentService, lgr),
		Document:     appControllers.NewDocumentController(documentService, studentLimits, adminLimits, lgr),
		Form:         appControllers.NewFormController(formService, adminLimits, lgr),
		File:         appControllers.NewFileController(fileService),
		Notice:       appControllers.NewNoticeController(noticeService, lgr),
		Alert:        appControllers.NewAlertController(alertService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.Setup(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
