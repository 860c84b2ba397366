package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/coursehub/internal/app/auth"
	appControllers "github.com/yigit/coursehub/internal/app/controllers"
	appMigrations "github.com/yigit/coursehub/internal/app/migrations"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	appRoutes "github.com/yigit/coursehub/internal/app/routes"
	appServices "github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/config"
	"github.com/yigit/coursehub/internal/db"
	appMiddleware "github.com/yigit/coursehub/internal/middleware"
	pkgAuth "github.com/yigit/coursehub/internal/pkg/auth"
	"github.com/yigit/coursehub/internal/pkg/filestorage"
	"github.com/yigit/coursehub/internal/pkg/helpers"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             appRepos.Store
	Hasher            pkgAuth.PasswordHasher
	JWTService        *pkgAuth.JWTService
	Revocations       pkgAuth.RevocationStore
	FileStorage       *filestorage.LocalStorage
	AccountService    appServices.AccountService
	CourseService     appServices.CourseService
	PaymentService    appServices.PaymentService
	EnrollmentService appServices.EnrollmentService
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Controllers       appRoutes.Controllers
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format))

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupRedis connects the token revocation store. An empty address disables revocation.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, pkgAuth.RevocationStore) {
	if cfg.Redis.Addr == "" {
		lgr.Warn().Msg("Redis address not configured, logout will not revoke tokens")
		return nil, pkgAuth.NoopRevocationStore{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// authentication fails closed while Redis is unreachable
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to ping Redis")
	} else {
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established.")
	}

	return client, pkgAuth.NewRedisRevocationStore(client)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, revocations pkgAuth.RevocationStore, lgr zerolog.Logger) (*Dependencies, error) {
	store := appRepos.NewRepositories(database)

	deps, err := NewDependencies(cfg, store, revocations, lgr)
	if err != nil {
		return nil, err
	}
	deps.Controllers.Health = appControllers.NewHealthController(database, lgr)

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		admin := seed.AdminAccount{
			Username: cfg.Seed.AdminUsername,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		}
		if err := seed.CreateDefaultData(ctx, store, deps.Hasher, admin, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// NewDependencies wires services and controllers on top of an arbitrary Store.
// The health controller is left nil for the caller to set.
func NewDependencies(cfg *config.Config, store appRepos.Store, revocations pkgAuth.RevocationStore, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Store:       store,
		Revocations: revocations,
		Logger:      lgr,
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.MaxUploadSize)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Hasher = pkgAuth.NewArgon2Hasher(pkgAuth.HashParams{
		Memory:      cfg.Hashing.Memory,
		Iterations:  cfg.Hashing.Iterations,
		Parallelism: cfg.Hashing.Parallelism,
	})

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.DurationSetting(lgr, "jwt.accessTokenExpiration", cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AccountService = appServices.NewAccountService(store, deps.Hasher, deps.JWTService, revocations, logger.Component("accounts"))
	deps.CourseService = appServices.NewCourseService(store, logger.Component("courses"))
	deps.PaymentService = appServices.NewPaymentService(store, logger.Component("payments"))
	deps.EnrollmentService = appServices.NewEnrollmentService(store, logger.Component("enrollments"))

	gate := appAuth.NewGate(deps.JWTService, revocations, store.Users(), logger.Component("auth"))
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(gate)

	deps.Controllers = appRoutes.Controllers{
		User:       appControllers.NewUserController(deps.AccountService, deps.FileStorage, lgr),
		Course:     appControllers.NewCourseController(deps.CourseService, deps.FileStorage, lgr),
		Payment:    appControllers.NewPaymentController(deps.PaymentService),
		Enrollment: appControllers.NewEnrollmentController(deps.EnrollmentService),
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

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadSize
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Metrics(),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
		appMiddleware.Timeout(helpers.DurationSetting(lgr, "server.requestTimeout", cfg.Server.RequestTimeout, 15*time.Second)),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupMetrics(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// uploaded images
	router.Static("/uploads", deps.FileStorage.BasePath())

	return router, nil
}
