package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bot-commander.backend/internal/config"
	"bot-commander.backend/internal/infrastructure/models"
	"bot-commander.backend/internal/infrastructure/repositories"
	"bot-commander.backend/internal/interfaces/http/handlers"
	"bot-commander.backend/internal/interfaces/http/middleware"
	"bot-commander.backend/internal/usecases"
	"bot-commander.backend/pkg/crypto"
	"bot-commander.backend/pkg/logger"
	"bot-commander.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	autoMigrate     = func(db *gorm.DB) error {
		return db.AutoMigrate(
			&models.User{},
			&models.Login{},
			&models.UserBot{},
			&models.BotBehaviour{},
		)
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
		if err := autoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	botCipher, err := crypto.NewFieldCipher(cfg.Security.BotIDEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize bot id cipher: %w", err)
	}

	sessionStore, err := newSessionStore(cfg.Session.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	loginRepo := repositories.NewLoginRepository(db)
	assignRepo := repositories.NewBotAssignmentRepository(db)
	behavRepo := repositories.NewBotBehaviourRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, loginRepo)
	userUsecase := usecases.NewUserUsecase(userRepo, loginRepo, assignRepo, behavRepo, uow)
	botUsecase := usecases.NewBotUsecase(assignRepo, behavRepo, userRepo, uow, botCipher, usecases.NewLogNotifier())

	if err := ensureAdminUser(context.Background(), cfg, userRepo, loginRepo, uow); err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore, cfg.Session.TTL)
	userHandler := handlers.NewUserHandler(userUsecase)
	botHandler := handlers.NewBotHandler(botUsecase)

	requireLogin := middleware.RequireLogin(sessionStore, authUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:  authHandler,
		userHandler:  userHandler,
		botHandler:   botHandler,
		requireLogin: requireLogin,
		requireAdmin: middleware.RequireAdmin(),
	})

	log.Printf("Bot commander backend starting on port %s", cfg.Server.Port)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
