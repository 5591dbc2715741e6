package di

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskmaster/application/serviceimpl"
	"taskmaster/domain/ports"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/infrastructure/memory"
	"taskmaster/infrastructure/postgres"
	redispkg "taskmaster/infrastructure/redis"
	"taskmaster/interfaces/api/handlers"
	"taskmaster/pkg/config"
	"taskmaster/pkg/logger"
	"taskmaster/pkg/scheduler"
	"taskmaster/pkg/utils"
)

const (
	Version = "1.0.0"

	housekeepingJobID = "housekeeping"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB         // nil with STORE_TYPE=memory
	RedisClient    *redispkg.Client // optional dashboard cache
	DashboardCache ports.DashboardCache
	TokenManager   *utils.TokenManager
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository    repositories.UserRepository
	ProjectRepository repositories.ProjectRepository
	TaskRepository    repositories.TaskRepository
	CommentRepository repositories.CommentRepository

	// Services
	UserService         services.UserService
	ProjectService      services.ProjectService
	TaskService         services.TaskService
	CommentService      services.CommentService
	DashboardService    services.DashboardService
	HousekeepingService services.HousekeepingService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	switch c.Config.Store.Type {
	case "memory":
		logger.Info("Using in-memory store")
	case "postgres":
		dbConfig := postgres.DatabaseConfig{
			Host:     c.Config.Database.Host,
			Port:     c.Config.Database.Port,
			User:     c.Config.Database.User,
			Password: c.Config.Database.Password,
			DBName:   c.Config.Database.DBName,
			SSLMode:  c.Config.Database.SSLMode,
		}

		db, err := postgres.NewDatabase(dbConfig)
		if err != nil {
			return err
		}
		c.DB = db
		logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

		if err := postgres.Migrate(db); err != nil {
			return err
		}
		logger.Info("Database migrated")
	default:
		return fmt.Errorf("unknown STORE_TYPE %q (expected memory or postgres)", c.Config.Store.Type)
	}

	// Redis is optional, the dashboard is computed on every request without it
	c.DashboardCache = ports.NewNoopDashboardCache()
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.DashboardCache = redispkg.NewDashboardCache(redisClient)
			logger.Info("Dashboard cache enabled", "ttl", c.Config.Redis.CacheTTL.String())
		}
	}

	if c.Config.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, tokens are signed with the built-in development secret")
	}
	c.TokenManager = utils.NewTokenManager(c.Config.JWT.Secret, c.Config.JWT.TTL)

	return nil
}

func (c *Container) initRepositories() error {
	if c.DB != nil {
		c.UserRepository = postgres.NewUserRepository(c.DB)
		c.ProjectRepository = postgres.NewProjectRepository(c.DB)
		c.TaskRepository = postgres.NewTaskRepository(c.DB)
		c.CommentRepository = postgres.NewCommentRepository(c.DB)
	} else {
		c.UserRepository = memory.NewUserRepository()
		c.ProjectRepository = memory.NewProjectRepository()
		c.TaskRepository = memory.NewTaskRepository()
		c.CommentRepository = memory.NewCommentRepository()
	}

	logger.Info("Repositories initialized", "store", c.Config.Store.Type)
	return nil
}

func (c *Container) initServices() error {
	now := serviceimpl.Clock(time.Now)

	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.TokenManager, c.Config.App.BcryptCost, now)
	c.ProjectService = serviceimpl.NewProjectService(c.ProjectRepository, c.UserRepository, c.DashboardCache, now)
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.ProjectRepository, c.UserRepository, c.DashboardCache, now)
	c.CommentService = serviceimpl.NewCommentService(c.CommentRepository, c.TaskRepository, c.ProjectRepository, c.UserRepository, c.DashboardCache, now)
	c.DashboardService = serviceimpl.NewDashboardService(c.ProjectRepository, c.TaskRepository, c.CommentRepository, c.UserRepository, c.DashboardCache, c.Config.Redis.CacheTTL)
	c.HousekeepingService = serviceimpl.NewHousekeepingService(c.UserRepository, c.ProjectRepository, c.TaskRepository, c.CommentRepository)

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	cron := c.Config.Housekeeping.Cron
	if cron == "" {
		logger.Info("Housekeeping disabled (HOUSEKEEPING_CRON is empty)")
		return nil
	}

	if err := scheduler.ValidateCronExpression(cron); err != nil {
		return fmt.Errorf("invalid HOUSEKEEPING_CRON: %w", err)
	}

	if err := c.EventScheduler.AddJob(housekeepingJobID, cron, c.HousekeepingService.Run); err != nil {
		return err
	}

	c.EventScheduler.Start()
	logger.Info("Event scheduler started", "housekeeping", cron)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// Stop scheduler
	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:      c.UserService,
		ProjectService:   c.ProjectService,
		TaskService:      c.TaskService,
		CommentService:   c.CommentService,
		DashboardService: c.DashboardService,
		AppName:          c.Config.App.Name,
		Version:          Version,
	}
}
