package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. Running with it is a misconfiguration.
const DefaultJWTSecret = "taskmaster_secret_key_2024"

type Config struct {
	App          AppConfig
	Store        StoreConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Log          LogConfig
	Housekeeping HousekeepingConfig
}

type AppConfig struct {
	Name         string
	Port         string
	Env          string
	AllowOrigins string
	BcryptCost   int
}

// StoreConfig selects the repository backend: memory or postgres
type StoreConfig struct {
	Type string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig for the optional dashboard cache. Empty URL disables it.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// HousekeepingConfig controls the periodic store report. Empty Cron disables it.
type HousekeepingConfig struct {
	Cron string
}

func LoadConfig() (*Config, error) {
	// .env is optional, plain environment variables work too
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL := getEnvInt("DASHBOARD_CACHE_TTL_SECONDS", 30)

	jwtTTL := getEnvInt("JWT_TTL_HOURS", 24*7)
	bcryptCost := getEnvInt("BCRYPT_COST", 10)

	config := &Config{
		App: AppConfig{
			Name:         getEnv("APP_NAME", "TaskMaster API"),
			Port:         getEnv("APP_PORT", getEnv("PORT", "8001")),
			Env:          getEnv("APP_ENV", "development"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173"),
			BcryptCost:   bcryptCost,
		},
		Store: StoreConfig{
			Type: strings.ToLower(getEnv("STORE_TYPE", "memory")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "taskmaster"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: time.Duration(cacheTTL) * time.Second,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TTL:    time.Duration(jwtTTL) * time.Hour,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Housekeeping: HousekeepingConfig{
			Cron: os.Getenv("HOUSEKEEPING_CRON"),
		},
	}

	if _, set := os.LookupEnv("HOUSEKEEPING_CRON"); !set {
		config.Housekeeping.Cron = "*/15 * * * *"
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// UsesDefaultSecret reports whether tokens are signed with the built-in secret
func (c *Config) UsesDefaultSecret() bool {
	return c.JWT.Secret == DefaultJWTSecret
}
