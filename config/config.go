package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Scraper   ScraperConfig
	Predictor PredictorConfig
	Cleanup   CleanupConfig
}

type ServerConfig struct {
	AppEnv      string
	HTTPPort    string
	CORSOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ScraperConfig tunes the store adapters and the aggregator.
type ScraperConfig struct {
	AdapterTimeout time.Duration
	UserAgent      string
	QuoteCacheTTL  time.Duration
}

// PredictorConfig carries the trend-model tuning constants. The blend weights
// and the blend threshold are historical defaults, not hard requirements.
type PredictorConfig struct {
	RegressionWeight float64
	MovingAvgWeight  float64
	BlendMinPoints   int
}

type CleanupConfig struct {
	Interval      time.Duration
	RetentionDays int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "dev"),
			HTTPPort:    getEnv("HTTP_PORT", ":8080"),
			CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"*"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "grocify"),
			Password:        getEnv("POSTGRES_PASSWORD", "grocify"),
			DBName:          getEnv("POSTGRES_DB", "grocify_prices"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
			TTL:       time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Scraper: ScraperConfig{
			AdapterTimeout: time.Duration(getEnvInt("SCRAPER_ADAPTER_TIMEOUT_SECONDS", 15)) * time.Second,
			UserAgent:      getEnv("SCRAPER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
			QuoteCacheTTL:  time.Duration(getEnvInt("SCRAPER_QUOTE_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Predictor: PredictorConfig{
			RegressionWeight: getEnvFloat("PREDICTOR_REGRESSION_WEIGHT", 0.7),
			MovingAvgWeight:  getEnvFloat("PREDICTOR_MOVING_AVG_WEIGHT", 0.3),
			BlendMinPoints:   getEnvInt("PREDICTOR_BLEND_MIN_POINTS", 7),
		},
		Cleanup: CleanupConfig{
			Interval:      time.Duration(getEnvInt("CLEANUP_INTERVAL_HOURS", 24)) * time.Hour,
			RetentionDays: getEnvInt("CLEANUP_RETENTION_DAYS", 90),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
