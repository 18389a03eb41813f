package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppPort        string
	StoreDriver    string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	StoreNamespace string

	JWTSecret       string
	TokenExpires    time.Duration
	PasswordHashing string
	LatencyScale    float64

	AdminName     string
	AdminContact  string
	AdminPassword string

	TelegramBotToken  string
	TelegramAdminChat string

	AssistantURL    string
	AssistantAPIKey string
	AssistantModel  string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
		DatabaseURL:       getEnv("DATABASE_URL", "freshmarket.db"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		StoreNamespace:    getEnv("STORE_NAMESPACE", "freshmarket"),
		JWTSecret:         getEnv("JWT_SECRET", "0d6f1c1e5b7a4f8e9c2d3b4a5f6e7d8c9b0a1f2e3d4c5b6a7f8e9d0c1b2a3f4e"),
		TokenExpires:      getEnvDuration("JWT_TTL_HOURS", 24) * time.Hour,
		PasswordHashing:   strings.ToLower(getEnv("PASSWORD_HASHING", "plain")),
		LatencyScale:      getEnvFloat("LATENCY_SCALE", 1),
		AdminName:         getEnv("ADMIN_NAME", "Super Admin"),
		AdminContact:      getEnv("ADMIN_CONTACT", "admin@freshmarket.com"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin"),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChat: getEnv("TELEGRAM_ADMIN_CHAT_ID", ""),
		AssistantURL:      getEnv("ASSISTANT_URL", ""),
		AssistantAPIKey:   getEnv("ASSISTANT_API_KEY", ""),
		AssistantModel:    getEnv("ASSISTANT_MODEL", "gemini-2.5-flash"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.AppPort == "":
		return errors.New("APP_PORT must be set")
	case c.JWTSecret == "":
		return errors.New("JWT_SECRET must be set")
	case c.AdminContact == "":
		return errors.New("ADMIN_CONTACT must be set")
	case c.LatencyScale < 0:
		return errors.New("LATENCY_SCALE must not be negative")
	}

	switch c.StoreDriver {
	case "memory", "sqlite", "postgres", "redis":
	default:
		return errors.New("STORE_DRIVER must be one of memory, sqlite, postgres, redis")
	}

	switch c.PasswordHashing {
	case "plain", "bcrypt":
	default:
		return errors.New("PASSWORD_HASHING must be plain or bcrypt")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback))
}
