package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port     string
	DBDriver string
	DBDSN    string
	GinMode  string
}

// Load reads .env when present and falls back to environment defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DBDriver: getEnv("DB_DRIVER", "mysql"),
		DBDSN:    getEnv("DB_DSN", "cafe:cafe@tcp(127.0.0.1:3306)/cafe?charset=utf8mb4&parseTime=True&loc=Local"),
		GinMode:  getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the configured relational store. TranslateError makes the
// drivers surface duplicate keys as gorm.ErrDuplicatedKey so the services
// can classify them uniformly.
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBDSN), gormCfg)
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
