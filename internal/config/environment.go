// Package config provides configuration loading and management for the Roamlog application.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"

	"github.com/roamlog/api/pkg/logger"
)

// Config holds environment configuration for the Roamlog application.
type Config struct {
	// RoamlogPort is the port on which the Roamlog server runs.
	RoamlogPort string `env:"ROAMLOG_PORT"`

	// DataBackend selects the primary store: "mongo" (default) or "postgres".
	DataBackend string `env:"DATA_BACKEND"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `env:"MONGO_URI"`
	// MongoDatabase is the MongoDB database name.
	MongoDatabase string `env:"MONGO_DB"`

	// RedisAddr enables the read cache when set.
	RedisAddr string `env:"REDIS_ADDR"`
	// CacheTTLSeconds is the read-cache entry lifetime.
	CacheTTLSeconds int `env:"CACHE_TTL_SECONDS"`

	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE"`
}

// Conf holds the global configuration for the Roamlog application.
var Conf Config

func loadDotEnv() {
	// Load .env file at the root of the project into environment if present.
	// Does not override existing environ variable
	path := os.Getenv("DOTENV_PATHS")
	if path != "" {
		err := godotenv.Load(strings.Split(path, ",")...)
		if err != nil {
			logger.Fatal(context.Background(), err.Error())
		}
	}
}

// InitConf initializes the global configuration by loading environment variables and .env files.
func InitConf() {
	loadDotEnv()

	if err := env.Parse(&Conf); err != nil {
		logger.Fatal(context.Background(), err.Error())
	}
}
