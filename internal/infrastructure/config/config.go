package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string        `env:"PORT,          default=8080"`
	Env          string        `env:"ENV,           default=development"`
	JWTSecret    string        `env:"JWT_SECRET"`
	LogLevel     string        `env:"LOG_LEVEL,     default=info"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=168h"`
	AuditWorkers int           `env:"AUDIT_WORKERS, default=4"`

	Mongo        MongoConfig
	Redis        RedisConfig
	Ticketmaster TicketmasterConfig
	Upload       UploadConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=eventsphere"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type TicketmasterConfig struct {
	APIKey      string `env:"TICKETMASTER_API_KEY"`
	BaseURL     string `env:"TICKETMASTER_BASE_URL, default=https://app.ticketmaster.com/discovery/v2"`
	CountryCode string `env:"TICKETMASTER_COUNTRY,  default=AU"`
}

type UploadConfig struct {
	Dir string `env:"UPLOAD_DIR, default=./uploads"`
}

// Production reports whether the service runs with a production environment.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
