package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AdminSecret authorizes the service-credential path. It may be given as
	// a bcrypt hash (recognised by its $2 prefix) or as plaintext; plaintext
	// is compared in constant time.
	AdminSecret string `env:"ADMIN_SECRET"`
	// JWTSecret verifies end-user bearer tokens issued by the identity
	// provider (HS256).
	JWTSecret string `env:"JWT_SECRET"`

	// StalenessDays is the guest-data age limit for end-user-authenticated
	// merges.
	StalenessDays int `env:"MERGE_STALENESS_DAYS, default=30"`

	Mongo MongoConfig
	Redis RedisConfig
	Rate  RateConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=meal_tracker"`
}

type RedisConfig struct {
	// Addr selects the shared rate-limit store. When empty the limiter falls
	// back to per-instance in-memory windows.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type RateConfig struct {
	WindowSeconds int `env:"RATE_WINDOW_SECONDS, default=60"`
	MergeCapacity int `env:"RATE_MERGE_CAPACITY, default=3"`
	ReadCapacity  int `env:"RATE_READ_CAPACITY,  default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDevelopment reports whether the service runs in a development context.
// Controls identifier redaction and error detail exposure.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Window returns the rate-limit window duration.
func (r RateConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// Staleness returns the guest-data staleness threshold.
func (c *Config) Staleness() time.Duration {
	return time.Duration(c.StalenessDays) * 24 * time.Hour
}
