// Package config provides the structures and loading logic for the
// service configuration. Values come from a yaml file pointed to by
// CONFIG_PATH, or straight from the environment when no file is set,
// matching how the service is deployed alongside the other TechShop
// containers.
package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// insecureDefaultSecret is the placeholder secret the demo deployment
// shipped with. Starting with it (or with no secret at all outside the
// local env) is a fatal configuration error.
const insecureDefaultSecret = "techshop-secret-key-change-in-production"

// Config holds all settings of the user service.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	// TrustGatewayHeader switches identity extraction to the
	// X-User-Id header forwarded by the API gateway instead of
	// verifying the bearer token in this service.
	TrustGatewayHeader bool `yaml:"trust_gateway_header" env:"TRUST_GATEWAY_HEADER" env-default:"false"`
	RedisConnection    `yaml:"redis_connection"`
	RabbitMQ           `yaml:"rabbitmq"`
	HTTPServer         `yaml:"http_server"`
	JWTToken           `yaml:"jwttoken"`
}

// HTTPServer holds the listener settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8001"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection holds the cache settings. An empty address disables
// the cache entirely.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" env-default:"5m"`
}

// RabbitMQ holds the event broker settings. An empty URL disables
// event publishing.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"techshop.events"`
}

// JWTToken holds the token signing settings.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

// Validate rejects configurations that must never reach a running
// service: a missing database, and a missing or placeholder signing
// secret. Only the local env may run without a real secret.
func (c *Config) Validate() error {
	if c.StorageConnectionString == "" {
		return errors.New("storage connection string is not set")
	}
	if c.JWTSecretKey == insecureDefaultSecret {
		return errors.New("jwt secret is the insecure placeholder value, set a real JWT_SECRET")
	}
	if c.JWTSecretKey == "" && c.Env != "local" {
		return errors.New("jwt secret is not set")
	}
	return nil
}

// MustLoad loads the configuration or terminates the process. When
// CONFIG_PATH is set the yaml file is read (env vars still override),
// otherwise the environment alone is used.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	return &cfg
}
