package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable this module reads.
	EnvPrefix = "STOCKFLOW"

	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Session  SessionConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKFLOW_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOCKFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points the client stack at the inventory REST backend.
type APIConfig struct {
	BaseURL string        `envconfig:"STOCKFLOW_API_BASE_URL" default:"http://localhost:8080/api"`
	Timeout time.Duration `envconfig:"STOCKFLOW_API_TIMEOUT" default:"10s"`
}

// SessionConfig locates the persisted session file (token + display name).
type SessionConfig struct {
	Path string `envconfig:"STOCKFLOW_SESSION_PATH" default:""`
}

// CacheConfig selects the query-cache backend.
type CacheConfig struct {
	Backend string        `envconfig:"STOCKFLOW_CACHE_BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"STOCKFLOW_CACHE_TTL" default:"5m"`
}

// UseRedis reports whether the redis backend was requested.
func (c CacheConfig) UseRedis() bool {
	return strings.EqualFold(strings.TrimSpace(c.Backend), "redis")
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKFLOW_REDIS_URL"`
	Address      string        `envconfig:"STOCKFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ServerConfig configures the bundled reference API server.
type ServerConfig struct {
	Port string `envconfig:"STOCKFLOW_SERVER_PORT" default:"8080"`
}

type DBConfig struct {
	Driver string `envconfig:"STOCKFLOW_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"STOCKFLOW_DB_DSN" default:"stockflow.db"`

	MaxOpenConns    int           `envconfig:"STOCKFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was requested.
func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(d.Driver), "sqlite")
}

type JWTConfig struct {
	Secret            string `envconfig:"STOCKFLOW_JWT_SECRET" default:"dev-only-secret"`
	Issuer            string `envconfig:"STOCKFLOW_JWT_ISSUER" default:"stockflow"`
	ExpirationMinutes int    `envconfig:"STOCKFLOW_JWT_EXPIRATION_MINUTES" default:"480"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOCKFLOW_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOCKFLOW_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOCKFLOW_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOCKFLOW_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOCKFLOW_ARGON_KEY_LEN" default:"32"`
}
