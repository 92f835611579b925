package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/identity/pkg/httpx"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var (
	ErrInvalidDuration = errors.New("token durations must be positive")
	ErrUnknownBackend  = errors.New("unknown revocation backend")
)

type Config struct {
	SignerKey              string `env:"JWT_SIGNER_KEY,required,notEmpty,unset"` // Required: HS512 shared secret
	Issuer                 string `env:"JWT_ISSUER"                 envDefault:"mq"`
	ValidDurationSec       int    `env:"JWT_VALID_DURATION"         envDefault:"3600"`
	RefreshableDurationSec int    `env:"JWT_REFRESHABLE_DURATION"   envDefault:"36000"`

	DatabaseFile      string `env:"DATABASE_FILE"      envDefault:"identity.db"`
	RevocationBackend string `env:"REVOCATION_BACKEND" envDefault:"sqlite"` // sqlite or redis
	RedisAddr         string `env:"REDIS_ADDR"         envDefault:"localhost:6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisDB           int    `env:"REDIS_DB"`
	RedisKeyPrefix    string `env:"REDIS_KEY_PREFIX"   envDefault:"identity:revoked"`

	Env       string `env:"ENV"        envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	BcryptCost           int           `env:"BCRYPT_COST"           envDefault:"10"`

	// Seed admin, created on first start when no such user exists. An
	// empty password is generated and logged once.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD,unset"`

	AuthLimit httpx.RateLimitConfig `envPrefix:"RATELIMIT_AUTH_"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	cfg := Config{AuthLimit: httpx.StrictLimit}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ValidDurationSec <= 0 || c.RefreshableDurationSec <= 0 {
		return ErrInvalidDuration
	}
	switch c.RevocationBackend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.RevocationBackend)
	}
	return nil
}

func (c Config) ValidDuration() time.Duration {
	return time.Duration(c.ValidDurationSec) * time.Second
}

func (c Config) RefreshableDuration() time.Duration {
	return time.Duration(c.RefreshableDurationSec) * time.Second
}

// LogValue omits every secret.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("issuer", c.Issuer),
		slog.Int("valid_duration_sec", c.ValidDurationSec),
		slog.Int("refreshable_duration_sec", c.RefreshableDurationSec),
		slog.String("database_file", c.DatabaseFile),
		slog.String("revocation_backend", c.RevocationBackend),
		slog.String("env", c.Env),
		slog.Int("port", c.Port),
	)
}
