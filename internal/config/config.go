package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"tourismBooking/models"
)

const devSessionSecret = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	Env      string         `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Auth     AuthConfig     `yaml:"auth"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// HTTPConfig contains web server settings.
type HTTPConfig struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	Templates   string        `yaml:"templates" env:"HTTP_TEMPLATES"`       // glob of HTML templates; empty renders JSON
	CORSOrigins []string      `yaml:"cors_origins" env:"HTTP_CORS_ORIGINS"` // empty disables CORS

	TrustedProxies []string `yaml:"trusted_proxies" env:"HTTP_TRUSTED_PROXIES"` // empty ignores X-Forwarded-For
}

// GRPCConfig contains the health probe listener settings.
type GRPCConfig struct {
	Address string `yaml:"address" env:"GRPC_ADDRESS"` // empty disables the listener
}

// DatabaseConfig contains datastore settings shared by every role plus the
// per-role credentials.
type DatabaseConfig struct {
	Driver       string `yaml:"driver" env:"DB_DRIVER" env-default:"pgx"` // pgx | sqlite3
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name         string `yaml:"name" env:"DB_NAME" env-default:"Tourism_and_Travel_Booking_System"`
	SSLMode      string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Pooled       bool   `yaml:"pooled" env:"DB_POOLED" env-default:"false"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"4"`
	Migrate      bool   `yaml:"migrate" env:"DB_MIGRATE" env-default:"false"`
	StrictRoles  bool   `yaml:"strict_roles" env:"DB_STRICT_ROLES" env-default:"true"`

	Admin      RoleCredential `yaml:"admin" env-prefix:"DB_ADMIN_"`
	Agent      RoleCredential `yaml:"agent" env-prefix:"DB_AGENT_"`
	Accountant RoleCredential `yaml:"accountant" env-prefix:"DB_ACCOUNTANT_"`
}

// RoleCredential is the database login used for one role.
type RoleCredential struct {
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
}

// SessionConfig contains session cookie and backend settings.
type SessionConfig struct {
	Backend    string        `yaml:"backend" env:"SESSION_BACKEND" env-default:"cookie"` // cookie | redis
	Secret     string        `yaml:"secret" env:"SESSION_SECRET"`
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE" env-default:"tourism_session"`
	TTL        time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"12h"`
	Secure     bool          `yaml:"secure" env:"SESSION_SECURE" env-default:"false"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig is used when the session backend is redis.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// AuthConfig contains login and registration settings.
type AuthConfig struct {
	LoginRate         float64 `yaml:"login_rate" env:"AUTH_LOGIN_RATE" env-default:"0.2"` // attempts per second per client
	LoginBurst        int     `yaml:"login_burst" env:"AUTH_LOGIN_BURST" env-default:"5"`
	AllowRegistration bool    `yaml:"allow_registration" env:"AUTH_ALLOW_REGISTRATION" env-default:"true"`
}

// CatalogConfig controls the package catalog staleness window.
type CatalogConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CATALOG_TTL" env-default:"1m"`
}

// Load reads configuration from CONFIG_PATH (if set) and the environment and
// validates the settings production depends on.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if cfg.Session.Backend == "cookie" && cfg.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is not set; required for production")
	}
	if cfg.Database.Driver == "pgx" {
		for _, r := range models.Roles() {
			if cfg.Database.Credential(r).Password == "" {
				return nil, fmt.Errorf("database password for role %s is not set", r)
			}
		}
	}
	return cfg, cfg.validate()
}

// LoadWithDefaults is like Load but fills development defaults for secrets:
// the session secret and each role's database password (which defaults to
// the role name).
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = devSessionSecret
	}
	for _, c := range []*RoleCredential{&cfg.Database.Admin, &cfg.Database.Agent, &cfg.Database.Accountant} {
		if c.Password == "" {
			c.Password = c.User
		}
	}
	return cfg, cfg.validate()
}

func read() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	// Database users default to the role name.
	if cfg.Database.Admin.User == "" {
		cfg.Database.Admin.User = string(models.RoleAdmin)
	}
	if cfg.Database.Agent.User == "" {
		cfg.Database.Agent.User = string(models.RoleAgent)
	}
	if cfg.Database.Accountant.User == "" {
		cfg.Database.Accountant.User = string(models.RoleAccountant)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "pgx", "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Session.Backend {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.Database.MaxOpenConns)
	}
	return nil
}

// Credential returns the database login configured for role. Unknown roles
// get the zero value.
func (d DatabaseConfig) Credential(role models.Role) RoleCredential {
	switch role {
	case models.RoleAdmin:
		return d.Admin
	case models.RoleAgent:
		return d.Agent
	case models.RoleAccountant:
		return d.Accountant
	}
	return RoleCredential{}
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, HTTP: %s, gRPC: %q, DB: %s@%s:%s/%s pooled=%t, Session: %s *** (masked) ***}",
		c.Env, c.HTTP.Address, c.GRPC.Address, c.Database.Driver, c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Pooled, c.Session.Backend)
}
