package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "lisensia"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	WhatsApp     WhatsAppConfig
	Reminder     ReminderConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LISENSIA_APP_ENV" required:"true"`
	Port         string `envconfig:"LISENSIA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LISENSIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LISENSIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"LISENSIA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	Driver     string `envconfig:"LISENSIA_DB_DRIVER" default:"postgres"`
	DSN        string `envconfig:"LISENSIA_DB_DSN"`
	SQLitePath string `envconfig:"LISENSIA_DB_SQLITE_PATH" default:"data/lisensia.db"`

	MaxOpenConns    int           `envconfig:"LISENSIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LISENSIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LISENSIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LISENSIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) validate() error {
	switch d.Driver {
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("LISENSIA_DB_DSN is required for the postgres driver")
		}
	case DriverSQLite:
		if d.SQLitePath == "" {
			return fmt.Errorf("LISENSIA_DB_SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported db driver %q", d.Driver)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"LISENSIA_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"LISENSIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LISENSIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LISENSIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LISENSIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LISENSIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LISENSIA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LISENSIA_JWT_ISSUER" default:"lisensia"`
	ExpirationMinutes int    `envconfig:"LISENSIA_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LISENSIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LISENSIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LISENSIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LISENSIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LISENSIA_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LISENSIA_AUTO_MIGRATE" default:"false"`
}

// WhatsAppConfig describes how to reach the external messaging worker binary.
type WhatsAppConfig struct {
	BinaryPath    string        `envconfig:"LISENSIA_WHATSAPP_BINARY" default:"scripts/whatsmeow/whatsapp"`
	SendTimeout   time.Duration `envconfig:"LISENSIA_WHATSAPP_SEND_TIMEOUT" default:"30s"`
	SuccessMarker string        `envconfig:"LISENSIA_WHATSAPP_SUCCESS_MARKER" default:"Message sent!"`
}

type ReminderConfig struct {
	LeadDays int `envconfig:"LISENSIA_REMINDER_LEAD_DAYS" default:"3"`
}
