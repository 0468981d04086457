package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Remote   RemoteConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Staff    StaffConfig
	Catalog  CatalogConfig
	Renderer RendererConfig
	Export   ExportConfig
	Cron     CronConfig
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
	Env          string `envconfig:"QUOTEDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTEDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUOTEDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTEDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"QUOTEDESK_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"QUOTEDESK_DB_DSN"`
	Path   string `envconfig:"QUOTEDESK_DB_PATH" default:"quotedesk.db"`

	AutoMigrate bool `envconfig:"QUOTEDESK_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"QUOTEDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTEDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTEDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTEDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required when driver is postgres", EnvDBDSN)
		}
	case DriverSQLite:
		if db.Path == "" && db.DSN == "" {
			return fmt.Errorf("%s or %s is required when driver is sqlite", EnvDBPath, EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	return nil
}

// SQLiteDSN returns the DSN used for the sqlite driver, preferring an
// explicit DSN over the file path.
func (db DBConfig) SQLiteDSN() string {
	if db.DSN != "" {
		return db.DSN
	}
	return db.Path
}

// RemoteConfig points the quote store at the upstream quote service. An empty
// BaseURL disables the remote path and the local mirror serves everything.
type RemoteConfig struct {
	BaseURL string        `envconfig:"QUOTEDESK_REMOTE_BASE_URL"`
	Timeout time.Duration `envconfig:"QUOTEDESK_REMOTE_TIMEOUT" default:"5s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTEDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QUOTEDESK_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTEDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTEDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTEDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTEDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTEDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTEDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTEDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"QUOTEDESK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"QUOTEDESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"QUOTEDESK_JWT_EXPIRATION_MINUTES" default:"480"`
}

// AccessTokenTTL returns the access token TTL configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// StaffConfig carries the shared staff secret as an argon2id hash.
type StaffConfig struct {
	SecretHash       string `envconfig:"QUOTEDESK_STAFF_SECRET_HASH" required:"true"`
	ArgonMemoryKB    int    `envconfig:"QUOTEDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"QUOTEDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"QUOTEDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"QUOTEDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"QUOTEDESK_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	URL             string        `envconfig:"QUOTEDESK_CATALOG_URL" required:"true"`
	FetchTimeout    time.Duration `envconfig:"QUOTEDESK_CATALOG_FETCH_TIMEOUT" default:"10s"`
	RefreshInterval time.Duration `envconfig:"QUOTEDESK_CATALOG_REFRESH_INTERVAL" default:"15m"`
}

type RendererConfig struct {
	BaseURL    string        `envconfig:"QUOTEDESK_RENDERER_BASE_URL" required:"true"`
	Timeout    time.Duration `envconfig:"QUOTEDESK_RENDERER_TIMEOUT" default:"30s"`
	Scale      int           `envconfig:"QUOTEDESK_RENDERER_SCALE" default:"2"`
	Background string        `envconfig:"QUOTEDESK_RENDERER_BACKGROUND" default:"#ffffff"`
}

type ExportConfig struct {
	ImageWait time.Duration `envconfig:"QUOTEDESK_EXPORT_IMAGE_WAIT" default:"5s"`
}

type CronConfig struct {
	Enabled bool `envconfig:"QUOTEDESK_CRON_ENABLED" default:"true"`
}
