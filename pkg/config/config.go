package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Wishlist     WishlistConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MULTICART_APP_ENV" required:"true"`
	Port         string `envconfig:"MULTICART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MULTICART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MULTICART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the hosted catalog database. This service only reads
// from it; the data pipeline owns writes.
type DBConfig struct {
	DSN    string `envconfig:"MULTICART_DB_DSN"`
	Driver string `envconfig:"MULTICART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MULTICART_DB_HOST"`
	LegacyPort     int    `envconfig:"MULTICART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MULTICART_DB_USER"`
	LegacyPassword string `envconfig:"MULTICART_DB_PASSWORD"`
	LegacyName     string `envconfig:"MULTICART_DB_NAME"`
	LegacySSLMode  string `envconfig:"MULTICART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MULTICART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MULTICART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MULTICART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MULTICART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MULTICART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MULTICART_REDIS_ADDR"`
	Password     string        `envconfig:"MULTICART_REDIS_PASSWORD"`
	DB           int           `envconfig:"MULTICART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MULTICART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MULTICART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MULTICART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MULTICART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MULTICART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies bearer tokens minted by the hosted auth service.
// This backend never issues tokens itself.
type JWTConfig struct {
	Secret string `envconfig:"MULTICART_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"MULTICART_JWT_ISSUER" required:"true"`
}

type WishlistConfig struct {
	ClearConfirmWindow time.Duration `envconfig:"MULTICART_WISHLIST_CLEAR_CONFIRM_WINDOW" default:"15s"`
}

type CatalogConfig struct {
	DefaultPageSize int `envconfig:"MULTICART_CATALOG_DEFAULT_PAGE_SIZE" default:"24"`
	MaxPageSize     int `envconfig:"MULTICART_CATALOG_MAX_PAGE_SIZE" default:"100"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MULTICART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
