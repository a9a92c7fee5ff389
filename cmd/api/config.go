package main

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/joeshaw/envdecode"
)

// envConfig mirrors the process environment. Its values seed the defaults of
// the command-line flags.
type envConfig struct {
	Port int    `env:"PORT,default=3001"`
	Env  string `env:"ENV,default=development"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     int    `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,default=movies"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`
	// DBDSN wins over the individual DB_* parts when set.
	DBDSN string `env:"DB_DSN"`

	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS,default=25"`
	DBMaxIdleTime  string `env:"DB_MAX_IDLE_TIME,default=15m"`
	DBMigrate      bool   `env:"DB_MIGRATE,default=false"`

	LimiterRPS     float64 `env:"LIMITER_RPS,default=2"`
	LimiterBurst   int     `env:"LIMITER_BURST,default=4"`
	LimiterEnabled bool    `env:"LIMITER_ENABLED,default=false"`

	CORSTrustedOrigins string `env:"CORS_TRUSTED_ORIGINS"`
}

// loadEnvConfig decodes the process environment into an envConfig.
func loadEnvConfig() (envConfig, error) {
	var env envConfig

	err := envdecode.Decode(&env)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return envConfig{}, err
	}

	return env, nil
}

// config converts the environment into the application configuration. The
// command-line flags start from these values.
func (e envConfig) config() config {
	var cfg config

	cfg.port = e.Port
	cfg.env = e.Env

	cfg.db.dsn = e.dsn()
	cfg.db.maxOpenConns = e.DBMaxOpenConns
	cfg.db.maxIdleConns = e.DBMaxIdleConns
	cfg.db.maxIdleTime = e.DBMaxIdleTime
	cfg.db.migrate = e.DBMigrate

	// Off by default; clients re-fetch the list after every write.
	cfg.limiter.rps = e.LimiterRPS
	cfg.limiter.burst = e.LimiterBurst
	cfg.limiter.enabled = e.LimiterEnabled

	cfg.cors.trustedOrigins = strings.Fields(e.CORSTrustedOrigins)

	return cfg
}

// dsn builds a postgres:// URL from the DB_* parts unless DB_DSN is set.
func (e envConfig) dsn() string {
	if e.DBDSN != "" {
		return e.DBDSN
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(e.DBHost, strconv.Itoa(e.DBPort)),
		Path:   "/" + e.DBName,
	}

	if e.DBUser != "" {
		if e.DBPassword != "" {
			u.User = url.UserPassword(e.DBUser, e.DBPassword)
		} else {
			u.User = url.User(e.DBUser)
		}
	}

	if e.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {e.DBSSLMode}}.Encode()
	}

	return u.String()
}
