package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/hafizmfadli/movie-catalog/internal/jsonlog"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Application version number
const version = "1.0.0"

// config struct hold all the configuration settings for out application.
type config struct {

	// the network port that we want the server to listen on
	port int

	// current operating environment for the application (dev, staging, prod, etc..)
	env string

	// db struct field hold the configuration settings for our database connection pool.
	db struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
		migrate      bool
	}

	// limiter struct containing fields for the requests per second and burst
	// values, and a boolean field which we can use to enable/disable rate limiting
	// altogether
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}

	// cors holds the origins allowed to call the API from a browser. An empty
	// list allows any origin.
	cors struct {
		trustedOrigins []string
	}
}

// application struct hold the dependencies for our HTTP handlers, helpers, and middleware.
type application struct {
	config  config
	logger  *jsonlog.Logger
	models  data.Models
	metrics *metrics
}

func main() {

	// A missing .env file is fine, the process environment is used as is.
	_ = godotenv.Load()

	// Initialize a new jsonlog.Logger which writes any messages *at or above* the
	// configured severity level to the standard out stream
	logger := jsonlog.NewLogger(os.Stdout, jsonlog.ParseLevel(os.Getenv("LOG_LEVEL")))

	env, err := loadEnvConfig()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	cfg := env.config()

	// Environment values become the defaults of the command-line flags.
	flag.IntVar(&cfg.port, "port", cfg.port, "API server port")
	flag.StringVar(&cfg.env, "env", cfg.env, "Environment (development|staging|production)")

	// Read the DSN value from the db-dsn command-line flag into the config struct.
	flag.StringVar(&cfg.db.dsn, "db-dsn", cfg.db.dsn, "PostgreSQL DSN")

	// Read the connection pool settings from command-line flags into the config struct.
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", cfg.db.maxOpenConns, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", cfg.db.maxIdleConns, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", cfg.db.maxIdleTime, "PostgreSQL max connection idle time")
	flag.BoolVar(&cfg.db.migrate, "db-migrate", cfg.db.migrate, "Apply schema migrations on startup")

	// Create command line flags to read the limiter settings into the config struct.
	// Rate limiting stays off unless LIMITER_ENABLED or -limiter-enabled turns it on.
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", cfg.limiter.rps, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", cfg.limiter.burst, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", cfg.limiter.enabled, "Enable rate limiter")

	// Use the flag.Func() function to process the -cors-trusted-origins command line
	// flag. In this we use the strings.Fields() function to split the flag value into a
	// slice based on whitespace characters and assign it to our config struct.
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	flag.Parse()

	if cfg.db.migrate {
		err = data.Migrate(cfg.db.dsn)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		logger.PrintInfo("database migrations applied", nil)
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()

	logger.PrintInfo("database connection pool established", nil)

	app := &application{
		config:  cfg,
		logger:  logger,
		models:  data.NewModels(db),
		metrics: newMetrics(),
	}

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// openDB returns a sql.DB connection pool
func openDB(cfg config) (*sql.DB, error) {
	// create an empty connection pool
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	// Set the maximum number of open (in-use + idle) connections in the pool.
	// Note that passing a value less than or equal to 0 will mean there is no limit.
	db.SetMaxOpenConns(cfg.db.maxOpenConns)

	// Set the maximum number of idle connections in the pool. Again, passing a value
	// less than or equal to 0 will mean there is no limit.
	db.SetMaxIdleConns(cfg.db.maxIdleConns)

	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Set the maximum idle timeout
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// establish a new connection to the database. If the connection couldn't be
	// established successfully within the 5 second deadline, then this will return an error
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
