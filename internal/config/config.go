package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	JWTSecret          string
	AppBaseURL         string
	ConsumerKey        string
	ConsumerSecret     string
	Environment        string
	IPNURL             string
	TokenTTL           time.Duration
	ReconcileInterval  time.Duration
	ReconcileBatch     int
	WorkerPoolSize     int
	StatusPollInterval time.Duration
	StatusPollAttempts int
	ShutdownTimeout    time.Duration
}

const (
	EnvironmentSandbox = "sandbox"
	EnvironmentLive    = "live"
)

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultEnvironment        = EnvironmentSandbox
	defaultTokenTTL           = 4 * time.Minute
	defaultReconcileInterval  = 15 * time.Second
	defaultReconcileBatch     = 32
	defaultWorkerPoolSize     = 4
	defaultStatusPollInterval = 3 * time.Second
	defaultStatusPollAttempts = 10
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AppBaseURL:         getString(lookup, "APP_BASE_URL", ""),
		ConsumerKey:        getString(lookup, "PESAPAL_CONSUMER_KEY", ""),
		ConsumerSecret:     getString(lookup, "PESAPAL_CONSUMER_SECRET", ""),
		Environment:        getString(lookup, "PESAPAL_ENVIRONMENT", defaultEnvironment),
		IPNURL:             getString(lookup, "PESAPAL_IPN_URL", ""),
		TokenTTL:           getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ReconcileInterval:  getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:     getInt(lookup, "RECONCILE_BATCH_SIZE", defaultReconcileBatch),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		StatusPollInterval: getDuration(lookup, "STATUS_POLL_INTERVAL", defaultStatusPollInterval),
		StatusPollAttempts: getInt(lookup, "STATUS_POLL_ATTEMPTS", defaultStatusPollAttempts),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		pollIntervalStr      = cfg.StatusPollInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
		tokenTTLStr          = cfg.TokenTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AppBaseURL, "base-url", cfg.AppBaseURL, "Public application base URL")
	fs.StringVar(&cfg.ConsumerKey, "consumer-key", cfg.ConsumerKey, "Payment processor consumer key")
	fs.StringVar(&cfg.ConsumerSecret, "consumer-secret", cfg.ConsumerSecret, "Payment processor consumer secret")
	fs.StringVar(&cfg.Environment, "env", cfg.Environment, "Payment processor environment (sandbox|live)")
	fs.StringVar(&cfg.IPNURL, "ipn-url", cfg.IPNURL, "Registered IPN notification URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconciliation batch")
	fs.IntVar(&cfg.StatusPollAttempts, "poll-attempts", cfg.StatusPollAttempts, "Maximum status poll attempts per request")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconciliation sweeps")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between status poll attempts")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Processor bearer token cache TTL")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.StatusPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.StatusPollInterval <= 0 {
		cfg.StatusPollInterval = defaultStatusPollInterval
	}

	if cfg.StatusPollAttempts <= 0 {
		cfg.StatusPollAttempts = defaultStatusPollAttempts
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return nil, fmt.Errorf("payment processor credentials must be provided")
	}

	if cfg.Environment != EnvironmentSandbox && cfg.Environment != EnvironmentLive {
		return nil, fmt.Errorf("unknown payment environment %q", cfg.Environment)
	}

	if cfg.AppBaseURL == "" {
		return nil, fmt.Errorf("application base URL must be provided")
	}
	cfg.AppBaseURL = strings.TrimRight(cfg.AppBaseURL, "/")

	if cfg.IPNURL == "" {
		cfg.IPNURL = cfg.AppBaseURL + "/api/payments/ipn"
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
