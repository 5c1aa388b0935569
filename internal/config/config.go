package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresSSLMode  string `toml:"postgres_ssl_mode"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	MigrateOnStart   bool   `toml:"migrate_on_start"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// api
	AllowedOrigins           []string `toml:"allowed_origins"`
	WriteRateLimitPerMin     int      `toml:"write_rate_limit_per_min"`
	E1RMCacheSizeMB          int      `toml:"e1rm_cache_size_mb"`
	E1RMCacheTTLSeconds      int      `toml:"e1rm_cache_ttl_seconds"`
	IdentityProviderIssuer   string   `toml:"idp_issuer"`
	IdentityProviderAudience string   `toml:"idp_audience"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.WriteRateLimitPerMin <= 0 {
		c.WriteRateLimitPerMin = 120
	}
	if c.E1RMCacheSizeMB <= 0 {
		c.E1RMCacheSizeMB = 16
	}
	if c.E1RMCacheTTLSeconds <= 0 {
		c.E1RMCacheTTLSeconds = 300
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

// Secrets never live in the TOML file.
type Secrets struct {
	IdentityProviderSecret string `env:"LIFTLOG_IDP_SECRET"`
	PostgresPassword       string `env:"LIFTLOG_POSTGRES_PASS"`
	RedisPassword          string `env:"LIFTLOG_REDIS_PASS"`
	SentryDSN              string `env:"SENTRY_DSN"`
	HoneycombEnabled       bool   `env:"HONEYCOMB_ENABLED, default=false"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process(ctx, &s); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}

func LoadSecretsFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}
