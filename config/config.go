package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration of the service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BaseURL   string     `mapstructure:"base_url"`
	BodyLimit int64      `mapstructure:"body_limit"` // bytes
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// URL builds a postgres:// URL, used by the migration CLI.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// RedisConfig Redis settings. Redis only backs rate limiting.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig session verification and role resolution.
type AuthConfig struct {
	SessionSecret string            `mapstructure:"session_secret"`
	SessionIssuer string            `mapstructure:"session_issuer"`
	SessionTTL    time.Duration     `mapstructure:"session_ttl"`
	SessionCookie string            `mapstructure:"session_cookie"`
	Provider      ProviderConfig    `mapstructure:"provider"`
	RoleCacheTTL  time.Duration     `mapstructure:"role_cache_ttl"` // 0 disables caching
	EnforceRoles  bool              `mapstructure:"enforce_roles"`
	StaticRoles   map[string]string `mapstructure:"static_roles"` // used when no provider is configured
}

// ProviderConfig identity provider backend API.
type ProviderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	SecretKey string        `mapstructure:"secret_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a remote provider is configured. A secret key
// alone selects the provider's default API endpoint.
func (c *ProviderConfig) Enabled() bool {
	return c.BaseURL != "" || c.SecretKey != ""
}

// StorageConfig S3-compatible object storage for uploaded images.
type StorageConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// Enabled reports whether object storage is configured.
func (c *StorageConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// RateLimitConfig per-client limits on mutating requests.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// MetricsConfig prometheus exposition.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.body_limit", 8<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "school")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.session_issuer", "school-proj")
	v.SetDefault("auth.session_ttl", "12h")
	v.SetDefault("auth.session_cookie", "__session")
	v.SetDefault("auth.provider.base_url", "")
	v.SetDefault("auth.provider.secret_key", "")
	v.SetDefault("auth.provider.timeout", "5s")
	v.SetDefault("auth.role_cache_ttl", "0s")
	v.SetDefault("auth.enforce_roles", true)

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "school-images")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.use_ssl", false)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	// Only keys with a default are picked up by Unmarshal, so every
	// env-configurable key needs one above.
	v.SetEnvPrefix("SCHOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("invalid config: auth.session_secret must be set")
	}
	if len(c.Auth.SessionSecret) < 16 {
		return fmt.Errorf("invalid config: auth.session_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid config: rate_limit.requests and rate_limit.window must be positive")
	}
	if c.Auth.Provider.Enabled() && c.Auth.Provider.SecretKey == "" {
		return fmt.Errorf("invalid config: auth.provider.secret_key is required when auth.provider.base_url is set")
	}
	return nil
}
