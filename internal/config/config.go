package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var ErrMissingDatastoreURL = errors.New("DATASTORE_URL is required")

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Datastore DatastoreConfig
	Redis     RedisConfig
	CORS      CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatastoreConfig points at the hosted Postgres that owns the members table.
type DatastoreConfig struct {
	URL        string
	ServiceKey string
}

// DSN returns the connection string, using ServiceKey as the password
// when URL does not carry one.
func (c DatastoreConfig) DSN() string {
	if c.ServiceKey == "" {
		return c.URL
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return c.URL
	}
	username := "postgres"
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			return c.URL
		}
		username = u.User.Username()
	}
	u.User = url.UserPassword(username, c.ServiceKey)
	return u.String()
}

// RedisConfig holds Redis configuration. An empty URL disables the
// idempotency store.
type RedisConfig struct {
	URL      string
	Password string
}

// Enabled reports whether a redis URL is configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

var defaultAllowedOrigins = []string{
	"http://localhost:3001",
	"https://your-frontend-url.vercel.app",
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Env:          v.GetString("APP_ENV"),
			ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
		},
		Datastore: DatastoreConfig{
			URL:        strings.TrimSpace(v.GetString("DATASTORE_URL")),
			ServiceKey: strings.TrimSpace(v.GetString("DATASTORE_SERVICE_KEY")),
		},
		Redis: RedisConfig{
			URL:      strings.TrimSpace(v.GetString("REDIS_URL")),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = append([]string(nil), defaultAllowedOrigins...)
	}

	if cfg.Datastore.URL == "" {
		return nil, ErrMissingDatastoreURL
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(defaultAllowedOrigins, ","))
}

func splitList(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
