package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/x-hunter/internal/session"
	"github.com/DjordjeVuckovic/x-hunter/internal/transport"
	"github.com/DjordjeVuckovic/x-hunter/pkg/config/env"
)

// Config is the settings shared by the CLI and the API server.
type Config struct {
	Env            string
	LogLevel       slog.Level
	CookiesPath    string
	BearerToken    string
	GuestToken     string
	HTTPTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	MaxRetries     int
}

// Load reads the configuration from the environment, after loading the .env file at
// defaultEnvPath (or ENV_PATH) when there is one.
func Load(defaultEnvPath string) (*Config, error) {
	appEnv := os.Getenv("ENV")
	if err := env.LoadDotEnv(appEnv, defaultEnvPath); err != nil {
		slog.Debug("Continuing with existing environment variables", "error", err)
	}

	cfg := &Config{
		Env:         os.Getenv("ENV"),
		CookiesPath: env.String("COOKIES_PATH", "cookies.json"),
		BearerToken: env.String("X_BEARER_TOKEN", session.DefaultBearerToken),
		GuestToken:  os.Getenv("X_GUEST_TOKEN"),
	}

	level, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	timeout, err := env.Int("HTTP_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %d", timeout)
	}
	cfg.HTTPTimeout = time.Duration(timeout) * time.Second

	if cfg.RateLimitRPS, err = env.Float("RATE_LIMIT_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = env.Int("RATE_LIMIT_BURST", 3); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = env.Int("MAX_RETRIES", 2); err != nil {
		return nil, err
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("MAX_RETRIES must not be negative, got %d", cfg.MaxRetries)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// NewSession loads the exported cookies and builds the session they describe.
func (c *Config) NewSession() (*session.CookieSession, error) {
	cookies, err := session.LoadCookieFile(c.CookiesPath)
	if err != nil {
		return nil, err
	}

	return session.NewCookieSession(cookies,
		session.WithBearerToken(c.BearerToken),
		session.WithGuestToken(c.GuestToken),
	)
}

func (c *Config) NewTransport() *transport.HTTPClient {
	return transport.NewHTTPClient(
		transport.WithTimeout(c.HTTPTimeout),
		transport.WithRateLimit(c.RateLimitRPS, c.RateLimitBurst),
		transport.WithRetries(c.MaxRetries, 0),
	)
}
