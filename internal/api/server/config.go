package server

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/semsim/pkg/config/env"
	"github.com/DjordjeVuckovic/semsim/pkg/utils"
)

const DefaultPort = "8080"

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
}

// LoadConfig reads PORT, USE_HTTP2 and CORS_ORIGINS, loading .env first.
func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), ".env"); err != nil {
		slog.Warn("Failed to load .env", "error", err)
	}

	cfg := &Config{
		Port:        DefaultPort,
		UseHttp2:    os.Getenv("USE_HTTP2") == "true",
		CorsOrigins: utils.SplitNonEmpty(os.Getenv("CORS_ORIGINS"), ","),
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithPort returns a copy of the config listening on port.
func (c Config) WithPort(port string) (*Config, error) {
	if err := validatePort(port); err != nil {
		return nil, err
	}
	c.Port = port
	return &c, nil
}

func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port %q: must be a number between 1 and 65535", port)
	}
	return nil
}
