package config

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the optional env files and resolves the App configuration from
// the process environment. Missing required values (JWT secret, database
// URL) fail loading.
func Load(logger *slog.Logger, envFiles ...string) (*App, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug("no env file loaded, relying on process environment", "error", err)
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("config loaded",
		"env", cfg.Env,
		"server", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_url", maskValue(cfg.DB.Url),
		"jwt_secret", maskValue(cfg.Jwt.Secret),
	)
	return &cfg, nil
}

// maskValue keeps a short prefix for recognizability and hides the rest.
func maskValue(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", 8)
}
