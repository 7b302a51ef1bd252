// Package config loads application configuration from the environment.
// Secrets have no fallback values: a missing JWT secret or database URL is
// a startup error, never a silent default.
package config

import "time"

// DB holds database connection settings.
type DB struct {
	Url string `envconfig:"URL" required:"true"`
}

// Jwt holds token signing settings. The secret is required.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// RateLimit bounds request rates at the HTTP edge.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Log configures the structured logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[norrbok]"`
}

// Server configures the HTTP listener.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// App is the root configuration.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
