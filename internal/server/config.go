package server

import (
	"os"
	"strings"
	"time"

	"github.com/quizsmith/quizsmith/internal/mathseg"
)

// Config holds HTTP server settings.
type Config struct {
	// Addr is the listen address. Default ":8000".
	Addr string

	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// MaxBodyBytes caps request bodies. Default 1 MiB.
	MaxBodyBytes int64

	// ErrorColor is passed to the math renderer for failed units.
	ErrorColor string

	// Version is reported by the health endpoint.
	Version string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8000",
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxBodyBytes:      1 << 20,
		ErrorColor:        mathseg.DefaultErrorColor,
		Version:           "dev",
	}
}

// ConfigFromEnv reads QUIZSMITH_ADDR, falling back to PORT.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Addr = ":" + port
	}
	if addr := strings.TrimSpace(os.Getenv("QUIZSMITH_ADDR")); addr != "" {
		cfg.Addr = addr
	}
	return cfg
}
