package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds configuration for the navigation server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080").
	Address string

	// ReadHeaderTimeout bounds the time to read request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout is the graceful shutdown window.
	// Default: 15 seconds.
	ShutdownTimeout time.Duration

	// StaticDir is served under /assets/ when set.
	StaticDir string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096.
	ReadBufferSize  int
	WriteBufferSize int

	// MaxMessageSize is the largest navigation frame accepted from a client.
	// Default: 4KB.
	MaxMessageSize int64

	// WriteTimeout bounds each WebSocket write.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// AllowedOrigins lists origins allowed to open a navigation stream.
	// Empty means same-origin only.
	AllowedOrigins []string

	// Logger is the base logger. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   15 * time.Second,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    4 * 1024,
		WriteTimeout:      10 * time.Second,
	}
}

// checkOrigin returns the origin policy for the WebSocket upgrader.
func (c *Config) checkOrigin() func(r *http.Request) bool {
	if len(c.AllowedOrigins) == 0 {
		return SameOriginCheck
	}
	allowed := make(map[string]bool, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return allowed["*"] || allowed[origin] || SameOriginCheck(r)
	}
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., curl)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}
