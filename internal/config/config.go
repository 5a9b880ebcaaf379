package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/psychat-dev/psychat/internal/errors"
)

const (
	// DefaultFile is the configuration file looked up when none is given.
	DefaultFile = "psychat.toml"

	// DefaultAddress is the default HTTP listen address.
	DefaultAddress = ":8080"

	// DefaultShutdownTimeout is the default graceful shutdown window.
	DefaultShutdownTimeout = "15s"

	// DefaultReadHeaderTimeout is the default HTTP read header timeout.
	DefaultReadHeaderTimeout = "5s"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "psychat"
)

// Environment variable overrides.
const (
	EnvAddress         = "PSYCHAT_ADDRESS"
	EnvShutdownTimeout = "PSYCHAT_SHUTDOWN_TIMEOUT"
	EnvStaticDir       = "PSYCHAT_STATIC_DIR"
	EnvLogLevel        = "PSYCHAT_LOG_LEVEL"
	EnvLogFormat       = "PSYCHAT_LOG_FORMAT"
	EnvMetricsEnabled  = "PSYCHAT_METRICS_ENABLED"
	EnvTracingEnabled  = "PSYCHAT_TRACING_ENABLED"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the complete psychat configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	WebSocket WebSocketConfig `toml:"websocket"`
	Logging   LoggingConfig   `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Tracing   TracingConfig   `toml:"tracing"`

	// path stores the file the config was loaded from.
	path string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080").
	Address string `toml:"address"`

	// ShutdownTimeout is the graceful shutdown window (e.g., "15s").
	ShutdownTimeout string `toml:"shutdown_timeout"`

	// ReadHeaderTimeout bounds the time to read request headers.
	ReadHeaderTimeout string `toml:"read_header_timeout"`

	// StaticDir is the front-end bundle directory served under /assets/.
	// Empty disables static serving.
	StaticDir string `toml:"static_dir"`
}

// WebSocketConfig contains navigation stream settings.
type WebSocketConfig struct {
	ReadBufferSize  int    `toml:"read_buffer_size"`
	WriteBufferSize int    `toml:"write_buffer_size"`
	MaxMessageSize  int64  `toml:"max_message_size"`
	WriteTimeout    string `toml:"write_timeout"`

	// AllowedOrigins lists origins allowed to open a stream.
	// Empty allows same-origin requests only.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   *bool  `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    *bool  `toml:"enabled"`
	TracerName string `toml:"tracer_name"`
}

// New returns a configuration with every default applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from path, applies defaults and environment
// overrides, and validates the result.
// An empty path looks for DefaultFile in the working directory and falls
// back to defaults when it does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("P101").
				WithDetail("Failed to parse " + path).
				WithSuggestion("Check that " + path + " is valid TOML").
				Wrap(err)
		}
		cfg.path = path
	case os.IsNotExist(err) && !explicit:
		// defaults only
	case os.IsNotExist(err):
		return nil, errors.New("P100").
			WithDetail("No configuration file at " + path).
			WithSuggestion("Pass an existing file with --config or omit the flag to use defaults")
	default:
		return nil, errors.New("P101").Wrap(err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from, or "" when only
// defaults and the environment were used.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.ReadHeaderTimeout == "" {
		c.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.WebSocket.ReadBufferSize == 0 {
		c.WebSocket.ReadBufferSize = 4096
	}
	if c.WebSocket.WriteBufferSize == 0 {
		c.WebSocket.WriteBufferSize = 4096
	}
	if c.WebSocket.MaxMessageSize == 0 {
		c.WebSocket.MaxMessageSize = 4096
	}
	if c.WebSocket.WriteTimeout == "" {
		c.WebSocket.WriteTimeout = "10s"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Metrics.Enabled == nil {
		c.Metrics.Enabled = boolPtr(true)
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.Enabled == nil {
		c.Tracing.Enabled = boolPtr(true)
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddress); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.Server.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvStaticDir); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvMetricsEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Metrics.Enabled = boolPtr(b)
		}
	}
	if v := os.Getenv(EnvTracingEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Tracing.Enabled = boolPtr(b)
		}
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"websocket.write_timeout":    c.WebSocket.WriteTimeout,
	} {
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return errors.New("P102").
				WithDetail(name + " must be a duration such as \"10s\", got " + strconv.Quote(value))
		}
	}
	if _, ok := parseLevel(c.Logging.Level); !ok {
		return errors.New("P102").
			WithDetail("logging.level must be one of debug, info, warn, error; got " + strconv.Quote(c.Logging.Level))
	}
	if c.Logging.Format != LogFormatText && c.Logging.Format != LogFormatJSON {
		return errors.New("P102").
			WithDetail("logging.format must be text or json; got " + strconv.Quote(c.Logging.Format))
	}
	if c.WebSocket.ReadBufferSize < 0 || c.WebSocket.WriteBufferSize < 0 || c.WebSocket.MaxMessageSize < 0 {
		return errors.New("P102").WithDetail("websocket sizes must not be negative")
	}
	return nil
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// ReadHeaderTimeoutDuration returns the parsed read header timeout.
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadHeaderTimeout)
	return d
}

// WriteTimeoutDuration returns the parsed WebSocket write timeout.
func (c *WebSocketConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// SlogLevel returns the configured level as a slog.Level.
func (c *LoggingConfig) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Level)
	return level
}

// IsEnabled reports whether metrics are enabled.
func (c *MetricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// IsEnabled reports whether tracing is enabled.
func (c *TracingConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func boolPtr(b bool) *bool {
	return &b
}
