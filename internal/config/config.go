package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/tidewire/tidewire/internal/models"
	srvErrors "github.com/tidewire/tidewire/pkg/errors"
)

const EnvPrefix = "TIDEWIRE"

type Configuration struct {
	Server    Server     `mapstructure:"server"`
	Store     Store      `mapstructure:"store"`
	Executors []Executor `mapstructure:"executors" default:"[{\"name\":\"wheel\",\"workers\":1},{\"name\":\"journal\",\"workers\":2,\"queue-size\":1024}]"`
	TimeWheel TimeWheel  `mapstructure:"timewheel"`
	Journal   Journal    `mapstructure:"journal"`
	LogFormat string     `mapstructure:"log-format" default:"console"`
	LogLevel  string     `mapstructure:"log-level" default:"info"`
}

type Server struct {
	Enabled    bool   `mapstructure:"enabled"`
	ServerMode string `mapstructure:"mode" default:"dev"`
	HTTPPort   int    `mapstructure:"http-port" default:"8000"`
}

type Store struct {
	Path string `mapstructure:"path" default:":memory:"`
}

// Executor describes a named goroutine pool.
type Executor struct {
	Name      string `mapstructure:"name" json:"name"`
	Workers   int    `mapstructure:"workers" json:"workers" default:"1"`
	QueueSize int    `mapstructure:"queue-size" json:"queue-size"`
}

type TimeWheel struct {
	Name     string   `mapstructure:"name" default:"main"`
	Executor string   `mapstructure:"executor" default:"wheel"`
	Workers  []Worker `mapstructure:"workers" default:"[{\"name\":\"heartbeat\",\"kind\":\"heartbeat\",\"period\":1000000000}]"`
}

// Worker describes one periodic job of the time wheel. Period 0 runs it once.
type Worker struct {
	Name   string        `mapstructure:"name" json:"name"`
	Kind   string        `mapstructure:"kind" json:"kind" default:"heartbeat"`
	Period time.Duration `mapstructure:"period" json:"period"`
	// Work is how long a sleep worker keeps busy on every run.
	Work time.Duration `mapstructure:"work" json:"work"`
}

type Journal struct {
	Enabled   bool          `mapstructure:"enabled"`
	Executor  string        `mapstructure:"executor" default:"journal"`
	Retention time.Duration `mapstructure:"retention" default:"24h"`
}

// NewConfigurationWithDefaults returns a Configuration populated from the
// default struct tags.
func NewConfigurationWithDefaults() (*Configuration, error) {
	cfg := &Configuration{
		Server:  Server{Enabled: true},
		Journal: Journal{Enabled: true},
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterFlags adds the command line flags that override configuration keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to the configuration file")
	fs.String("log-format", "console", "log format: console or json")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Int("http-port", 8000, "status API listen port")
	fs.String("server-mode", "dev", "server mode: dev or prod")
	fs.String("store-path", ":memory:", "path of the DuckDB run journal")
}

// BindFlags maps flags registered by RegisterFlags onto configuration keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"config":           "config",
		"log-format":       "log-format",
		"log-level":        "log-level",
		"server.http-port": "http-port",
		"server.mode":      "server-mode",
		"store.path":       "store-path",
	}
	for key, flag := range bindings {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the configuration file named by the "config" key, if any, then
// environment variables prefixed with TIDEWIRE_ and bound flags. Fields left
// unset get their defaults and the result is validated.
func Load(v *viper.Viper) (*Configuration, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("server.enabled", true)
	v.SetDefault("journal.enabled", true)

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
	}

	cfg := &Configuration{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply configuration defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) Executor(name string) (Executor, bool) {
	for _, e := range c.Executors {
		if e.Name == name {
			return e, true
		}
	}
	return Executor{}, false
}

func (c *Configuration) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return srvErrors.NewInvalidConfigurationError("log-format", fmt.Sprintf("unsupported format %q", c.LogFormat))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return srvErrors.NewInvalidConfigurationError("log-level", err.Error())
	}

	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		return srvErrors.NewInvalidConfigurationError("server.mode", fmt.Sprintf("unsupported mode %q", c.Server.ServerMode))
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return srvErrors.NewInvalidConfigurationError("server.http-port", fmt.Sprintf("port %d out of range", c.Server.HTTPPort))
	}

	seen := make(map[string]bool)
	for i, e := range c.Executors {
		field := fmt.Sprintf("executors[%d]", i)
		if e.Name == "" {
			return srvErrors.NewInvalidConfigurationError(field+".name", "must not be empty")
		}
		if seen[e.Name] {
			return srvErrors.NewInvalidConfigurationError(field+".name", fmt.Sprintf("duplicate executor %q", e.Name))
		}
		seen[e.Name] = true
		if e.Workers < 1 {
			return srvErrors.NewInvalidConfigurationError(field+".workers", "must be at least 1")
		}
		if e.QueueSize < 0 {
			return srvErrors.NewInvalidConfigurationError(field+".queue-size", "must not be negative")
		}
	}

	if !seen[c.TimeWheel.Executor] {
		return srvErrors.NewInvalidConfigurationError("timewheel.executor", fmt.Sprintf("unknown executor %q", c.TimeWheel.Executor))
	}
	if c.Journal.Enabled && !seen[c.Journal.Executor] {
		return srvErrors.NewInvalidConfigurationError("journal.executor", fmt.Sprintf("unknown executor %q", c.Journal.Executor))
	}

	workers := make(map[string]bool)
	for i, w := range c.TimeWheel.Workers {
		field := fmt.Sprintf("timewheel.workers[%d]", i)
		if w.Name == "" {
			return srvErrors.NewInvalidConfigurationError(field+".name", "must not be empty")
		}
		if workers[w.Name] {
			return srvErrors.NewInvalidConfigurationError(field+".name", fmt.Sprintf("duplicate worker %q", w.Name))
		}
		workers[w.Name] = true
		if w.Period < 0 {
			return srvErrors.NewInvalidConfigurationError(field+".period", "must not be negative")
		}
		kind, err := models.ParseWorkerKind(w.Kind)
		if err != nil {
			return srvErrors.NewInvalidConfigurationError(field+".kind", err.Error())
		}
		if kind == models.WorkerKindPrune && !c.Journal.Enabled {
			return srvErrors.NewInvalidConfigurationError(field+".kind", "prune workers need the journal")
		}
	}

	return nil
}
