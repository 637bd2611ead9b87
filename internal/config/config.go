// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/pinenotectl/internal/dbus"
)

// Default configuration values.
const (
	DefaultBusType      = "system"
	DefaultOutputFormat = "plain"
	DefaultColor        = "auto"
	DefaultLogLevel     = "warn"
)

// Accepted values for the enumerated settings.
var (
	BusTypes      = []string{"system", "session"}
	OutputFormats = []string{"plain", "json", "yaml", "table"}
	ColorModes    = []string{"auto", "always", "never"}
)

// Config represents the pinenotectl configuration.
type Config struct {
	Bus     BusConfig     `toml:"bus"`
	Service ServiceConfig `toml:"service"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
}

// BusConfig selects the message bus.
type BusConfig struct {
	Type    string `toml:"type"`    // system, session
	Address string `toml:"address"` // Explicit address, overrides type
}

// ServiceConfig names the remote objects.
type ServiceConfig struct {
	Name          string `toml:"name"`
	EBCPath       string `toml:"ebc_path"`
	EBCInterface  string `toml:"ebc_interface"`
	MiscPath      string `toml:"misc_path"`
	MiscInterface string `toml:"misc_interface"`
}

// OutputConfig holds output options.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json, yaml, table
	Color  string `toml:"color"`  // auto, always, never
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	names := dbus.DefaultServiceNames()
	return &Config{
		Bus: BusConfig{
			Type: DefaultBusType,
		},
		Service: ServiceConfig{
			Name:          names.Name,
			EBCPath:       string(names.EBCPath),
			EBCInterface:  names.EBCInterface,
			MiscPath:      string(names.MiscPath),
			MiscInterface: names.MiscInterface,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Color:  DefaultColor,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pinenotectl", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings and that no name is empty.
func (c *Config) Validate() error {
	if !slices.Contains(BusTypes, c.Bus.Type) {
		return fmt.Errorf("bus.type %q must be one of %v", c.Bus.Type, BusTypes)
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("output.format %q must be one of %v", c.Output.Format, OutputFormats)
	}
	if !slices.Contains(ColorModes, c.Output.Color) {
		return fmt.Errorf("output.color %q must be one of %v", c.Output.Color, ColorModes)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	fields := []struct {
		key, value string
	}{
		{"service.name", c.Service.Name},
		{"service.ebc_path", c.Service.EBCPath},
		{"service.ebc_interface", c.Service.EBCInterface},
		{"service.misc_path", c.Service.MiscPath},
		{"service.misc_interface", c.Service.MiscInterface},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%s must not be empty", f.key)
		}
	}

	for _, p := range []string{c.Service.EBCPath, c.Service.MiscPath} {
		if !dbus.ObjectPath(p).IsValid() {
			return fmt.Errorf("%q is not a valid object path", p)
		}
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// BusOptions converts the bus section for dbus.Open.
func (c *Config) BusOptions() dbus.Options {
	return dbus.Options{
		Type:    dbus.BusType(c.Bus.Type),
		Address: c.Bus.Address,
	}
}

// ServiceNames converts the service section for the proxies.
func (c *Config) ServiceNames() dbus.ServiceNames {
	return dbus.ServiceNames{
		Name:          c.Service.Name,
		EBCPath:       dbus.ObjectPath(c.Service.EBCPath),
		EBCInterface:  c.Service.EBCInterface,
		MiscPath:      dbus.ObjectPath(c.Service.MiscPath),
		MiscInterface: c.Service.MiscInterface,
	}
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
