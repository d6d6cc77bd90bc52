// Package config provides configuration types, defaults, and loading for codewriter.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fivemoreminix/codewriter/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Clipboard methods.
const (
	ClipboardExternal = "external" // The system clipboard, falling back to internal
	ClipboardInternal = "internal" // A clipboard private to the process
)

// Config holds the settings of the editor.
type Config struct {
	TabSize     int               `mapstructure:"tab_size" yaml:"tab_size"`
	HardTabs    bool              `mapstructure:"hard_tabs" yaml:"hard_tabs"`
	LineNumbers bool              `mapstructure:"line_numbers" yaml:"line_numbers"`
	Clipboard   string            `mapstructure:"clipboard" yaml:"clipboard"`
	WatchFiles  bool              `mapstructure:"watch_files" yaml:"watch_files"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Colors      map[string]string `mapstructure:"colors" yaml:"colors"` // Syntax name to hex color
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"` // Empty disables logging
	Debug bool   `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		TabSize:     4,
		HardTabs:    false,
		LineNumbers: true,
		Clipboard:   ClipboardExternal,
		WatchFiles:  true,
		Colors: map[string]string{
			buffer.Keyword.String():  "#FF7F50", // coral
			buffer.String.String():   "#98FB98", // pale green
			buffer.Comment.String():  "#808080", // gray
			buffer.Function.String(): "#4682B4", // steel blue
			buffer.Number.String():   "#BDB76B", // dark khaki
			buffer.Builtin.String():  "#FFA07A", // light salmon
			buffer.Column.String():   "#696969",
		},
	}
}

// DefaultPath returns ~/.config/codewriter/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "codewriter", "config.yaml"), nil
}

// SetDefaults registers every default value with v.
func SetDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("tab_size", defaults.TabSize)
	v.SetDefault("hard_tabs", defaults.HardTabs)
	v.SetDefault("line_numbers", defaults.LineNumbers)
	v.SetDefault("clipboard", defaults.Clipboard)
	v.SetDefault("watch_files", defaults.WatchFiles)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.debug", defaults.Log.Debug)
	for name, color := range defaults.Colors {
		v.SetDefault("colors."+name, color)
	}
}

// Load reads the YAML config file at path into a Config. When path is empty,
// config.yaml is looked up in ~/.config/codewriter, and a missing file leaves
// the defaults in place. Values already set on v, like bound flags, take
// precedence over the file. Returns the file used, if any.
func Load(v *viper.Viper, path string) (Config, string, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "codewriter"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.TabSize <= 0 {
		return fmt.Errorf("tab_size must be positive, got %d", c.TabSize)
	}

	switch c.Clipboard {
	case ClipboardExternal, ClipboardInternal:
	default:
		return fmt.Errorf("clipboard must be %q or %q, got %q", ClipboardExternal, ClipboardInternal, c.Clipboard)
	}

	for _, name := range sortedKeys(c.Colors) {
		if _, err := buffer.ParseSyntax(name); err != nil {
			return fmt.Errorf("colors: %w", err)
		}
		if _, err := colorful.Hex(c.Colors[name]); err != nil {
			return fmt.Errorf("colors.%s: invalid hex color %q", name, c.Colors[name])
		}
	}
	return nil
}

// Colorscheme converts the configured colors into a buffer.Colorscheme. Each
// color is the foreground of its Syntax. Invalid entries are skipped.
func (c Config) Colorscheme() buffer.Colorscheme {
	scheme := make(buffer.Colorscheme, len(c.Colors))
	for name, hex := range c.Colors {
		syntax, err := buffer.ParseSyntax(name)
		if err != nil {
			continue
		}
		color, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		r, g, b := color.RGB255()
		scheme[syntax] = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	return scheme
}

// WriteDefault writes the default configuration to path as YAML, creating
// parent directories as needed.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
