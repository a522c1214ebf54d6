package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/scicalc"
)

// Config holds the calculator settings.
type Config struct {
	// AngleMode is degrees, radians, or gradians.
	AngleMode string `toml:"angle_mode" yaml:"angle_mode"`
	// Display is normal, sci, eng, or fix.
	Display string `toml:"display" yaml:"display"`
	// Digits is the digit setting for sci and fix displays.
	Digits int `toml:"digits" yaml:"digits"`
	// Precision is the precision of calculations in bits.
	Precision uint `toml:"precision" yaml:"precision"`
	// History enables the history log.
	History bool `toml:"history" yaml:"history"`
	// Registers are the initial values of registers by name.
	Registers map[string]float64 `toml:"registers" yaml:"registers"`
}

// Format is a configuration file format.
type Format int

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Default returns the settings used when there is no configuration file.
func Default() *Config {
	return &Config{
		AngleMode: "degrees",
		Display:   "normal",
		Precision: 64,
		History:   true,
	}
}

// Load reads a configuration file. The format is chosen by the extension:
// .yaml and .yml are YAML, anything else is TOML. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	cfg, err := Parse(b, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates configuration content.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Locate finds the configuration file to use: the SCICALC_CONFIG environment
// variable, then ./scicalc.toml, then the user config directory. It returns
// the empty string if there is none.
func Locate() string {
	if p := os.Getenv("SCICALC_CONFIG"); p != "" {
		return p
	}
	paths := []string{"./scicalc.toml", "./scicalc.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "scicalc", "config.toml"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadDefault loads the file from Locate, or the defaults if there is none.
func LoadDefault() (*Config, error) {
	p := Locate()
	if p == "" {
		return Default(), nil
	}
	return Load(p)
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Validate checks that every setting has a meaning.
func (c *Config) Validate() error {
	if _, ok := scicalc.ParseAngleMode(c.AngleMode); !ok {
		return fmt.Errorf("invalid angle_mode %q", c.AngleMode)
	}
	if _, ok := scicalc.ParseDisplayFormat(c.Display, c.Digits); !ok {
		return fmt.Errorf("invalid display %q with digits %d", c.Display, c.Digits)
	}
	if c.Precision == 0 || c.Precision > 4096 {
		return fmt.Errorf("precision %d must be between 1 and 4096", c.Precision)
	}
	for name := range c.Registers {
		if _, ok := scicalc.ParseRegister(name); !ok {
			return fmt.Errorf("invalid register %q", name)
		}
	}
	return nil
}

// Mode returns the configured angle mode.
func (c *Config) Mode() scicalc.AngleMode {
	m, _ := scicalc.ParseAngleMode(c.AngleMode)
	return m
}

// DisplayFormat returns the configured display format.
func (c *Config) DisplayFormat() scicalc.DisplayFormat {
	f, _ := scicalc.ParseDisplayFormat(c.Display, c.Digits)
	return f
}

// ContextOptions returns the options to create a calculator context with
// these settings. Registers are set in name order.
func (c *Config) ContextOptions() []scicalc.ContextOption {
	opts := []scicalc.ContextOption{scicalc.Prec(c.Precision), scicalc.Mode(c.Mode())}
	names := make([]string, 0, len(c.Registers))
	for name := range c.Registers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if r, ok := scicalc.ParseRegister(name); ok {
			opts = append(opts, scicalc.SetVar(r, c.Registers[name]))
		}
	}
	return opts
}
