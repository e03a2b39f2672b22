// Package config loads runtime settings for the charlcd tools.
//
// Values are layered, lowest first: built-in defaults, a YAML/TOML/JSON
// config file, CHARLCD_* environment variables (a .env file in the working
// directory is loaded into the environment first), then command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CHARLCD"

// Config holds the display wiring and tool settings.
type Config struct {
	Driver     string `mapstructure:"driver" validate:"oneof=st7032 st7036 pcf8574 debug"`
	Bus        string `mapstructure:"bus"`
	Addr       uint16 `mapstructure:"addr" validate:"omitempty,min=3,max=119"`
	SpeedKHz   int    `mapstructure:"speed_khz" validate:"min=0,max=3400"`
	Columns    int    `mapstructure:"columns" validate:"min=1,max=80"`
	Lines      int    `mapstructure:"lines" validate:"min=1,max=4"`
	RowOffsets []int  `mapstructure:"row_offsets" validate:"omitempty,dive,min=0,max=127"`
	ROM        string `mapstructure:"rom" validate:"oneof=a00 ascii"`
	Contrast   int    `mapstructure:"contrast" validate:"min=0,max=63"`
	Backlight  bool   `mapstructure:"backlight"`
	Trace      bool   `mapstructure:"trace"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=console json"`

	// Home holds the glyph library.
	Home string `mapstructure:"home"`

	Meter MeterConfig `mapstructure:"meter"`
}

// MeterConfig configures bhtmeter.
type MeterConfig struct {
	Schedule string         `mapstructure:"schedule" validate:"required"`
	Sources  []SourceConfig `mapstructure:"sources" validate:"dive"`
}

// SourceConfig is one sensor value shown by bhtmeter.
type SourceConfig struct {
	Label     string  `mapstructure:"label" validate:"required,max=20"`
	Path      string  `mapstructure:"path" validate:"required"`
	Scale     float64 `mapstructure:"scale"`
	Unit      string  `mapstructure:"unit"`
	Precision int     `mapstructure:"precision" validate:"min=0,max=6"`
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"driver":     "driver",
	"bus":        "bus",
	"addr":       "addr",
	"speed":      "speed_khz",
	"columns":    "columns",
	"lines":      "lines",
	"rom":        "rom",
	"trace":      "trace",
	"log-level":  "log_level",
	"log-format": "log_format",
	"home":       "home",
	"schedule":   "meter.schedule",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("driver", "st7032")
	v.SetDefault("bus", "")
	v.SetDefault("addr", 0)
	v.SetDefault("speed_khz", 0)
	v.SetDefault("columns", 16)
	v.SetDefault("lines", 2)
	v.SetDefault("row_offsets", []int{})
	v.SetDefault("rom", "a00")
	v.SetDefault("contrast", 0x23)
	v.SetDefault("backlight", true)
	v.SetDefault("trace", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("home", defaultHome())
	v.SetDefault("meter.schedule", "@every 5s")
	v.SetDefault("meter.sources", []map[string]any{})
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".charlcd"
	}
	return filepath.Join(dir, ".charlcd")
}

// Load reads configuration. path names an explicit config file; when empty
// "charlcd.{yaml,toml,json}" is looked up in the working directory and the
// default home. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("charlcd")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultHome())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}
	cfg.Driver = strings.ToLower(cfg.Driver)
	cfg.ROM = strings.ToLower(cfg.ROM)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	for i := range cfg.Meter.Sources {
		if cfg.Meter.Sources[i].Scale == 0 {
			cfg.Meter.Sources[i].Scale = 1
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and that enough row offsets are configured.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid configuration: %s", FormatValidationErrors(ve))
		}
		return err
	}
	if c.Lines >= 2 && c.Columns > 40 {
		return fmt.Errorf("invalid configuration: %d columns on %d lines, at most 40 with more than one line", c.Columns, c.Lines)
	}
	if len(c.RowOffsets) > 0 && len(c.RowOffsets) < c.Lines {
		return fmt.Errorf("invalid configuration: %d row_offsets for %d lines", len(c.RowOffsets), c.Lines)
	}
	return nil
}

// FormatValidationErrors renders validator errors as "field: rule" pairs.
func FormatValidationErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: %s (got %v)", fe.Namespace(), rule, fe.Value()))
	}
	return strings.Join(parts, "; ")
}

// RowOffsetBytes returns the configured DDRAM row offsets, or nil when the
// library default should be used.
func (c *Config) RowOffsetBytes() []byte {
	if len(c.RowOffsets) == 0 {
		return nil
	}
	out := make([]byte, len(c.RowOffsets))
	for i, o := range c.RowOffsets {
		out[i] = byte(o)
	}
	return out
}
