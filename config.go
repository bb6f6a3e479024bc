package glyphforge

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Foreground colors the PNG variants are rendered with, matching the
// Breeze light and dark text colors.
const (
	ForegroundLight = "#232629"
	ForegroundDark  = "#eff0f1"
)

// Config collects the build settings that are not per-invocation flags.
// A project usually checks one in next to the mapping table.
type Config struct {
	// Theme metadata written into the descriptor.
	Name     string `toml:"name"`
	Comment  string `toml:"comment"`
	Inherits string `toml:"inherits"`
	Example  string `toml:"example"`

	// Sizes are the pixel sizes to rasterize at.
	Sizes []int `toml:"sizes"`

	// Foreground overrides the theme color preset.
	Foreground string `toml:"foreground"`

	// Require lists target names on top of the built-in required set.
	Require []string `toml:"require"`

	// Optimize toggles the PNG optimizer pass.
	Optimize bool `toml:"optimize"`

	Tools ToolConfig `toml:"tools"`
}

// ToolConfig names the external binaries, overridable for odd installs.
type ToolConfig struct {
	Normalize string `toml:"normalize"`
	Rasterize string `toml:"rasterize"`
	Optimize  string `toml:"optimize"`
}

// DefaultConfig returns the settings used when no config file is given.
// The variant selects the foreground preset.
func DefaultConfig(variant string) *Config {
	fg := ForegroundLight
	if variant == "dark" {
		fg = ForegroundDark
	}
	return &Config{
		Name:       "Material Symbols (" + titleVariant(variant) + ")",
		Comment:    "Material Design glyphs adapted for KDE Plasma.",
		Inherits:   "breeze",
		Example:    "folder",
		Sizes:      DefaultSizes,
		Foreground: fg,
		Optimize:   true,
		Tools: ToolConfig{
			Normalize: DefaultNormalizeCommand,
			Rasterize: DefaultRasterCommand,
			Optimize:  DefaultOptimizeCommand,
		},
	}
}

// LoadConfig reads a TOML config file and fills the unset fields with
// the defaults for the given variant.
func LoadConfig(path, variant string) (*Config, error) {
	cfg := DefaultConfig(variant)
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(err, "unable to read the build config")
	}
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = DefaultSizes
	}
	return cfg, nil
}

// Required returns the full required name set for the coverage gate.
func (c *Config) Required() []string {
	if len(c.Require) == 0 {
		return RequiredNames
	}
	req := make([]string, 0, len(RequiredNames)+len(c.Require))
	req = append(req, RequiredNames...)
	req = append(req, c.Require...)
	return req
}

func titleVariant(v string) string {
	switch v {
	case "dark":
		return "Dark"
	default:
		return "Light"
	}
}
