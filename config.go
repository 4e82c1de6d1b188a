package axiom

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFileName is the TOML file name resolved under the XDG config
// directory.
const configFileName = "axiom.toml"

// Config is the external compositor configuration consumed by the core.
// The CLI surface and any client-protocol plumbing is out of scope. The
// split ratios seed each new workspace's layout data, and the gap flags
// (no_gaps_when_only, smart_gaps, outer_gaps_smart) are read by the gap
// state of every output a Compositor adds a workspace to. default_profile,
// rules_file, frame_throttle_ms, smart_borders and the shadow/blur fields
// are loaded and saved but not read by the core.
type Config struct {
	DefaultSplitRatio  float64 `toml:"default_split_ratio"`
	MinSplitRatio      float64 `toml:"min_split_ratio"`
	MaxSplitRatio      float64 `toml:"max_split_ratio"`
	NoGapsWhenOnly     bool    `toml:"no_gaps_when_only"`
	SmartGaps          bool    `toml:"smart_gaps"`
	SmartBorders       bool    `toml:"smart_borders"`
	OuterGapsSmart     bool    `toml:"outer_gaps_smart"`
	DefaultProfileName string  `toml:"default_profile"`
	RulesFilePath      string  `toml:"rules_file"`
	FrameThrottleMS    int64   `toml:"frame_throttle_ms"`

	ShadowOffsetX float64 `toml:"shadow_offset_x"`
	ShadowOffsetY float64 `toml:"shadow_offset_y"`
	ShadowRadius  int     `toml:"shadow_radius"`
	ShadowOpacity float64 `toml:"shadow_opacity"`

	BlurRadius    int     `toml:"blur_radius"`
	BlurIntensity float64 `toml:"blur_intensity"`
}

// DefaultConfig returns the seed configuration used when no file exists
// yet, matching the gap and effects engines' documented defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultSplitRatio:  0.5,
		MinSplitRatio:      0.1,
		MaxSplitRatio:      0.9,
		NoGapsWhenOnly:     true,
		SmartGaps:          true,
		SmartBorders:       false,
		OuterGapsSmart:     true,
		DefaultProfileName: "default",
		RulesFilePath:      filepath.Join(configDir(), "rules.conf"),
		FrameThrottleMS:    16,
		ShadowOffsetX:      5,
		ShadowOffsetY:      5,
		ShadowRadius:       10,
		ShadowOpacity:      0.5,
		BlurRadius:         15,
		BlurIntensity:      0.7,
	}
}

// LoadConfig reads the TOML config file from the XDG config directory,
// initializing it with DefaultConfig's values if it doesn't exist yet.
func LoadConfig() (*Config, error) {
	dir := configDir()
	if ok, err := exists(dir); err != nil {
		return nil, Wrap(ResourceExhausted, "LoadConfig", err, "stat config dir %s", dir)
	} else if !ok {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, Wrap(ResourceExhausted, "LoadConfig", err, "create config dir %s", dir)
		}
	}

	path := filepath.Join(dir, configFileName)
	if ok, err := exists(path); err != nil {
		return nil, Wrap(ResourceExhausted, "LoadConfig", err, "stat config file %s", path)
	} else if !ok {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, Wrap(ParseError, "LoadConfig", err, "decode config file %s", path)
	}
	return cfg, nil
}

// SaveConfig writes cfg to the XDG config directory as TOML, creating the
// directory if it does not exist.
func SaveConfig(cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return Wrap(ResourceExhausted, "SaveConfig", err, "encode config")
	}
	dir := configDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Wrap(ResourceExhausted, "SaveConfig", err, "create config dir %s", dir)
	}
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Wrap(ResourceExhausted, "SaveConfig", err, "write config file %s", path)
	}
	return nil
}

// configDir resolves the axiom config directory under XDG_CONFIG_HOME,
// falling back to ~/.config.
func configDir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "axiom")
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			return dir
		}
	}
	return fallback
}
