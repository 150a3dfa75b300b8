package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDuration  = 10 * time.Minute
	defaultIntensity = 0.5
	defaultTheme     = "ocean"
	defaultLogLevel  = "info"
)

type Config struct {
	DataPath    string
	DBPath      string
	JournalPath string
	SoundsPath  string
	PluginsPath string
	LogPath     string
	ConfigPath  string

	DefaultDuration  time.Duration
	DefaultIntensity float64
	DefaultTheme     string
	AudioEnabled     bool
	HapticsPlugin    string
	LogLevel         string
}

// fileConfig mirrors config.yaml; pointer fields distinguish "unset" from zero.
type fileConfig struct {
	DefaultDuration  string   `yaml:"default_duration"`
	DefaultIntensity *float64 `yaml:"default_intensity"`
	DefaultTheme     string   `yaml:"default_theme"`
	AudioEnabled     *bool    `yaml:"audio_enabled"`
	HapticsPlugin    string   `yaml:"haptics_plugin"`
	LogLevel         string   `yaml:"log_level"`
}

// New derives every path from the data directory and applies defaults.
func New(dataPath string) (Config, error) {
	if strings.TrimSpace(dataPath) == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	return Config{
		DataPath:         dataPath,
		DBPath:           filepath.Join(dataPath, "serene.db"),
		JournalPath:      filepath.Join(dataPath, "journal"),
		SoundsPath:       filepath.Join(dataPath, "sounds"),
		PluginsPath:      filepath.Join(dataPath, "plugins"),
		LogPath:          filepath.Join(dataPath, "serene.log"),
		ConfigPath:       filepath.Join(dataPath, "config.yaml"),
		DefaultDuration:  defaultDuration,
		DefaultIntensity: defaultIntensity,
		DefaultTheme:     defaultTheme,
		AudioEnabled:     true,
		LogLevel:         defaultLogLevel,
	}, nil
}

// Load builds the default config for dataPath and overlays config.yaml when
// it exists. Invalid values are reported together by key.
func Load(dataPath string) (Config, error) {
	cfg, err := New(dataPath)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.apply(file); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(file fileConfig) error {
	invalid := make([]string, 0, 3)

	if v := strings.TrimSpace(file.DefaultDuration); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, "default_duration")
		} else {
			c.DefaultDuration = d
		}
	}
	if file.DefaultIntensity != nil {
		v := *file.DefaultIntensity
		if v < 0 || v > 1 {
			invalid = append(invalid, "default_intensity")
		} else {
			c.DefaultIntensity = v
		}
	}
	if v := strings.TrimSpace(file.DefaultTheme); v != "" {
		c.DefaultTheme = v
	}
	if file.AudioEnabled != nil {
		c.AudioEnabled = *file.AudioEnabled
	}
	if v := strings.TrimSpace(file.HapticsPlugin); v != "" {
		c.HapticsPlugin = v
	}
	if v := strings.ToLower(strings.TrimSpace(file.LogLevel)); v != "" {
		switch v {
		case "trace", "debug", "info", "warn", "error", "off":
			c.LogLevel = v
		default:
			invalid = append(invalid, "log_level")
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid config values: %s", strings.Join(invalid, ", "))
	}
	return nil
}
