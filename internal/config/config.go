package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultCountries mirrors the country list the analysis was first run against.
var DefaultCountries = []string{
	"Canada", "Japan", "Germany", "Switzerland", "Australia",
	"United States", "New Zealand", "United Kingdom", "Sweden", "Netherlands",
}

// Global configuration structure.
type Global struct {
	// Input datasets
	PersonalityFile string   `mapstructure:"personality_file" yaml:"personality_file"`
	GNIFile         string   `mapstructure:"gni_file" yaml:"gni_file"`
	Sheet           string   `mapstructure:"sheet" yaml:"sheet,omitempty"`
	Countries       []string `mapstructure:"countries" yaml:"countries"`
	MatchMode       string   `mapstructure:"match_mode" yaml:"match_mode"`

	// Chart output
	ChartsDir    string `mapstructure:"charts_dir" yaml:"charts_dir"`
	GNIChartFile string `mapstructure:"gni_chart_file" yaml:"gni_chart_file"`
	RenderCharts bool   `mapstructure:"render_charts" yaml:"render_charts"`
	// Chart size in inches.
	ChartWidth  float64 `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight float64 `mapstructure:"chart_height" yaml:"chart_height"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".personagni"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.personagni/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PERSONAGNI")
	v.AutomaticEnv()

	v.SetDefault("personality_file", "country_personality_types.csv")
	v.SetDefault("gni_file", "GNI_per_capita.csv")
	v.SetDefault("sheet", "")
	v.SetDefault("countries", DefaultCountries)
	v.SetDefault("match_mode", "exact")
	v.SetDefault("charts_dir", "charts")
	v.SetDefault("gni_chart_file", "1.png")
	v.SetDefault("render_charts", true)
	v.SetDefault("chart_width", 10.0)
	v.SetDefault("chart_height", 6.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// A missing file is created on the next Save; anything else is fatal.
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Countries = cleanList(c.Countries)
	return &c, nil
}

// Set assigns one key from its string form, validating the value.
func (c *Global) Set(key, val string) error {
	switch key {
	case "personality_file":
		c.PersonalityFile = val
	case "gni_file":
		c.GNIFile = val
	case "sheet":
		c.Sheet = val
	case "countries":
		list := cleanList(strings.Split(val, ","))
		if len(list) == 0 {
			return fmt.Errorf("invalid countries: %q (comma-separated list required)", val)
		}
		c.Countries = list
	case "match_mode":
		switch m := strings.ToLower(strings.TrimSpace(val)); m {
		case "exact", "substring":
			c.MatchMode = m
		default:
			return fmt.Errorf("invalid match_mode: %s (use exact or substring)", val)
		}
	case "charts_dir":
		c.ChartsDir = val
	case "gni_chart_file":
		if val == "" {
			return fmt.Errorf("invalid gni_chart_file: empty")
		}
		c.GNIChartFile = val
	case "render_charts":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for render_charts: %w", err)
		}
		c.RenderCharts = b
	case "chart_width", "chart_height":
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || !(f > 0) || math.IsInf(f, 0) {
			return fmt.Errorf("invalid %s: %q (positive number of inches required)", key, val)
		}
		if key == "chart_width" {
			c.ChartWidth = f
		} else {
			c.ChartHeight = f
		}
	case "log_level":
		switch l := strings.ToLower(strings.TrimSpace(val)); l {
		case "debug", "info", "warn", "error":
			c.LogLevel = l
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	case "log_format":
		switch f := strings.ToLower(strings.TrimSpace(val)); f {
		case "text", "json":
			c.LogFormat = f
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
