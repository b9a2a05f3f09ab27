package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config represents the complete converter configuration.
// Configuration can be loaded from a YAML file or a JSON file with comments.
type Config struct {
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	Frames    FramesConfig    `json:"frames" yaml:"frames"`
	Obstacles ObstaclesConfig `json:"obstacles" yaml:"obstacles"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: "info")
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json" (default: "text")
	Format string `json:"format" yaml:"format"`
}

// FramesConfig names the reference frames records are stamped with.
type FramesConfig struct {
	// Mission is the frame for mission records (default: "map")
	Mission string `json:"mission" yaml:"mission"`

	// Obstacles is the frame for obstacle records (default: "odom")
	Obstacles string `json:"obstacles" yaml:"obstacles"`
}

// ObstaclesConfig contains obstacle conversion settings.
type ObstaclesConfig struct {
	// LifetimeSeconds is how long consumers keep an obstacle report
	// before expecting a fresher one (default: 0.1)
	LifetimeSeconds float64 `json:"lifetime_seconds" yaml:"lifetime_seconds"`

	// ProjectPlanar attaches a UTM projection to every obstacle center
	ProjectPlanar bool `json:"project_planar" yaml:"project_planar"`
}

// OutputConfig controls how converted records are written.
type OutputConfig struct {
	// Format is json, cbor or summary (default: "json")
	Format string `json:"format" yaml:"format"`

	// Compression is none or zstd (default: "none")
	Compression string `json:"compression" yaml:"compression"`
}

// MetricsConfig controls conversion metrics.
type MetricsConfig struct {
	// Enabled turns on metric collection
	Enabled bool `json:"enabled" yaml:"enabled"`

	// File receives the text exposition when the run finishes.
	// Setting it implies Enabled.
	File string `json:"file" yaml:"file"`
}

// maxLifetimeSeconds is the longest lifetime a time.Duration can hold.
const maxLifetimeSeconds = float64(math.MaxInt64 / int64(time.Second))

var (
	validLevels       = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats   = []string{"text", "json"}
	validFormats      = []string{"json", "cbor", "summary"}
	validCompressions = []string{"none", "zstd"}
)

// Load reads configuration from a file.
// If the file doesn't exist, returns a default configuration.
// Files ending in .yaml or .yml are YAML; anything else is JSON, which may
// carry comments and trailing commas.
func Load(path string) (*Config, error) {
	// Start from defaults so omitted keys keep their default values
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.parse(path, data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parse(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return nil
}

// Save writes the configuration to a file, as YAML when the path ends in
// .yaml or .yml and as indented JSON otherwise.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Frames: FramesConfig{
			Mission:   "map",
			Obstacles: "odom",
		},
		Obstacles: ObstaclesConfig{
			LifetimeSeconds: 0.1,
			ProjectPlanar:   false,
		},
		Output: OutputConfig{
			Format:      "json",
			Compression: "none",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate checks that every enumerated setting holds a known value.
func (c *Config) Validate() error {
	if !oneOf(strings.ToLower(c.Logging.Level), validLevels) {
		return fmt.Errorf("invalid logging.level %q (want one of %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}
	if !oneOf(c.Logging.Format, validLogFormats) {
		return fmt.Errorf("invalid logging.format %q (want one of %s)", c.Logging.Format, strings.Join(validLogFormats, ", "))
	}
	if !oneOf(c.Output.Format, validFormats) {
		return fmt.Errorf("invalid output.format %q (want one of %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}
	if !oneOf(c.Output.Compression, validCompressions) {
		return fmt.Errorf("invalid output.compression %q (want one of %s)", c.Output.Compression, strings.Join(validCompressions, ", "))
	}
	if lifetime := c.Obstacles.LifetimeSeconds; math.IsNaN(lifetime) || lifetime < 0 || lifetime > maxLifetimeSeconds {
		return fmt.Errorf("invalid obstacles.lifetime_seconds %v: must be between 0 and %.0f", lifetime, maxLifetimeSeconds)
	}
	if c.Frames.Mission == "" || c.Frames.Obstacles == "" {
		return fmt.Errorf("frames.mission and frames.obstacles must not be empty")
	}
	return nil
}

// ObstacleLifetime returns the configured obstacle lifetime as a duration.
func (c *ObstaclesConfig) ObstacleLifetime() time.Duration {
	return time.Duration(c.LifetimeSeconds * float64(time.Second))
}

// MetricsEnabled reports whether conversion metrics should be collected.
func (c *MetricsConfig) MetricsEnabled() bool {
	return c.Enabled || c.File != ""
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if level := os.Getenv("INTEROP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("INTEROP_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if frame := os.Getenv("INTEROP_MISSION_FRAME"); frame != "" {
		c.Frames.Mission = frame
	}
	if frame := os.Getenv("INTEROP_OBSTACLES_FRAME"); frame != "" {
		c.Frames.Obstacles = frame
	}
	if lifetime := os.Getenv("INTEROP_OBSTACLE_LIFETIME"); lifetime != "" {
		if v, err := strconv.ParseFloat(lifetime, 64); err == nil {
			c.Obstacles.LifetimeSeconds = v
		}
	}
	if planar := os.Getenv("INTEROP_PROJECT_PLANAR"); planar != "" {
		if v, err := strconv.ParseBool(planar); err == nil {
			c.Obstacles.ProjectPlanar = v
		}
	}
	if format := os.Getenv("INTEROP_OUTPUT_FORMAT"); format != "" {
		c.Output.Format = format
	}
	if compression := os.Getenv("INTEROP_OUTPUT_COMPRESSION"); compression != "" {
		c.Output.Compression = compression
	}
	if file := os.Getenv("INTEROP_METRICS_FILE"); file != "" {
		c.Metrics.File = file
	}
}
