package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
)

const (
	DefaultIconThreshold = "50KB"
	DefaultWorkers       = 4
	DefaultLogLevel      = "warn"
	DefaultOutputDir     = "converted"
	ConfigFileName       = "config.toml"
	HistoryFileName      = "history.yaml"

	// HomeEnv overrides the stylemig base directory
	HomeEnv = "STYLEMIG_HOME"
)

// ConfigFile represents the TOML config file structure
type ConfigFile struct {
	OutputDir     string `toml:"output_dir,omitempty"`
	TemplateDir   string `toml:"template_dir,omitempty"`
	RulesFile     string `toml:"rules_file,omitempty"`
	IconThreshold string `toml:"icon_threshold,omitempty"`
	Workers       int    `toml:"workers,omitempty"`
	LogLevel      string `toml:"log_level,omitempty"`
	Zip           bool   `toml:"zip,omitempty"`
}

// Config holds the runtime configuration
type Config struct {
	ConfigDir   string
	ConfigPath  string
	HistoryPath string

	OutputDir   string
	TemplateDir string // Optional directory of template bundles overriding the embedded ones
	RulesFile   string // Optional YAML stylesheet rules replacing the embedded ones
	Workers     int
	LogLevel    string
	Zip         bool

	// IconThreshold is the size below which an image counts as an icon.
	// IconThresholdText keeps the value as written for saving.
	IconThreshold     uint64
	IconThresholdText string
}

// ExpandPath expands ~ to home directory in a path
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// DefaultConfig returns the configuration from ~/.stylemig/config.toml,
// falling back to defaults when the file does not exist.
func DefaultConfig() (*Config, error) {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".stylemig")
	}
	return LoadFrom(dir)
}

// LoadFrom returns the configuration rooted at dir
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{
		ConfigDir:   dir,
		ConfigPath:  filepath.Join(dir, ConfigFileName),
		HistoryPath: filepath.Join(dir, HistoryFileName),
		OutputDir:   DefaultOutputDir,
		Workers:     DefaultWorkers,
		LogLevel:    DefaultLogLevel,
	}
	if err := cfg.SetIconThreshold(DefaultIconThreshold); err != nil {
		return nil, err
	}

	if err := cfg.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return cfg, nil
}

// Load reads the config from disk
func (c *Config) Load() error {
	var cf ConfigFile
	if _, err := toml.DecodeFile(c.ConfigPath, &cf); err != nil {
		return err
	}

	if cf.OutputDir != "" {
		c.OutputDir = cf.OutputDir
	}
	if cf.TemplateDir != "" {
		dir, err := ExpandPath(cf.TemplateDir)
		if err != nil {
			return err
		}
		c.TemplateDir = dir
	}
	if cf.RulesFile != "" {
		path, err := ExpandPath(cf.RulesFile)
		if err != nil {
			return err
		}
		c.RulesFile = path
	}
	if cf.IconThreshold != "" {
		if err := c.SetIconThreshold(cf.IconThreshold); err != nil {
			return err
		}
	}
	if cf.Workers > 0 {
		c.Workers = cf.Workers
	}
	if cf.LogLevel != "" {
		c.LogLevel = cf.LogLevel
	}
	c.Zip = cf.Zip

	return nil
}

// SetIconThreshold parses a human size such as "50KB" or "64 KiB"
func (c *Config) SetIconThreshold(size string) error {
	n, err := humanize.ParseBytes(size)
	if err != nil {
		return fmt.Errorf("invalid icon_threshold %q: %w", size, err)
	}
	c.IconThreshold = n
	c.IconThresholdText = size
	return nil
}

// Keys lists the settings accepted by Set
var Keys = []string{"output_dir", "template_dir", "rules_file", "icon_threshold", "workers", "log_level", "zip"}

// Set updates one setting by its config file key
func (c *Config) Set(key, value string) error {
	switch key {
	case "output_dir":
		c.OutputDir = value
	case "template_dir":
		dir, err := ExpandPath(value)
		if err != nil {
			return err
		}
		c.TemplateDir = dir
	case "rules_file":
		path, err := ExpandPath(value)
		if err != nil {
			return err
		}
		c.RulesFile = path
	case "icon_threshold":
		return c.SetIconThreshold(value)
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid workers %q: must be a positive number", value)
		}
		c.Workers = n
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid log_level %q", value)
		}
	case "zip":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid zip %q: %w", value, err)
		}
		c.Zip = b
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	if err := c.EnsureDirs(); err != nil {
		return err
	}

	cf := ConfigFile{
		OutputDir:     c.OutputDir,
		TemplateDir:   c.TemplateDir,
		RulesFile:     c.RulesFile,
		IconThreshold: c.IconThresholdText,
		Workers:       c.Workers,
		LogLevel:      c.LogLevel,
		Zip:           c.Zip,
	}

	f, err := os.Create(c.ConfigPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cf)
}

// EnsureDirs creates the config directory if it doesn't exist
func (c *Config) EnsureDirs() error {
	return os.MkdirAll(c.ConfigDir, 0755)
}
