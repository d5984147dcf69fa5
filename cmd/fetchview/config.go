package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".fetchview.yaml"

// Config holds the CLI settings. Values come from defaults, then the config
// file, then explicitly set flags.
type Config struct {
	Dir    string `yaml:"dir"`
	Port   int    `yaml:"port"`
	Open   bool   `yaml:"open"`
	Output string `yaml:"output"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() *Config {
	return &Config{
		Dir:    "./web",
		Port:   8000,
		Open:   true,
		Output: "dist",
	}
}

// LoadConfig reads path over the defaults. An empty path reads
// defaultConfigFile if it exists.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for values the commands cannot use.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Dir == "" {
		return errors.New("dir must not be empty")
	}
	return nil
}

// applyFlags overrides cfg with flags the user set explicitly and with the
// optional app directory argument.
func applyFlags(cmd *cobra.Command, args []string, cfg *Config) error {
	flags := cmd.Flags()
	if flags.Changed("port") {
		port, err := flags.GetInt("port")
		if err != nil {
			return err
		}
		cfg.Port = port
	}
	if flags.Changed("open") {
		open, err := flags.GetBool("open")
		if err != nil {
			return err
		}
		cfg.Open = open
	}
	if flags.Changed("output") {
		out, err := flags.GetString("output")
		if err != nil {
			return err
		}
		cfg.Output = out
	}
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	return cfg.Validate()
}
