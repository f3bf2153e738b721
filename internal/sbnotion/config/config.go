package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "NOTIONGEN"

	// ConfigFileName is the name of the config file
	ConfigFileName = "config"
	// ConfigFileType is the type of the config file
	ConfigFileType = "toml"

	// DefaultOutputDir is where generated types land when unconfigured
	DefaultOutputDir = "generated"
)

// Config holds the application configuration
type Config struct {
	Token     string `mapstructure:"token"`
	OutputDir string `mapstructure:"output_dir"`
}

// Load loads configuration from environment variables and config file.
// NOTIONGEN_TOKEN wins over NOTION_API_KEY, which wins over the config file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := &Config{OutputDir: DefaultOutputDir}

	if token := os.Getenv("NOTIONGEN_TOKEN"); token != "" {
		cfg.Token = token
	} else if token := os.Getenv("NOTION_API_KEY"); token != "" {
		cfg.Token = token
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, env-only config
		return cfg, nil
	}

	var fileCfg Config
	if err := v.Unmarshal(&fileCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Token == "" {
		cfg.Token = fileCfg.Token
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}

	return cfg, nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "notiongen"), nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token is required. Set NOTIONGEN_TOKEN or NOTION_API_KEY, or configure token in ~/.config/notiongen/config.toml")
	}
	return nil
}
