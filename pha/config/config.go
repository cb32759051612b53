package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	internal "github.com/ZanzyTHEbar/personal-health-agent/pha"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Data     DataConfig     `mapstructure:"data"`
	Compare  CompareConfig  `mapstructure:"compare"`
	Log      LogConfig      `mapstructure:"log"`
}

// GatewayConfig stores model backend connection details.
type GatewayConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKeyEnv string `mapstructure:"api_key_env"` // env var holding the API key
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// PipelineConfig stores orchestration settings.
type PipelineConfig struct {
	SeedMemory   bool `mapstructure:"seed_memory"`   // preload conditions/medications into memory
	HistoryPairs int  `mapstructure:"history_pairs"` // transcript pairs surfaced to prompts
}

// DataConfig stores mock health-data generation settings.
type DataConfig struct {
	Seed int64 `mapstructure:"seed"` // RNG seed for the mock snapshot
}

// CompareConfig stores comparison-run settings.
type CompareConfig struct {
	Queries []string `mapstructure:"queries"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"` // console writer instead of JSON
}

var AppConfig Config

// APIKey resolves the backend API key from the configured environment
// variable.
func (g GatewayConfig) APIKey() string {
	return os.Getenv(g.APIKeyEnv)
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viper.Reset()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("gateway.base_url", internal.DefaultBaseURL)
	viper.SetDefault("gateway.api_key_env", internal.DefaultAPIKeyEnv)
	viper.SetDefault("gateway.model", internal.DefaultModel)
	viper.SetDefault("gateway.max_tokens", internal.DefaultMaxTokens)

	viper.SetDefault("pipeline.seed_memory", true)
	viper.SetDefault("pipeline.history_pairs", 5)

	viper.SetDefault("data.seed", 42)

	viper.SetDefault("compare.queries", []string{
		"How has my sleep been trending over the past month?",
		"Is my resting heart rate normal for my age?",
		"I want to build a sustainable exercise habit",
	})

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)

	viper.AutomaticEnv()
	// Replace dots with underscores in env var names e.g. gateway.base_url becomes GATEWAY_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
