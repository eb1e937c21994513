// Package config loads daemon configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Network string `yaml:"network" envconfig:"NETWORK" default:"mainnet"`

	Database struct {
		URI  string `yaml:"uri" envconfig:"DATABASE_URI" default:"mongodb://localhost:27017"`
		Name string `yaml:"name" envconfig:"DATABASE_NAME" default:"xbridge"`
	} `yaml:"database"`

	// chain name -> websocket rpc endpoint
	RPC map[string]string `yaml:"rpc" envconfig:"RPC"`

	API struct {
		Port string `yaml:"port" envconfig:"API_PORT" default:"8080"`
	} `yaml:"api"`

	History struct {
		URL     string        `yaml:"url" envconfig:"HISTORY_URL" default:"https://api.carbon.network"`
		Timeout time.Duration `yaml:"timeout" envconfig:"HISTORY_TIMEOUT" default:"15s"`
	} `yaml:"history"`

	Signer struct {
		// hex private key; submission endpoints are disabled when empty
		Key string `yaml:"key" envconfig:"SIGNER_KEY"`
	} `yaml:"signer"`

	SyncInterval time.Duration `yaml:"sync_interval" envconfig:"SYNC_INTERVAL" default:"1m"`
}

// Load reads the YAML file at path when it exists, then applies XBRIDGE_*
// environment overrides on top.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("xbridge", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process environment config: %w", err)
	}

	return cfg, nil
}
