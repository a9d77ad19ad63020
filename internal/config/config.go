// Package config loads the hydronet configuration file.
//
// Lookup order:
//  1. $HYDRONET_CONFIG
//  2. ./hydronet.yaml
//
// Missing file means defaults: the demo harness runs with no setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hydronet/internal/hydro"
)

// Config is the top-level configuration.
type Config struct {
	// API server.
	Port     int    `yaml:"port"`
	AdminKey string `yaml:"admin_key"` // bearer token for POST endpoints; empty disables them

	// Snapshot database.
	DBPath string `yaml:"db_path"`

	// Engine constants.
	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig tunes the calculation engine.
type EngineConfig struct {
	// ErosionalConstant is C in v_e = C/√ρ.
	ErosionalConstant float64 `yaml:"erosional_constant"`
	// GasModel is "isothermal" or "adiabatic".
	GasModel string `yaml:"gas_model"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := os.Getenv("HYDRONET_CONFIG")
	if path == "" {
		if _, err := os.Stat("hydronet.yaml"); err == nil {
			path = "hydronet.yaml"
		}
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the stock configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.DBPath == "" {
		c.DBPath = "data/hydronet.db"
	}
	if c.Engine.ErosionalConstant == 0 {
		c.Engine.ErosionalConstant = 100
	}
	if c.Engine.GasModel == "" {
		c.Engine.GasModel = "isothermal"
	}
}

// EngineOptions translates the config into engine options.
func (c *Config) EngineOptions() (hydro.Options, error) {
	opts := hydro.DefaultOptions()
	opts.ErosionalConstant = c.Engine.ErosionalConstant

	switch c.Engine.GasModel {
	case "isothermal":
		opts.GasModel = hydro.Isothermal
	case "adiabatic":
		opts.GasModel = hydro.Adiabatic
	default:
		return opts, fmt.Errorf("unknown gas model %q", c.Engine.GasModel)
	}
	return opts, nil
}
