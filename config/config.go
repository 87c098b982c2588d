// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

// Package config loads the server configuration from a YAML file, with
// overrides taken from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PAIDHEAL_"

type Server struct {
	Name       string `yaml:"name" env:"SERVER_NAME"`
	MOTD       string `yaml:"motd" env:"MOTD"`
	MaxPlayers int    `yaml:"max-players" env:"MAX_PLAYERS"`
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL"`

	// Plugins is the directory of plugins loaded at startup, after the
	// built-in ones.
	Plugins string `yaml:"plugins" env:"PLUGINS"`
}

type Economy struct {
	Database         string  `yaml:"database" env:"DATABASE"`
	Locale           string  `yaml:"locale" env:"LOCALE"`
	CurrencySingular string  `yaml:"currency-singular" env:"CURRENCY_SINGULAR"`
	CurrencyPlural   string  `yaml:"currency-plural" env:"CURRENCY_PLURAL"`
	StartingBalance  float64 `yaml:"starting-balance" env:"STARTING_BALANCE"`
}

type Heal struct {
	// Charge withdraws the fee instead of only checking the balance.
	Charge bool `yaml:"charge" env:"HEAL_CHARGE"`
}

// Rank is a named set of permissions.
type Rank struct {
	Permissions []string `yaml:"permissions,omitempty"`
	Prefix      string   `yaml:"prefix,omitempty"`
}

type Config struct {
	Server  Server  `yaml:"server"`
	Economy Economy `yaml:"economy"`
	Heal    Heal    `yaml:"heal"`

	Ranks       map[string]Rank   `yaml:"ranks"`
	DefaultRank string            `yaml:"default-rank" env:"DEFAULT_RANK"`
	Players     map[string]string `yaml:"players,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: Server{
			Name:       "Go-MCC",
			MOTD:       "Welcome!",
			MaxPlayers: 32,
			LogLevel:   "info",
			Plugins:    "plugins",
		},
		Economy: Economy{
			Database:         "economy.sqlite",
			Locale:           "en-US",
			CurrencySingular: "coin",
			CurrencyPlural:   "coins",
			StartingBalance:  10,
		},
		Ranks: map[string]Rank{
			"guest": {
				Permissions: []string{"economy.balance", "economy.top", "heal.self"},
			},
			"op": {
				Permissions: []string{"*"},
				Prefix:      "&c",
			},
		},
		DefaultRank: "guest",
	}
}

// Load reads the configuration at path. When the file does not exist the
// defaults are written to path and used. Environment variables, including
// those set in a .env file in the working directory, take precedence over
// the file.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := Save(path, config); err != nil {
			return nil, err
		}

	case err != nil:
		return nil, fmt.Errorf("config: %w", err)

	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes config to path as YAML.
func Save(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Validate reports the first inconsistency in config.
func (config *Config) Validate() error {
	if config.Server.MaxPlayers <= 0 {
		return fmt.Errorf("config: max-players must be positive, got %d", config.Server.MaxPlayers)
	}

	if len(config.Economy.Database) == 0 {
		return errors.New("config: economy database is empty")
	}

	if config.Economy.StartingBalance < 0 {
		return fmt.Errorf("config: starting-balance must not be negative, got %g", config.Economy.StartingBalance)
	}

	if _, ok := config.Ranks[config.DefaultRank]; !ok {
		return fmt.Errorf("config: default rank %q is not defined", config.DefaultRank)
	}

	for player, rank := range config.Players {
		if _, ok := config.Ranks[rank]; !ok {
			return fmt.Errorf("config: rank %q of %s is not defined", rank, player)
		}
	}

	return nil
}
