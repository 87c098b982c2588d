// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/AndreasGoulas/paidheal/config"
	"github.com/AndreasGoulas/paidheal/economy"
	"github.com/AndreasGoulas/paidheal/heal"
	"github.com/AndreasGoulas/paidheal/mcc"
)

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

func main() {
	path := flag.String("config", "server.yaml", "path of the configuration file")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		bootLogger := newLogger("info")
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg.Server.LogLevel)
	server := mcc.NewServer(&mcc.Config{
		Name:       cfg.Server.Name,
		MOTD:       cfg.Server.MOTD,
		MaxPlayers: cfg.Server.MaxPlayers,
	}, logger)

	logger.Info().
		Str("software", mcc.ServerSoftware).
		Str("name", cfg.Server.Name).
		Msg("starting server")

	// Heal resolves the economy service when it is enabled.
	server.RegisterPlugin(economy.New(economy.Config{
		Database:         cfg.Economy.Database,
		Locale:           cfg.Economy.Locale,
		CurrencySingular: cfg.Economy.CurrencySingular,
		CurrencyPlural:   cfg.Economy.CurrencyPlural,
		StartingBalance:  cfg.Economy.StartingBalance,
	}))
	server.RegisterPlugin(heal.New(cfg.Heal.Charge))
	loadPlugins(cfg.Server.Plugins, server)

	console := newConsole(server, newRankManager(cfg), os.Stdout)
	console.run(os.Stdin)
	server.Stop()
}
