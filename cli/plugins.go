// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"plugin"

	"github.com/AndreasGoulas/paidheal/mcc"
)

// InitializeSymbol is the function a plugin library exports to create its
// plugin. Its type must be func() mcc.Plugin.
const InitializeSymbol = "Initialize"

// loadPlugins registers every plugin library in dir and returns the number
// of plugins that were enabled. A missing directory is not an error.
func loadPlugins(dir string, server *mcc.Server) int {
	log := server.Logger()
	if len(dir) == 0 {
		return 0
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0
	} else if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("read plugins")
		return 0
	}

	enabled := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".so" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		lib, err := plugin.Open(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("open plugin")
			continue
		}

		sym, err := lib.Lookup(InitializeSymbol)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("open plugin")
			continue
		}

		initFn, ok := sym.(func() mcc.Plugin)
		if !ok {
			log.Error().Str("path", path).Msg("Initialize has the wrong type")
			continue
		}

		if err := server.RegisterPlugin(initFn()); err == nil {
			enabled++
		}
	}

	return enabled
}
