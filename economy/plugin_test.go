// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package economy

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasGoulas/paidheal/mcc"
)

type consoleSender struct {
	server   *mcc.Server
	messages []string
}

func (sender *consoleSender) Server() *mcc.Server       { return sender.server }
func (sender *consoleSender) Name() string              { return "Console" }
func (sender *consoleSender) HasPermission(string) bool { return true }

func (sender *consoleSender) SendMessage(message string) {
	sender.messages = append(sender.messages, message)
}

func lines(buf *bytes.Buffer) []string {
	defer buf.Reset()
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func enableEconomy(t *testing.T) (*mcc.Server, *Plugin) {
	t.Helper()

	server := mcc.NewServer(&mcc.Config{}, zerolog.Nop())
	plugin := New(Config{
		Database:         filepath.Join(t.TempDir(), "economy.sqlite"),
		Locale:           "en",
		CurrencySingular: "coin",
		CurrencyPlural:   "coins",
		StartingBalance:  10,
	})

	require.NoError(t, server.RegisterPlugin(plugin))
	t.Cleanup(server.Stop)
	return server, plugin
}

func TestPluginRegistersService(t *testing.T) {
	server, plugin := enableEconomy(t)

	econ, ok := Lookup(server)
	require.True(t, ok)
	assert.Same(t, plugin.Store(), econ)

	server.DisablePlugin(plugin)
	_, ok = Lookup(server)
	assert.False(t, ok)
	assert.Nil(t, server.FindCommand("balance"))
	assert.Nil(t, plugin.Store())
}

func TestPluginEnableFailure(t *testing.T) {
	server := mcc.NewServer(&mcc.Config{}, zerolog.Nop())
	plugin := New(Config{Database: filepath.Join(t.TempDir(), "missing", "economy.sqlite")})

	require.Error(t, server.RegisterPlugin(plugin))
	_, ok := Lookup(server)
	assert.False(t, ok)
	assert.Nil(t, server.FindCommand("eco"))
}

func TestPluginCreatesAccountOnJoin(t *testing.T) {
	server, plugin := enableEconomy(t)

	require.NoError(t, plugin.Store().SetBalance("Bob", 3))
	for _, name := range []string{"Alice", "Bob"} {
		require.NoError(t, server.AddPlayer(mcc.NewPlayer(name, nil, server)))
	}

	balance, err := plugin.Store().Balance("Alice")
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance)

	balance, err = plugin.Store().Balance("Bob")
	require.NoError(t, err)
	assert.Equal(t, 3.0, balance)
}

func TestBalanceCommand(t *testing.T) {
	server, _ := enableEconomy(t)

	var buf bytes.Buffer
	alice := mcc.NewPlayer("Alice", &buf, server)
	alice.AddPermission("economy.balance")
	require.NoError(t, server.AddPlayer(alice))
	buf.Reset()

	server.ExecuteCommand(alice, "/balance")
	assert.Equal(t, []string{"Balance of Alice: &610.00 coins"}, lines(&buf))

	server.ExecuteCommand(alice, "/balance Bob")
	assert.Equal(t, []string{"&cYou do not have permission to do that!"}, lines(&buf))

	server.ExecuteCommand(alice, "/balance a b")
	assert.Equal(t, []string{"Usage: /balance [player]"}, lines(&buf))

	console := &consoleSender{server: server}
	server.ExecuteCommand(console, "/balance")
	server.ExecuteCommand(console, "/balance alice")
	assert.Equal(t, []string{
		"You are not a player",
		"Balance of alice: &610.00 coins",
	}, console.messages)
}

func TestEcoCommand(t *testing.T) {
	server, plugin := enableEconomy(t)
	console := &consoleSender{server: server}

	server.ExecuteCommand(console, "/eco give Alice 2.5")
	server.ExecuteCommand(console, "/eco take Alice 1")
	server.ExecuteCommand(console, "/eco take Alice 100")
	server.ExecuteCommand(console, "/eco set Bob 1")
	server.ExecuteCommand(console, "/eco give Alice -3")
	server.ExecuteCommand(console, "/eco give a 3")
	server.ExecuteCommand(console, "/eco burn Alice 3")

	assert.Equal(t, []string{
		"Balance of Alice is now &62.50 coins",
		"Balance of Alice is now &61.50 coins",
		"&cAlice does not have 100.00 coins",
		"Balance of Bob is now &61.00 coin",
		"-3 is not a valid amount",
		"a is not a valid name",
		"Usage: /eco <give|take|set> <player> <amount>",
	}, console.messages)

	console.messages = nil
	server.ExecuteCommand(console, "/baltop")
	assert.Equal(t, []string{
		"1. Alice: &61.50 coins",
		"2. Bob: &61.00 coin",
	}, console.messages)

	accounts, err := plugin.Store().Top(topCount)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestBalTopEmpty(t *testing.T) {
	server, _ := enableEconomy(t)
	console := &consoleSender{server: server}

	server.ExecuteCommand(console, "/baltop")
	assert.Equal(t, []string{"There are no accounts"}, console.messages)
}
