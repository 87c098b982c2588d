// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasGoulas/paidheal/config"
	"github.com/AndreasGoulas/paidheal/economy"
	"github.com/AndreasGoulas/paidheal/heal"
	"github.com/AndreasGoulas/paidheal/mcc"
)

func newTestConsole(t *testing.T) (*console, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Players = map[string]string{"Admin": "op"}

	server := mcc.NewServer(&mcc.Config{MaxPlayers: 4}, zerolog.Nop())
	require.NoError(t, server.RegisterPlugin(economy.New(economy.Config{
		Database:         filepath.Join(t.TempDir(), "economy.sqlite"),
		CurrencySingular: "coin",
		CurrencyPlural:   "coins",
		StartingBalance:  10,
	})))
	require.NoError(t, server.RegisterPlugin(heal.New(true)))
	t.Cleanup(server.Stop)

	var out bytes.Buffer
	console := newConsole(server, newRankManager(cfg), &out)
	t.Cleanup(console.stop)
	return console, &out
}

func run(console *console, out *bytes.Buffer, lines ...string) []string {
	out.Reset()
	console.run(strings.NewReader(strings.Join(lines, "\n")))
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestConsoleHealFlow(t *testing.T) {
	console, out := newTestConsole(t)

	got := run(console, out,
		"/join Alice",
		"/hurt Alice 4 2",
		"/sudo Alice heal",
		"/players",
	)

	assert.Equal(t, []string{
		"[Alice] Alice has joined the game!",
		"Alice now has 4.0 health and 2 food",
		"[Alice] You have been fed and healed!",
		"Online players: 1",
		"Alice: 20.0/20.0 health, 20 food",
	}, got)

	balance, err := console.server.Services().Provider(economy.ServiceName).(economy.Economy).Balance("Alice")
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance)
}

func TestConsoleRanks(t *testing.T) {
	console, out := newTestConsole(t)

	got := run(console, out,
		"/join Bob",
		"/sudo Bob heal Bob",
		"/rank Bob op",
		"/sudo Bob heal Bob",
	)

	assert.Equal(t, []string{
		"[Bob] Bob has joined the game!",
		"[Bob] You do not have permission to do that!",
		"[Bob] Your rank has been set to op",
		"Rank of Bob set to op",
		"[Bob] Bob was healed and fed!",
		"[Bob] You were healed and fed!",
	}, got)

	got = run(console, out, "/rank Bob king")
	assert.Equal(t, []string{"Rank king not found"}, got)
}

func TestConsoleErrors(t *testing.T) {
	console, out := newTestConsole(t)

	got := run(console, out,
		"/join x",
		"/quit Nobody",
		"/hurt",
		"/nothing",
	)

	assert.Equal(t, []string{
		"x could not join: mcc: invalid name",
		"Player Nobody not found",
		"Usage: /hurt <player> <health> <food>",
		"Unknown command!",
	}, got)
}

func TestConsoleStop(t *testing.T) {
	console, out := newTestConsole(t)

	got := run(console, out, "/stop", "/join Alice")
	assert.Equal(t, []string{"Stopping the server..."}, got)
	assert.Zero(t, console.server.PlayerCount())
}

func TestRankManager(t *testing.T) {
	cfg := config.Default()
	cfg.Players = map[string]string{"Admin": "op"}
	manager := newRankManager(cfg)

	assert.Equal(t, "op", manager.RankOf("admin"))
	assert.Equal(t, "guest", manager.RankOf("Alice"))

	admin := mcc.NewPlayer("Admin", nil, nil)
	manager.SetPermissions(admin)
	assert.True(t, admin.HasPermission("server.stop"))
	assert.Equal(t, "&cAdmin", admin.Nickname)

	alice := mcc.NewPlayer("Alice", nil, nil)
	alice.AddPermission("stale.permission")
	manager.SetPermissions(alice)
	assert.False(t, alice.HasPermission("stale.permission"))
	assert.True(t, alice.HasPermission(heal.PermSelf))
	assert.False(t, alice.HasPermission(heal.PermOthers))

	assert.False(t, manager.SetRank("Alice", "king"))
	require.True(t, manager.SetRank("Alice", "op"))
	assert.Equal(t, "op", manager.RankOf("ALICE"))
}

func TestConsoleHelp(t *testing.T) {
	console, out := newTestConsole(t)

	got := run(console, out, "/help")
	assert.Len(t, got, 12)
	assert.Equal(t, "/balance [player] - Show the balance of an account.", got[0])
	assert.Contains(t, got, "/heal [player] - Heal and feed yourself or another player for a fee.")
}
