// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

import (
	"io"
	"sync"
)

const (
	DefaultMaxHealth = 20.0
	MaxFoodLevel     = 20

	messageWidth = 64
)

// Player represents a player session. Messages sent to the player are
// written, one line at a time, to the writer passed to NewPlayer.
type Player struct {
	*PermissionGroup

	Nickname string

	server *Server
	name   string
	out    io.Writer

	lock      sync.RWMutex
	health    float64
	maxHealth float64
	foodLevel int
}

// NewPlayer returns a new Player with full health and hunger.
func NewPlayer(name string, out io.Writer, server *Server) *Player {
	return &Player{
		PermissionGroup: &PermissionGroup{},
		Nickname:        name,
		server:          server,
		name:            name,
		out:             out,
		health:          DefaultMaxHealth,
		maxHealth:       DefaultMaxHealth,
		foodLevel:       MaxFoodLevel,
	}
}

// Server implements CommandSender.
func (player *Player) Server() *Server {
	return player.server
}

// Name implements CommandSender.
func (player *Player) Name() string {
	return player.name
}

// SendMessage implements CommandSender.
func (player *Player) SendMessage(message string) {
	if player.out == nil {
		return
	}

	for _, line := range WordWrap(message, messageWidth) {
		io.WriteString(player.out, line+"\n")
	}
}

// Health implements Living.
func (player *Player) Health() float64 {
	player.lock.RLock()
	defer player.lock.RUnlock()
	return player.health
}

// MaxHealth implements Living.
func (player *Player) MaxHealth() float64 {
	player.lock.RLock()
	defer player.lock.RUnlock()
	return player.maxHealth
}

// SetHealth implements Living. health is clamped to [0, MaxHealth].
func (player *Player) SetHealth(health float64) {
	player.lock.Lock()
	defer player.lock.Unlock()
	player.health = clamp(health, 0, player.maxHealth)
}

// SetMaxHealth changes the maximum health of the player. The current health
// is lowered if it exceeds the new maximum.
func (player *Player) SetMaxHealth(maxHealth float64) {
	if maxHealth <= 0 {
		return
	}

	player.lock.Lock()
	defer player.lock.Unlock()
	player.maxHealth = maxHealth
	if player.health > maxHealth {
		player.health = maxHealth
	}
}

// FoodLevel implements Living.
func (player *Player) FoodLevel() int {
	player.lock.RLock()
	defer player.lock.RUnlock()
	return player.foodLevel
}

// SetFoodLevel implements Living. level is clamped to [0, MaxFoodLevel].
func (player *Player) SetFoodLevel(level int) {
	player.lock.Lock()
	defer player.lock.Unlock()
	player.foodLevel = max(0, min(level, MaxFoodLevel))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
