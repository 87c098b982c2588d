// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package main

import (
	"strings"
	"sync"

	"github.com/AndreasGoulas/paidheal/config"
	"github.com/AndreasGoulas/paidheal/mcc"
)

type RankManager struct {
	lock    sync.RWMutex
	ranks   map[string]config.Rank
	players map[string]string
	def     string
}

func newRankManager(cfg *config.Config) *RankManager {
	manager := &RankManager{
		ranks:   make(map[string]config.Rank, len(cfg.Ranks)),
		players: make(map[string]string, len(cfg.Players)),
		def:     cfg.DefaultRank,
	}

	for name, rank := range cfg.Ranks {
		manager.ranks[name] = rank
	}

	for player, rank := range cfg.Players {
		manager.players[strings.ToLower(player)] = rank
	}

	return manager
}

// RankOf returns the name of the rank of the specified player.
func (manager *RankManager) RankOf(name string) string {
	manager.lock.RLock()
	defer manager.lock.RUnlock()

	if rank, ok := manager.players[strings.ToLower(name)]; ok {
		return rank
	}

	return manager.def
}

func (manager *RankManager) Find(name string) (config.Rank, bool) {
	manager.lock.RLock()
	defer manager.lock.RUnlock()
	rank, ok := manager.ranks[name]
	return rank, ok
}

// SetRank changes the rank of an offline or online player.
func (manager *RankManager) SetRank(name, rank string) bool {
	manager.lock.Lock()
	defer manager.lock.Unlock()

	if _, ok := manager.ranks[rank]; !ok {
		return false
	}

	manager.players[strings.ToLower(name)] = rank
	return true
}

// SetPermissions replaces the permissions of player with those of its rank.
func (manager *RankManager) SetPermissions(player *mcc.Player) {
	player.Clear()

	rank, ok := manager.Find(manager.RankOf(player.Name()))
	if !ok {
		return
	}

	for _, permission := range rank.Permissions {
		player.AddPermission(permission)
	}

	player.Nickname = rank.Prefix + player.Name()
}
