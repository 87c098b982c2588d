// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

import (
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const ServerSoftware = "Go-MCC"

var (
	ErrInvalidName   = errors.New("mcc: invalid name")
	ErrAlreadyOnline = errors.New("mcc: already logged in")
	ErrServerFull    = errors.New("mcc: server full")
)

// Config is used to configure a server.
type Config struct {
	Name       string
	MOTD       string
	MaxPlayers int
}

// Plugin is the interface that must be implemented by all plugins.
// A plugin whose Enable method fails is left disabled: the commands and
// services it registered are removed again.
type Plugin interface {
	Name() string
	Enable(*Server) error
	Disable(*Server)
}

// Server represents a game server.
type Server struct {
	Config *Config

	log      zerolog.Logger
	services *ServiceRegistry

	commands     map[string]*Command
	commandsLock sync.RWMutex

	handlers     map[EventType][]eventHandler
	handlersLock sync.RWMutex

	players     []*Player
	playersLock sync.RWMutex

	plugins     []Plugin
	enabling    Plugin
	pluginsLock sync.RWMutex
}

// NewServer returns a new Server.
func NewServer(config *Config, logger zerolog.Logger) *Server {
	return &Server{
		Config:   config,
		log:      logger,
		services: newServiceRegistry(),
		commands: make(map[string]*Command),
		handlers: make(map[EventType][]eventHandler),
	}
}

// Logger returns the logger of the server.
func (server *Server) Logger() *zerolog.Logger {
	return &server.log
}

// Services returns the service registry of the server.
func (server *Server) Services() *ServiceRegistry {
	return server.services
}

// Stop disables all plugins in the reverse order of registration.
func (server *Server) Stop() {
	server.pluginsLock.RLock()
	plugins := make([]Plugin, len(server.plugins))
	copy(plugins, server.plugins)
	server.pluginsLock.RUnlock()

	for i := len(plugins) - 1; i >= 0; i-- {
		server.DisablePlugin(plugins[i])
	}

	server.log.Info().Msg("server stopped")
}

// BroadcastMessage broadcasts a message to all players.
func (server *Server) BroadcastMessage(message string) {
	server.log.Info().Str("message", StripColors(message)).Msg("broadcast")
	server.ForEachPlayer(func(player *Player) {
		player.SendMessage(message)
	})
}

// AddPlayer brings player online. It fails if the name is invalid or taken,
// if the server is full or if a join handler cancels the event.
func (server *Server) AddPlayer(player *Player) error {
	if !IsValidName(player.name) {
		return ErrInvalidName
	}

	server.playersLock.Lock()
	for _, p := range server.players {
		if strings.EqualFold(p.name, player.name) {
			server.playersLock.Unlock()
			return ErrAlreadyOnline
		}
	}

	if server.Config.MaxPlayers > 0 && len(server.players) >= server.Config.MaxPlayers {
		server.playersLock.Unlock()
		return ErrServerFull
	}

	player.server = server
	server.players = append(server.players, player)
	server.playersLock.Unlock()

	event := EventPlayerJoin{Player: player}
	server.FireEvent(EventTypePlayerJoin, &event)
	if event.Cancel {
		server.removePlayer(player)
		return errors.New("mcc: " + event.CancelReason)
	}

	if len(server.Config.MOTD) > 0 {
		player.SendMessage(server.Config.MOTD)
	}

	server.BroadcastMessage(ColorYellow + player.name + " has joined the game!")
	return nil
}

// RemovePlayer takes player offline.
func (server *Server) RemovePlayer(player *Player) {
	if !server.removePlayer(player) {
		return
	}

	event := EventPlayerQuit{player}
	server.FireEvent(EventTypePlayerQuit, &event)
	server.BroadcastMessage(ColorYellow + player.name + " has left the game!")
}

func (server *Server) removePlayer(player *Player) bool {
	server.playersLock.Lock()
	defer server.playersLock.Unlock()

	index := -1
	for i, p := range server.players {
		if p == player {
			index = i
			break
		}
	}

	if index == -1 {
		return false
	}

	server.players[index] = server.players[len(server.players)-1]
	server.players[len(server.players)-1] = nil
	server.players = server.players[:len(server.players)-1]
	return true
}

// FindPlayer returns the online player with the specified name, ignoring
// case, or nil.
func (server *Server) FindPlayer(name string) *Player {
	server.playersLock.RLock()
	defer server.playersLock.RUnlock()

	for _, player := range server.players {
		if strings.EqualFold(player.name, name) {
			return player
		}
	}

	return nil
}

// MatchPlayer returns the online player whose name matches name exactly or,
// failing that, the player with the shortest name starting with name.
// Case is ignored in both cases.
func (server *Server) MatchPlayer(name string) *Player {
	if len(name) == 0 {
		return nil
	}

	if player := server.FindPlayer(name); player != nil {
		return player
	}

	prefix := strings.ToLower(name)

	server.playersLock.RLock()
	defer server.playersLock.RUnlock()

	var match *Player
	for _, player := range server.players {
		if !strings.HasPrefix(strings.ToLower(player.name), prefix) {
			continue
		}

		if match == nil || len(player.name) < len(match.name) {
			match = player
		}
	}

	return match
}

// ForEachPlayer calls fn for each player.
func (server *Server) ForEachPlayer(fn func(*Player)) {
	server.playersLock.RLock()
	players := make([]*Player, len(server.players))
	copy(players, server.players)
	server.playersLock.RUnlock()

	for _, player := range players {
		fn(player)
	}
}

// PlayerCount returns the number of online players.
func (server *Server) PlayerCount() int {
	server.playersLock.RLock()
	defer server.playersLock.RUnlock()
	return len(server.players)
}

// RegisterCommand registers the specified command. Commands registered
// while a plugin is being enabled belong to that plugin.
func (server *Server) RegisterCommand(command *Command) {
	server.pluginsLock.RLock()
	command.plugin = server.enabling
	server.pluginsLock.RUnlock()

	server.commandsLock.Lock()
	server.commands[strings.ToLower(command.Name)] = command
	server.commandsLock.Unlock()
}

// UnregisterCommand removes the command with the specified name.
func (server *Server) UnregisterCommand(name string) {
	server.commandsLock.Lock()
	delete(server.commands, strings.ToLower(name))
	server.commandsLock.Unlock()
}

// FindCommand returns the command with the specified name.
func (server *Server) FindCommand(name string) *Command {
	server.commandsLock.RLock()
	defer server.commandsLock.RUnlock()
	return server.commands[strings.ToLower(name)]
}

// ForEachCommand calls fn for each command.
func (server *Server) ForEachCommand(fn func(*Command)) {
	server.commandsLock.RLock()
	commands := make([]*Command, 0, len(server.commands))
	for _, command := range server.commands {
		commands = append(commands, command)
	}
	server.commandsLock.RUnlock()

	for _, command := range commands {
		fn(command)
	}
}

// ExecuteCommand executes the command specified by message, if it exists.
// The command runs on the calling goroutine.
func (server *Server) ExecuteCommand(sender CommandSender, message string) {
	args := strings.Fields(strings.TrimPrefix(message, "/"))
	if len(args) == 0 {
		return
	}

	command := server.FindCommand(args[0])
	if command == nil {
		sender.SendMessage("Unknown command!")
		return
	}

	args = args[1:]
	event := EventCommand{
		sender, command, args,
		sender.HasPermission(command.Permission),
	}
	server.FireEvent(EventTypeCommand, &event)
	if !event.Allow {
		sender.SendMessage("You do not have permission to execute this command!")
		return
	}

	server.log.Debug().
		Str("sender", sender.Name()).
		Str("command", command.Name).
		Strs("args", args).
		Msg("command")

	if !command.Handler(sender, command, args) {
		command.PrintUsage(sender)
	}
}

type eventHandler struct {
	plugin Plugin
	fn     EventHandler
}

// AddHandler registers a handler for the specified event type. Handlers
// added while a plugin is being enabled belong to that plugin.
func (server *Server) AddHandler(eventType EventType, handler EventHandler) {
	server.pluginsLock.RLock()
	plugin := server.enabling
	server.pluginsLock.RUnlock()

	server.handlersLock.Lock()
	server.handlers[eventType] = append(server.handlers[eventType], eventHandler{plugin, handler})
	server.handlersLock.Unlock()
}

// FireEvent dispatches event to the server.
func (server *Server) FireEvent(eventType EventType, event interface{}) {
	server.handlersLock.RLock()
	handlers := server.handlers[eventType]
	server.handlersLock.RUnlock()

	for _, handler := range handlers {
		handler.fn(eventType, event)
	}
}

// RegisterPlugin registers and enables plugin. It returns the error of
// Enable, in which case the plugin stays disabled.
func (server *Server) RegisterPlugin(plugin Plugin) error {
	logger := server.log.With().Str("plugin", plugin.Name()).Logger()

	server.pluginsLock.Lock()
	server.enabling = plugin
	server.pluginsLock.Unlock()

	err := plugin.Enable(server)

	server.pluginsLock.Lock()
	server.enabling = nil
	if err == nil {
		server.plugins = append(server.plugins, plugin)
	}
	server.pluginsLock.Unlock()

	if err != nil {
		server.unregisterPlugin(plugin)
		logger.Error().Err(err).Msg("plugin disabled")
		return err
	}

	event := EventPluginEnable{plugin}
	server.FireEvent(EventTypePluginEnable, &event)
	logger.Info().Msg("plugin enabled")
	return nil
}

// DisablePlugin disables plugin and removes its commands and services.
func (server *Server) DisablePlugin(plugin Plugin) {
	server.pluginsLock.Lock()
	index := -1
	for i, p := range server.plugins {
		if p == plugin {
			index = i
			break
		}
	}

	if index == -1 {
		server.pluginsLock.Unlock()
		return
	}

	server.plugins = append(server.plugins[:index], server.plugins[index+1:]...)
	server.pluginsLock.Unlock()

	plugin.Disable(server)
	server.unregisterPlugin(plugin)

	event := EventPluginDisable{plugin}
	server.FireEvent(EventTypePluginDisable, &event)
	server.log.Info().Str("plugin", plugin.Name()).Msg("plugin disabled")
}

// IsPluginEnabled reports whether plugin is enabled.
func (server *Server) IsPluginEnabled(plugin Plugin) bool {
	server.pluginsLock.RLock()
	defer server.pluginsLock.RUnlock()

	for _, p := range server.plugins {
		if p == plugin {
			return true
		}
	}

	return false
}

// ForEachPlugin calls fn for each enabled plugin.
func (server *Server) ForEachPlugin(fn func(Plugin)) {
	server.pluginsLock.RLock()
	plugins := make([]Plugin, len(server.plugins))
	copy(plugins, server.plugins)
	server.pluginsLock.RUnlock()

	for _, plugin := range plugins {
		fn(plugin)
	}
}

func (server *Server) unregisterPlugin(plugin Plugin) {
	server.commandsLock.Lock()
	for name, command := range server.commands {
		if command.plugin == plugin {
			delete(server.commands, name)
		}
	}
	server.commandsLock.Unlock()

	server.handlersLock.Lock()
	for eventType, handlers := range server.handlers {
		kept := handlers[:0:0]
		for _, handler := range handlers {
			if handler.plugin != plugin {
				kept = append(kept, handler)
			}
		}
		server.handlers[eventType] = kept
	}
	server.handlersLock.Unlock()

	server.services.Unregister(plugin)
}
