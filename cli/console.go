// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/AndreasGoulas/paidheal/mcc"
)

const (
	PermStop  = "server.stop"
	PermAdmin = "server.admin"
)

type console struct {
	server *mcc.Server
	ranks  *RankManager
	out    io.Writer

	signal   chan os.Signal
	done     chan struct{}
	stopOnce sync.Once
}

func newConsole(server *mcc.Server, ranks *RankManager, out io.Writer) *console {
	console := &console{
		server: server,
		ranks:  ranks,
		out:    out,
		signal: make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}

	server.RegisterCommand(&mcc.Command{
		Name:        "stop",
		Description: "Stop the server.",
		Usage:       "/stop",
		Permission:  PermStop,
		Handler:     console.handleStop,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "join",
		Description: "Bring a player online.",
		Usage:       "/join <player>",
		Permission:  PermAdmin,
		Handler:     console.handleJoin,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "quit",
		Description: "Take a player offline.",
		Usage:       "/quit <player>",
		Permission:  PermAdmin,
		Handler:     console.handleQuit,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "sudo",
		Description: "Execute a command as another player.",
		Usage:       "/sudo <player> <command...>",
		Permission:  PermAdmin,
		Handler:     console.handleSudo,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "hurt",
		Description: "Set the health and hunger of a player.",
		Usage:       "/hurt <player> <health> <food>",
		Permission:  PermAdmin,
		Handler:     console.handleHurt,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "rank",
		Description: "Set the rank of a player.",
		Usage:       "/rank <player> <rank>",
		Permission:  PermAdmin,
		Handler:     console.handleRank,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "players",
		Description: "List online players.",
		Usage:       "/players",
		Handler:     console.handlePlayers,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "help",
		Description: "List all commands.",
		Usage:       "/help",
		Handler:     console.handleHelp,
	})

	signal.Notify(console.signal, os.Interrupt)
	go func() {
		select {
		case <-console.signal:
			console.stop()
		case <-console.done:
		}
	}()

	return console
}

// run executes the lines read from in until in is exhausted or the console
// is stopped.
func (console *console) run(in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-console.done:
				return
			}
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}

			select {
			case <-console.done:
				return
			default:
			}

			console.server.ExecuteCommand(console, line)

		case <-console.done:
			return
		}
	}
}

func (console *console) stop() {
	console.stopOnce.Do(func() {
		signal.Stop(console.signal)
		close(console.done)
	})
}

// Server implements mcc.CommandSender.
func (console *console) Server() *mcc.Server {
	return console.server
}

// Name implements mcc.CommandSender.
func (console *console) Name() string {
	return "Console"
}

// SendMessage implements mcc.CommandSender.
func (console *console) SendMessage(message string) {
	fmt.Fprintln(console.out, mcc.StripColors(message))
}

// HasPermission implements mcc.CommandSender.
func (console *console) HasPermission(permission string) bool {
	return true
}

// playerOutput writes the messages of a simulated player to the console.
type playerOutput struct {
	console *console
	name    string
}

func (output playerOutput) Write(p []byte) (int, error) {
	line := mcc.StripColors(strings.TrimRight(string(p), "\n"))
	fmt.Fprintf(output.console.out, "[%s] %s\n", output.name, line)
	return len(p), nil
}

func (console *console) handleStop(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 0 {
		return false
	}

	sender.SendMessage("Stopping the server...")
	console.stop()
	return true
}

func (console *console) handleJoin(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 1 {
		return false
	}

	name := args[0]
	player := mcc.NewPlayer(name, playerOutput{console, name}, console.server)
	console.ranks.SetPermissions(player)
	if err := console.server.AddPlayer(player); err != nil {
		sender.SendMessage(mcc.ColorRed + name + " could not join: " + err.Error())
	}

	return true
}

func (console *console) handleQuit(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 1 {
		return false
	}

	player := console.server.FindPlayer(args[0])
	if player == nil {
		sender.SendMessage("Player " + args[0] + " not found")
		return true
	}

	console.server.RemovePlayer(player)
	return true
}

func (console *console) handleSudo(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) < 2 {
		return false
	}

	player := console.server.FindPlayer(args[0])
	if player == nil {
		sender.SendMessage("Player " + args[0] + " not found")
		return true
	}

	console.server.ExecuteCommand(player, strings.Join(args[1:], " "))
	return true
}

func (console *console) handleHurt(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 3 {
		return false
	}

	player := console.server.FindPlayer(args[0])
	if player == nil {
		sender.SendMessage("Player " + args[0] + " not found")
		return true
	}

	health, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		sender.SendMessage(args[1] + " is not a valid health")
		return true
	}

	food, err := strconv.Atoi(args[2])
	if err != nil {
		sender.SendMessage(args[2] + " is not a valid food level")
		return true
	}

	player.SetHealth(health)
	player.SetFoodLevel(food)
	sender.SendMessage(fmt.Sprintf("%s now has %.1f health and %d food",
		player.Name(), player.Health(), player.FoodLevel()))
	return true
}

func (console *console) handleRank(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 2 {
		return false
	}

	if !console.ranks.SetRank(args[0], args[1]) {
		sender.SendMessage("Rank " + args[1] + " not found")
		return true
	}

	if player := console.server.FindPlayer(args[0]); player != nil {
		console.ranks.SetPermissions(player)
		player.SendMessage("Your rank has been set to " + args[1])
	}

	sender.SendMessage("Rank of " + args[0] + " set to " + args[1])
	return true
}

func (console *console) handlePlayers(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 0 {
		return false
	}

	var lines []string
	console.server.ForEachPlayer(func(player *mcc.Player) {
		lines = append(lines, fmt.Sprintf("%s&f: %.1f/%.1f health, %d food",
			player.Nickname, player.Health(), player.MaxHealth(), player.FoodLevel()))
	})

	if len(lines) == 0 {
		sender.SendMessage("There are no players online")
		return true
	}

	sort.Strings(lines)
	sender.SendMessage("Online players: " + strconv.Itoa(len(lines)))
	for _, line := range lines {
		sender.SendMessage(line)
	}

	return true
}

func (console *console) handleHelp(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 0 {
		return false
	}

	var commands []*mcc.Command
	console.server.ForEachCommand(func(command *mcc.Command) {
		if sender.HasPermission(command.Permission) {
			commands = append(commands, command)
		}
	})

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})

	for _, command := range commands {
		sender.SendMessage(command.Usage + " - " + command.Description)
	}

	return true
}
