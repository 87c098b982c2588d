// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

import "strings"

const (
	ColorBlack       = "&0"
	ColorDarkBlue    = "&1"
	ColorDarkGreen   = "&2"
	ColorDarkAqua    = "&3"
	ColorDarkRed     = "&4"
	ColorDarkPurple  = "&5"
	ColorGold        = "&6"
	ColorGray        = "&7"
	ColorDarkGray    = "&8"
	ColorBlue        = "&9"
	ColorGreen       = "&a"
	ColorAqua        = "&b"
	ColorRed         = "&c"
	ColorLightPurple = "&d"
	ColorYellow      = "&e"
	ColorWhite       = "&f"

	ColorDefault = ColorWhite
)

// StripColors returns message with every &-prefixed color code removed.
func StripColors(message string) string {
	var b strings.Builder
	b.Grow(len(message))
	for i := 0; i < len(message); i++ {
		c := message[i]
		if c == '&' && i < len(message)-1 && isColorCode(message[i+1]) {
			i++
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

func isColorCode(code byte) bool {
	return (code >= 'a' && code <= 'f') ||
		(code >= 'A' && code <= 'F') ||
		(code >= '0' && code <= '9')
}

// A CommandSender is a generic entity that can execute commands and receive
// messages.
type CommandSender interface {
	Server() *Server
	Name() string
	SendMessage(message string)
	HasPermission(permission string) bool
}

// Living is implemented by senders that have a body: health that can be
// restored and hunger that can be fed. Console senders are not Living.
type Living interface {
	CommandSender

	Health() float64
	MaxHealth() float64
	SetHealth(health float64)
	FoodLevel() int
	SetFoodLevel(level int)
}

// CommandHandler is the type of the function called to execute a command.
// The sender argument is the entity that invoked the command and args holds
// the whitespace separated arguments. Returning false makes the server print
// the usage of the command.
type CommandHandler func(sender CommandSender, command *Command, args []string) bool

// A Command describes a command.
type Command struct {
	Name        string
	Description string
	Usage       string
	Permission  string
	Handler     CommandHandler

	plugin Plugin
}

// PrintUsage sends the usage of the command to sender.
func (command *Command) PrintUsage(sender CommandSender) {
	usage := command.Usage
	if len(usage) == 0 {
		usage = "/" + command.Name
	}

	sender.SendMessage("Usage: " + usage)
}

// Plugin returns the plugin that registered the command, if any.
func (command *Command) Plugin() Plugin {
	return command.plugin
}
