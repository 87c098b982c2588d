// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

type EventType uint

const (
	EventTypePlayerJoin EventType = iota
	EventTypePlayerQuit
	EventTypeCommand
	EventTypePluginEnable
	EventTypePluginDisable
)

// EventHandler is the type of the function called when an event is fired.
type EventHandler func(eventType EventType, event interface{})

type EventPlayerJoin struct {
	Player       *Player
	Cancel       bool
	CancelReason string
}

type EventPlayerQuit struct {
	Player *Player
}

// EventCommand is fired before a command is executed. Allow is initialized
// from the permission check and may be changed by handlers.
type EventCommand struct {
	Sender  CommandSender
	Command *Command
	Args    []string
	Allow   bool
}

type EventPluginEnable struct {
	Plugin Plugin
}

type EventPluginDisable struct {
	Plugin Plugin
}
