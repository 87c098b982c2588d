// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package heal

import (
	"github.com/AndreasGoulas/paidheal/economy"
	"github.com/AndreasGoulas/paidheal/mcc"
)

// Plugin registers /heal. It needs an economy: when none is registered at
// enable time the plugin stays disabled, and it is disabled again when the
// plugin providing the economy goes away.
type Plugin struct {
	charge   bool
	handler  *Handler
	provider mcc.Plugin
}

// New returns a new heal plugin. charge selects whether Price is withdrawn
// from the payer or only compared against the balance.
func New(charge bool) *Plugin {
	return &Plugin{charge: charge}
}

// Name implements mcc.Plugin.
func (plugin *Plugin) Name() string {
	return "PaidHeal"
}

// Handler returns the handler while the plugin is enabled.
func (plugin *Plugin) Handler() *Handler {
	return plugin.handler
}

// Enable implements mcc.Plugin.
func (plugin *Plugin) Enable(server *mcc.Server) error {
	econ, ok := economy.Lookup(server)
	if !ok {
		return ErrNoEconomy
	}

	logger := server.Logger().With().Str("plugin", plugin.Name()).Logger()
	handler, err := NewHandler(server, econ, WithCharge(plugin.charge), WithLogger(logger))
	if err != nil {
		return err
	}

	plugin.handler = handler
	plugin.provider = server.Services().Registration(economy.ServiceName).Plugin
	server.AddHandler(mcc.EventTypePluginDisable, func(eventType mcc.EventType, event interface{}) {
		e := event.(*mcc.EventPluginDisable)
		if e.Plugin == nil || e.Plugin != plugin.provider {
			return
		}

		logger.Info().Str("provider", e.Plugin.Name()).Msg("economy disabled")
		server.DisablePlugin(plugin)
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "heal",
		Description: "Heal and feed yourself or another player for a fee.",
		Usage:       "/heal [player]",
		Handler:     plugin.handleHeal,
	})

	return nil
}

// Disable implements mcc.Plugin.
func (plugin *Plugin) Disable(server *mcc.Server) {
	plugin.handler = nil
	plugin.provider = nil
}

func (plugin *Plugin) handleHeal(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	return plugin.handler.Handle(sender, args).Handled()
}
