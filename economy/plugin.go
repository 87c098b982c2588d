// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package economy

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AndreasGoulas/paidheal/mcc"
)

const topCount = 5

// Config configures the economy plugin.
type Config struct {
	Database         string
	Locale           string
	CurrencySingular string
	CurrencyPlural   string
	StartingBalance  float64
}

// Plugin opens the account store, publishes it as the economy service and
// registers the money commands.
type Plugin struct {
	config Config
	store  *Store
	log    zerolog.Logger
}

// New returns a new economy plugin.
func New(config Config) *Plugin {
	return &Plugin{config: config}
}

// Name implements mcc.Plugin.
func (plugin *Plugin) Name() string {
	return "Economy"
}

// Store returns the account store while the plugin is enabled.
func (plugin *Plugin) Store() *Store {
	return plugin.store
}

// Enable implements mcc.Plugin.
func (plugin *Plugin) Enable(server *mcc.Server) error {
	plugin.log = server.Logger().With().Str("plugin", plugin.Name()).Logger()

	formatter := NewFormatter(plugin.config.Locale,
		plugin.config.CurrencySingular, plugin.config.CurrencyPlural)
	store, err := Open(plugin.config.Database, formatter)
	if err != nil {
		return err
	}

	plugin.store = store
	server.Services().Register(ServiceName, Economy(store), plugin)

	server.RegisterCommand(&mcc.Command{
		Name:        "balance",
		Description: "Show the balance of an account.",
		Usage:       "/balance [player]",
		Permission:  "economy.balance",
		Handler:     plugin.handleBalance,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "baltop",
		Description: "List the richest accounts.",
		Usage:       "/baltop",
		Permission:  "economy.top",
		Handler:     plugin.handleBalTop,
	})

	server.RegisterCommand(&mcc.Command{
		Name:        "eco",
		Description: "Change the balance of an account.",
		Usage:       "/eco <give|take|set> <player> <amount>",
		Permission:  "economy.admin",
		Handler:     plugin.handleEco,
	})

	server.AddHandler(mcc.EventTypePlayerJoin, plugin.handlePlayerJoin)
	return nil
}

// Disable implements mcc.Plugin.
func (plugin *Plugin) Disable(server *mcc.Server) {
	if plugin.store == nil {
		return
	}

	if err := plugin.store.Close(); err != nil {
		plugin.log.Error().Err(err).Msg("close store")
	}

	plugin.store = nil
}

func (plugin *Plugin) handlePlayerJoin(eventType mcc.EventType, event interface{}) {
	e := event.(*mcc.EventPlayerJoin)
	name := e.Player.Name()

	created, err := plugin.store.CreateAccount(name, plugin.config.StartingBalance)
	if err != nil {
		plugin.log.Error().Err(err).Str("player", name).Msg("create account")
		return
	}

	if created {
		plugin.log.Info().
			Str("player", name).
			Float64("balance", plugin.config.StartingBalance).
			Msg("account created")
	}
}

func (plugin *Plugin) handleBalance(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	var name string
	switch len(args) {
	case 0:
		if _, ok := sender.(*mcc.Player); !ok {
			sender.SendMessage("You are not a player")
			return true
		}

		name = sender.Name()

	case 1:
		name = args[0]
		if !strings.EqualFold(name, sender.Name()) && !sender.HasPermission("economy.balance.others") {
			sender.SendMessage(mcc.ColorRed + "You do not have permission to do that!")
			return true
		}

	default:
		return false
	}

	balance, err := plugin.store.Balance(name)
	if err != nil {
		plugin.log.Error().Err(err).Str("account", name).Msg("balance")
		sender.SendMessage(mcc.ColorRed + "The balance could not be read!")
		return true
	}

	sender.SendMessage("Balance of " + name + ": " + mcc.ColorGold + plugin.store.Format(balance))
	return true
}

func (plugin *Plugin) handleBalTop(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 0 {
		return false
	}

	accounts, err := plugin.store.Top(topCount)
	if err != nil {
		plugin.log.Error().Err(err).Msg("top accounts")
		sender.SendMessage(mcc.ColorRed + "The balances could not be read!")
		return true
	}

	if len(accounts) == 0 {
		sender.SendMessage("There are no accounts")
		return true
	}

	for i, account := range accounts {
		sender.SendMessage(strconv.Itoa(i+1) + ". " + account.Name + ": " +
			mcc.ColorGold + plugin.store.Format(account.Balance))
	}

	return true
}

func (plugin *Plugin) handleEco(sender mcc.CommandSender, command *mcc.Command, args []string) bool {
	if len(args) != 3 {
		return false
	}

	name := args[1]
	if !mcc.IsValidName(name) {
		sender.SendMessage(name + " is not a valid name")
		return true
	}

	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil || !validAmount(amount) {
		sender.SendMessage(args[2] + " is not a valid amount")
		return true
	}

	switch strings.ToLower(args[0]) {
	case "give":
		err = plugin.store.Deposit(name, amount)
	case "take":
		err = plugin.store.Withdraw(name, amount)
	case "set":
		err = plugin.store.SetBalance(name, amount)
	default:
		return false
	}

	if errors.Is(err, ErrInsufficientFunds) {
		sender.SendMessage(mcc.ColorRed + name + " does not have " + plugin.store.Format(amount))
		return true
	} else if err != nil {
		plugin.log.Error().Err(err).Str("account", name).Str("op", args[0]).Msg("eco")
		sender.SendMessage(mcc.ColorRed + "The balance could not be changed!")
		return true
	}

	balance, err := plugin.store.Balance(name)
	if err != nil {
		plugin.log.Error().Err(err).Str("account", name).Msg("balance")
		return true
	}

	plugin.log.Info().
		Str("sender", sender.Name()).
		Str("account", name).
		Str("op", strings.ToLower(args[0])).
		Float64("amount", amount).
		Msg("balance changed")
	sender.SendMessage("Balance of " + name + " is now " + mcc.ColorGold + plugin.store.Format(balance))
	return true
}
