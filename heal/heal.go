// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

// Package heal implements /heal, which restores the health and hunger of a
// player in exchange for a fee paid from the economy.
package heal

import (
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/AndreasGoulas/paidheal/economy"
	"github.com/AndreasGoulas/paidheal/mcc"
)

// Price is the fee charged for one use of /heal.
const Price = 5.0

const (
	PermSelf   = "heal.self"
	PermOthers = "heal.others"
)

var ErrNoEconomy = errors.New("heal: no economy provider registered")

// Result is the outcome of a heal invocation.
type Result int

const (
	Applied Result = iota
	NotApplicable
	Unauthorized
	InsufficientFunds
	TargetNotFound
	UsageMismatch
	BalanceUnavailable
)

var resultNames = [...]string{
	Applied:            "applied",
	NotApplicable:      "not applicable",
	Unauthorized:       "unauthorized",
	InsufficientFunds:  "insufficient funds",
	TargetNotFound:     "target not found",
	UsageMismatch:      "usage mismatch",
	BalanceUnavailable: "balance unavailable",
}

func (result Result) String() string {
	if result < 0 || int(result) >= len(resultNames) {
		return "unknown"
	}

	return resultNames[result]
}

// Handled reports whether the invocation was handled. Only UsageMismatch
// asks the caller to print the usage of the command.
func (result Result) Handled() bool {
	return result != UsageMismatch
}

// PlayerMatcher resolves the name of an online player.
type PlayerMatcher interface {
	MatchPlayer(name string) *mcc.Player
}

// Option configures a Handler.
type Option func(*Handler)

// WithCharge makes the handler withdraw Price from the payer after a
// successful balance check. By default the balance is only compared.
func WithCharge(charge bool) Option {
	return func(handler *Handler) {
		handler.charge = charge
	}
}

// WithLogger sets the logger of the handler.
func WithLogger(logger zerolog.Logger) Option {
	return func(handler *Handler) {
		handler.log = logger
	}
}

// Handler executes /heal against a fixed economy.
type Handler struct {
	players PlayerMatcher
	economy economy.Economy
	charge  bool
	log     zerolog.Logger
}

// NewHandler returns a handler resolving targets through players and
// reading balances from econ.
func NewHandler(players PlayerMatcher, econ economy.Economy, opts ...Option) (*Handler, error) {
	if econ == nil {
		return nil, ErrNoEconomy
	}

	handler := &Handler{
		players: players,
		economy: econ,
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(handler)
	}

	return handler, nil
}

// Handle heals the sender when args is empty, or the online player named by
// args[0]. Every failure is reported to the sender as a chat message.
func (handler *Handler) Handle(sender mcc.CommandSender, args []string) Result {
	switch len(args) {
	case 0:
		return handler.healSelf(sender)
	case 1:
		return handler.healOther(sender, args[0])
	default:
		return UsageMismatch
	}
}

func (handler *Handler) healSelf(sender mcc.CommandSender) Result {
	actor, ok := sender.(mcc.Living)
	if !ok {
		sender.SendMessage(mcc.ColorRed + "Only a player has health!")
		return NotApplicable
	}

	if !actor.HasPermission(PermSelf) {
		actor.SendMessage(mcc.ColorRed + "You do not have permission to do that!")
		return Unauthorized
	}

	if result := handler.afford(actor); result != Applied {
		return result
	}

	if result := handler.withdraw(actor); result != Applied {
		return result
	}

	restore(actor)
	actor.SendMessage(mcc.ColorGreen + "You have been fed and healed!")
	handler.log.Info().Str("actor", actor.Name()).Msg("healed self")
	return Applied
}

func (handler *Handler) healOther(sender mcc.CommandSender, name string) Result {
	if !sender.HasPermission(PermOthers) {
		sender.SendMessage(mcc.ColorRed + "You do not have permission to do that!")
		return Unauthorized
	}

	actor, ok := sender.(mcc.Living)
	if !ok {
		sender.SendMessage(mcc.ColorRed + "Only a player can pay for healing!")
		return NotApplicable
	}

	if result := handler.afford(actor); result != Applied {
		return result
	}

	target := handler.players.MatchPlayer(name)
	if target == nil {
		actor.SendMessage(mcc.ColorRed + "That player is not online!")
		return TargetNotFound
	}

	if result := handler.withdraw(actor); result != Applied {
		return result
	}

	restore(target)
	actor.SendMessage(mcc.ColorGreen + target.Name() + " was healed and fed!")
	target.SendMessage(mcc.ColorGreen + "You were healed and fed!")
	handler.log.Info().
		Str("actor", actor.Name()).
		Str("target", target.Name()).
		Msg("healed player")
	return Applied
}

// afford checks that payer can pay Price and tells them the shortfall if
// not.
func (handler *Handler) afford(payer mcc.Living) Result {
	balance, err := handler.economy.Balance(payer.Name())
	if err != nil {
		return handler.balanceUnavailable(payer, err)
	}

	if balance < Price {
		handler.insufficientFunds(payer, shortfall(balance))
		return InsufficientFunds
	}

	return Applied
}

// withdraw takes Price from payer when charging is enabled.
func (handler *Handler) withdraw(payer mcc.Living) Result {
	if !handler.charge {
		return Applied
	}

	err := handler.economy.Withdraw(payer.Name(), Price)
	if errors.Is(err, economy.ErrInsufficientFunds) {
		balance, err := handler.economy.Balance(payer.Name())
		if err != nil {
			return handler.balanceUnavailable(payer, err)
		}

		handler.insufficientFunds(payer, shortfall(balance))
		return InsufficientFunds
	} else if err != nil {
		handler.log.Error().Err(err).Str("actor", payer.Name()).Msg("withdraw")
		payer.SendMessage(mcc.ColorRed + "Your payment could not be processed, try again later!")
		return BalanceUnavailable
	}

	return Applied
}

func (handler *Handler) balanceUnavailable(payer mcc.Living, err error) Result {
	handler.log.Error().Err(err).Str("actor", payer.Name()).Msg("read balance")
	payer.SendMessage(mcc.ColorRed + "Your balance could not be read, try again later!")
	return BalanceUnavailable
}

func (handler *Handler) insufficientFunds(payer mcc.Living, amount float64) {
	payer.SendMessage(mcc.ColorRed + "You do not have enough money to use this command!")
	payer.SendMessage(mcc.ColorGreen + "You require " + mcc.ColorGold + handler.economy.Format(amount))
}

// shortfall returns Price-balance rounded up to the cent, the smallest
// amount Format displays.
func shortfall(balance float64) float64 {
	return math.Ceil((Price-balance)*100-1e-9) / 100
}

func restore(target mcc.Living) {
	target.SetHealth(target.MaxHealth())
	target.SetFoodLevel(mcc.MaxFoodLevel)
}
