// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

// Package economy provides player accounts backed by SQLite and publishes
// them to other plugins through the server service registry.
package economy

import (
	"errors"

	"github.com/AndreasGoulas/paidheal/mcc"
)

// ServiceName is the name the economy is registered under.
const ServiceName = "economy"

var (
	ErrInsufficientFunds = errors.New("economy: insufficient funds")
	ErrInvalidAmount     = errors.New("economy: invalid amount")
)

// Economy is the interface implemented by economy providers.
// Accounts are identified by player name, ignoring case.
type Economy interface {
	// Balance returns the balance of the account. Unknown accounts have a
	// balance of zero.
	Balance(name string) (float64, error)

	// Format returns amount formatted for display.
	Format(amount float64) string

	HasAccount(name string) (bool, error)

	// CreateAccount creates the account with the initial balance. It reports
	// false if the account already exists.
	CreateAccount(name string, initial float64) (bool, error)

	Deposit(name string, amount float64) error

	// Withdraw fails with ErrInsufficientFunds if the balance is lower than
	// amount.
	Withdraw(name string, amount float64) error

	SetBalance(name string, amount float64) error
}

// Lookup returns the economy registered with server, if any.
func Lookup(server *mcc.Server) (Economy, bool) {
	econ, ok := server.Services().Provider(ServiceName).(Economy)
	return econ, ok && econ != nil
}
