// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package economy

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS Accounts(
Name TEXT NOT NULL PRIMARY KEY COLLATE NOCASE,
Balance REAL NOT NULL DEFAULT 0);`

// Account is a row of the account table.
type Account struct {
	Name    string  `db:"Name"`
	Balance float64 `db:"Balance"`
}

// Store is an Economy backed by an SQLite database.
type Store struct {
	db        *sqlx.DB
	formatter *Formatter
}

var _ Economy = (*Store)(nil)

// Open opens the account database at path, creating it if needed.
// A nil formatter selects the default currency format.
func Open(path string, formatter *Formatter) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("economy: open %s: %w", path, err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("economy: create schema: %w", err)
	}

	if formatter == nil {
		formatter = DefaultFormatter()
	}

	return &Store{db, formatter}, nil
}

// Close closes the database.
func (store *Store) Close() error {
	return store.db.Close()
}

// Format implements Economy.
func (store *Store) Format(amount float64) string {
	return store.formatter.Format(amount)
}

// Balance implements Economy.
func (store *Store) Balance(name string) (float64, error) {
	var balance float64
	err := store.db.Get(&balance, "SELECT Balance FROM Accounts WHERE Name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("economy: balance of %s: %w", name, err)
	}

	return balance, nil
}

// HasAccount implements Economy.
func (store *Store) HasAccount(name string) (bool, error) {
	var count int
	err := store.db.Get(&count, "SELECT COUNT(*) FROM Accounts WHERE Name = ?", name)
	if err != nil {
		return false, fmt.Errorf("economy: account %s: %w", name, err)
	}

	return count > 0, nil
}

// CreateAccount implements Economy.
func (store *Store) CreateAccount(name string, initial float64) (bool, error) {
	if !validAmount(initial) {
		return false, ErrInvalidAmount
	}

	result, err := store.db.Exec(`INSERT INTO Accounts(Name, Balance) VALUES(?, ?)
		ON CONFLICT(Name) DO NOTHING`, name, initial)
	if err != nil {
		return false, fmt.Errorf("economy: create %s: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("economy: create %s: %w", name, err)
	}

	return n > 0, nil
}

// Deposit implements Economy. Missing accounts are created.
func (store *Store) Deposit(name string, amount float64) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	_, err := store.db.Exec(`INSERT INTO Accounts(Name, Balance) VALUES(?, ?)
		ON CONFLICT(Name) DO UPDATE SET Balance = Balance + excluded.Balance`, name, amount)
	if err != nil {
		return fmt.Errorf("economy: deposit to %s: %w", name, err)
	}

	return nil
}

// Withdraw implements Economy. The balance is left untouched on failure.
func (store *Store) Withdraw(name string, amount float64) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	tx, err := store.db.Beginx()
	if err != nil {
		return fmt.Errorf("economy: withdraw from %s: %w", name, err)
	}
	defer tx.Rollback()

	var balance float64
	err = tx.Get(&balance, "SELECT Balance FROM Accounts WHERE Name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		balance = 0
	} else if err != nil {
		return fmt.Errorf("economy: withdraw from %s: %w", name, err)
	}

	if balance < amount {
		return ErrInsufficientFunds
	}

	if amount == 0 {
		return nil
	}

	_, err = tx.Exec("UPDATE Accounts SET Balance = ? WHERE Name = ?", balance-amount, name)
	if err != nil {
		return fmt.Errorf("economy: withdraw from %s: %w", name, err)
	}

	return tx.Commit()
}

// SetBalance implements Economy. Missing accounts are created.
func (store *Store) SetBalance(name string, amount float64) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	_, err := store.db.Exec(`INSERT INTO Accounts(Name, Balance) VALUES(?, ?)
		ON CONFLICT(Name) DO UPDATE SET Balance = excluded.Balance`, name, amount)
	if err != nil {
		return fmt.Errorf("economy: set balance of %s: %w", name, err)
	}

	return nil
}

// Top returns the n accounts with the highest balance.
func (store *Store) Top(n int) ([]Account, error) {
	var accounts []Account
	err := store.db.Select(&accounts, `SELECT Name, Balance FROM Accounts
		ORDER BY Balance DESC, Name ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("economy: top accounts: %w", err)
	}

	return accounts, nil
}

func validAmount(amount float64) bool {
	return amount >= 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}
