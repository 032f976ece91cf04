// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account with the requested id is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountsNotFound indicates that there are no accounts at all.
	ErrAccountsNotFound = errors.New("no accounts found")
	// ErrInvalidAmount indicates that the amount is missing, zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidHolderName indicates that the account holder name is empty.
	ErrInvalidHolderName = errors.New("holder name must not be empty")
)

// Account holds a holder's named balance.
type Account struct {
	ID         int64           `json:"id"`
	HolderName string          `json:"holderName"`
	Balance    decimal.Decimal `json:"balance"` // never negative
}
