package models

import "time"

// AccountType categorizes an account.
type AccountType string

const (
	AccountCash       AccountType = "cash"
	AccountBank       AccountType = "bank"
	AccountCreditCard AccountType = "credit_card"
)

// validAccountTypes lists all accepted account types.
var validAccountTypes = map[AccountType]bool{
	AccountCash:       true,
	AccountBank:       true,
	AccountCreditCard: true,
}

// ValidAccountType returns true if t is a valid account type.
func ValidAccountType(t AccountType) bool {
	return validAccountTypes[t]
}

// Account represents a money account. Balance is a denormalized cache of
// InitialBalance plus the applied effect of every transaction referencing the
// account; it is mutated only by balance reconciliation, never by an account
// field edit.
type Account struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	InitialBalance float64     `json:"initial_balance"`
	Balance        float64     `json:"balance"`
	CreditLimit    float64     `json:"credit_limit,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// AccountPatch carries partial updates for an account. Balance is deliberately
// absent: stored balances change only through reconciliation.
type AccountPatch struct {
	Name           *string      `json:"name,omitempty"`
	Type           *AccountType `json:"type,omitempty"`
	InitialBalance *float64     `json:"initial_balance,omitempty"`
	CreditLimit    *float64     `json:"credit_limit,omitempty"`
}
