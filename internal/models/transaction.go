package models

import "time"

// TransactionType categorizes the direction of a transaction.
type TransactionType string

const (
	TxIncome   TransactionType = "income"
	TxExpense  TransactionType = "expense"
	TxTransfer TransactionType = "transfer"
)

// TransferCategory is the fixed category label assigned to transfers.
const TransferCategory = "Transferencia"

// validTransactionTypes lists all accepted transaction types.
var validTransactionTypes = map[TransactionType]bool{
	TxIncome:   true,
	TxExpense:  true,
	TxTransfer: true,
}

// ValidTransactionType returns true if t is a valid transaction type.
func ValidTransactionType(t TransactionType) bool {
	return validTransactionTypes[t]
}

// Transaction represents a single ledger entry. For transfers, Account is the
// source and ToAccount the destination; for income/expense only Account is set.
type Transaction struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	Account   string          `json:"account"`
	ToAccount string          `json:"to_account,omitempty"`
	Amount    float64         `json:"amount"`
	Detail    string          `json:"detail,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionPatch carries partial updates for a transaction. Nil fields
// retain the stored value.
type TransactionPatch struct {
	Date      *time.Time       `json:"date,omitempty"`
	Type      *TransactionType `json:"type,omitempty"`
	Category  *string          `json:"category,omitempty"`
	Account   *string          `json:"account,omitempty"`
	ToAccount *string          `json:"to_account,omitempty"`
	Amount    *float64         `json:"amount,omitempty"`
	Detail    *string          `json:"detail,omitempty"`
}

// Merge applies the patch onto tx field-by-field, leaving absent fields alone.
func (p TransactionPatch) Merge(tx Transaction) Transaction {
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Account != nil {
		tx.Account = *p.Account
	}
	if p.ToAccount != nil {
		tx.ToAccount = *p.ToAccount
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Detail != nil {
		tx.Detail = *p.Detail
	}
	return tx
}

// References returns true if the transaction touches the given account,
// either as source or transfer destination.
func (t Transaction) References(accountID string) bool {
	return t.Account == accountID || t.ToAccount == accountID
}
