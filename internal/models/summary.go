package models

import "time"

// Summary is the derived financial read model: pure projection over the
// current transaction and account snapshots, recomputed on demand.
type Summary struct {
	TotalIncome     float64            `json:"total_income"`
	TotalExpenses   float64            `json:"total_expenses"`
	NetBalance      float64            `json:"net_balance"`
	CashBalance     float64            `json:"cash_balance"`
	BankBalance     float64            `json:"bank_balance"`
	CreditCardDebt  float64            `json:"credit_card_debt"`
	AccountBalances map[string]float64 `json:"account_balances"`
}

// MonthlyTotals holds income and expense sums for one calendar month.
type MonthlyTotals struct {
	Month    time.Time `json:"month"`
	Income   float64   `json:"income"`
	Expenses float64   `json:"expenses"`
}

// BalanceCorrection records one account whose cached balance drifted from the
// value replayed out of the full transaction history.
type BalanceCorrection struct {
	AccountID   string  `json:"account_id"`
	AccountName string  `json:"account_name"`
	Stored      float64 `json:"stored"`
	Recomputed  float64 `json:"recomputed"`
}
