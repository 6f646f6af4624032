// Package report derives read models from the current transaction and
// account snapshots: the financial summary, category breakdowns, monthly
// totals, and chart renderings. Nothing here is persisted; every call
// recomputes from the stores.
package report

import (
	"context"
	"time"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/models"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// Service implements ReportService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new report service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Summary computes the financial summary projection. Credit-card debt is the
// positive magnitude of the negative portion of credit-card balances; a card
// carrying a positive balance contributes nothing to debt.
func (s *Service) Summary(ctx context.Context) (*models.Summary, error) {
	transactions, err := s.storage.LedgerStore().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.storage.AccountStore().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.Summary{
		AccountBalances: make(map[string]float64, len(accounts)),
	}

	for _, tx := range transactions {
		switch tx.Type {
		case models.TxIncome:
			summary.TotalIncome += tx.Amount
		case models.TxExpense:
			summary.TotalExpenses += tx.Amount
		}
	}
	summary.NetBalance = summary.TotalIncome - summary.TotalExpenses

	for _, a := range accounts {
		summary.AccountBalances[a.ID] = a.Balance
		switch a.Type {
		case models.AccountCash:
			summary.CashBalance += a.Balance
		case models.AccountBank:
			summary.BankBalance += a.Balance
		case models.AccountCreditCard:
			if a.Balance < 0 {
				summary.CreditCardDebt += -a.Balance
			}
		}
	}

	return summary, nil
}

// CategoryBreakdown sums transaction amounts per category for one type.
func (s *Service) CategoryBreakdown(ctx context.Context, categoryType models.CategoryType) (map[string]float64, error) {
	if !models.ValidCategoryType(categoryType) {
		return nil, models.NewValidationError("invalid category type %q; must be income or expense", categoryType)
	}

	txType := models.TxExpense
	if categoryType == models.CategoryIncome {
		txType = models.TxIncome
	}

	transactions, err := s.storage.LedgerStore().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Type == txType {
			breakdown[tx.Category] += tx.Amount
		}
	}
	return breakdown, nil
}

// MonthlyTotals returns per-month income and expense sums for the most
// recent months, oldest first. Months without activity are included as
// zeros so chart axes stay contiguous.
func (s *Service) MonthlyTotals(ctx context.Context, months int) ([]models.MonthlyTotals, error) {
	if months <= 0 {
		months = 6
	}

	transactions, err := s.storage.LedgerStore().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	out := make([]models.MonthlyTotals, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		month := first.AddDate(0, i, 0)
		out[i] = models.MonthlyTotals{Month: month}
		index[month.Format("2006-01")] = i
	}

	for _, tx := range transactions {
		i, ok := index[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch tx.Type {
		case models.TxIncome:
			out[i].Income += tx.Amount
		case models.TxExpense:
			out[i].Expenses += tx.Amount
		}
	}

	return out, nil
}
