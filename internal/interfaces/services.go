package interfaces

import (
	"context"

	"github.com/matiasrojas/guarani/internal/models"
)

// LedgerService sequences transaction mutations so account balances stay
// consistent with the ledger. Returned warnings report balance adjustments
// that were skipped because a referenced account no longer resolves.
type LedgerService interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, draft models.Transaction) (*models.Transaction, []models.ReconciliationWarning, error)
	UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (*models.Transaction, []models.ReconciliationWarning, error)
	DeleteTransaction(ctx context.Context, id string) ([]models.ReconciliationWarning, error)
	// RecomputeBalances replays the full transaction history against each
	// account's initial balance and repairs drifted caches. Recovery path
	// for interrupted mutations.
	RecomputeBalances(ctx context.Context) ([]models.BalanceCorrection, error)
}

// AccountService manages accounts.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	CreateAccount(ctx context.Context, draft models.Account) (*models.Account, error)
	UpdateAccount(ctx context.Context, id string, patch models.AccountPatch) (*models.Account, error)
	// DeleteAccount refuses with a conflict error while any transaction
	// references the account.
	DeleteAccount(ctx context.Context, id string) error
}

// CategoryService manages the per-type category registry.
type CategoryService interface {
	ListCategories(ctx context.Context, categoryType models.CategoryType) ([]string, error)
	AddCategory(ctx context.Context, categoryType models.CategoryType, name string) error
	// RenameCategory cascades the rename to every transaction of the same
	// type carrying the old name.
	RenameCategory(ctx context.Context, categoryType models.CategoryType, oldName, newName string) error
	// RemoveCategory refuses with a conflict error while any transaction
	// references the category.
	RemoveCategory(ctx context.Context, categoryType models.CategoryType, name string) error
}

// ReportService derives read models and charts from the current snapshots.
type ReportService interface {
	Summary(ctx context.Context) (*models.Summary, error)
	CategoryBreakdown(ctx context.Context, categoryType models.CategoryType) (map[string]float64, error)
	MonthlyTotals(ctx context.Context, months int) ([]models.MonthlyTotals, error)
	RenderExpenseChart(ctx context.Context) ([]byte, error)
	RenderMonthlyChart(ctx context.Context) ([]byte, error)
}

// AdvisorService answers natural-language questions over the ledger.
type AdvisorService interface {
	Ask(ctx context.Context, message string) (string, error)
}

// GeminiClient generates AI content.
type GeminiClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Close() error
}
