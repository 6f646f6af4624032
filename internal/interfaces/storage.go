// Package interfaces defines service contracts for Guarani
package interfaces

import (
	"context"

	"github.com/matiasrojas/guarani/internal/models"
)

// StorageManager coordinates the storage backends behind a single handle.
// Services receive a StorageManager at construction instead of reaching for
// globals, so tests can substitute doubles per store.
type StorageManager interface {
	LedgerStore() LedgerStore
	AccountStore() AccountStore
	CategoryStore() CategoryStore

	Close() error
}

// LedgerStore owns the ordered collection of transactions.
type LedgerStore interface {
	// ListAll returns every transaction, newest-first by date.
	ListAll(ctx context.Context) ([]models.Transaction, error)
	Append(ctx context.Context, tx models.Transaction) error
	FindByID(ctx context.Context, id string) (*models.Transaction, error)
	Update(ctx context.Context, tx models.Transaction) error
	Remove(ctx context.Context, id string) error
	Close() error
}

// AccountStore owns accounts and their cached balances.
type AccountStore interface {
	ListAll(ctx context.Context) ([]models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Save(ctx context.Context, account models.Account) error
	// SetBalance overwrites only the cached balance field of the account.
	SetBalance(ctx context.Context, id string, balance float64) error
	Remove(ctx context.Context, id string) error
	Close() error
}

// CategoryStore owns the (type, name) category registry. Name uniqueness
// within a type is enforced by the category service, not the store.
type CategoryStore interface {
	List(ctx context.Context, categoryType models.CategoryType) ([]string, error)
	Add(ctx context.Context, categoryType models.CategoryType, name string) error
	Rename(ctx context.Context, categoryType models.CategoryType, oldName, newName string) error
	Remove(ctx context.Context, categoryType models.CategoryType, name string) error
	Close() error
}
