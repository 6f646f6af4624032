// Package ledgerdb implements the ledger, account, and category stores on a
// single BadgerHold database.
package ledgerdb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/models"
)

// Store implements interfaces.LedgerStore, interfaces.AccountStore and
// interfaces.CategoryStore over one BadgerHold database. All three views
// share the underlying handle; Close is idempotent across them.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
	closed bool
}

// NewStore opens (or creates) the database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledgerdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledgerdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("LedgerDB opened")
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// --- LedgerStore ---

func (s *Store) ListAll(_ context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Find(&txs, nil); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs, nil
}

func (s *Store) Append(_ context.Context, tx models.Transaction) error {
	if err := s.db.Insert(tx.ID, tx); err != nil {
		if err == badgerhold.ErrKeyExists {
			return models.NewConflictError("transaction '%s' already exists", tx.ID)
		}
		return fmt.Errorf("failed to store transaction '%s': %w", tx.ID, err)
	}
	return nil
}

func (s *Store) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Get(id, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.NewNotFoundError("transaction '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	return &tx, nil
}

func (s *Store) Update(_ context.Context, tx models.Transaction) error {
	if err := s.db.Update(tx.ID, tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.NewNotFoundError("transaction '%s' not found", tx.ID)
		}
		return fmt.Errorf("failed to update transaction '%s': %w", tx.ID, err)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Transaction{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.NewNotFoundError("transaction '%s' not found", id)
		}
		return fmt.Errorf("failed to delete transaction '%s': %w", id, err)
	}
	return nil
}

// --- AccountStore ---

// AccountView exposes the account half of the store under its own Close.
type AccountView struct{ *Store }

func (s *Store) Accounts() *AccountView { return &AccountView{s} }

func (v *AccountView) ListAll(_ context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := v.db.Find(&accounts, nil); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (v *AccountView) FindByID(_ context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := v.db.Get(id, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.NewNotFoundError("account '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get account '%s': %w", id, err)
	}
	return &account, nil
}

func (v *AccountView) Save(_ context.Context, account models.Account) error {
	if err := v.db.Upsert(account.ID, account); err != nil {
		return fmt.Errorf("failed to save account '%s': %w", account.ID, err)
	}
	return nil
}

func (v *AccountView) SetBalance(ctx context.Context, id string, balance float64) error {
	account, err := v.FindByID(ctx, id)
	if err != nil {
		return err
	}
	account.Balance = balance
	account.UpdatedAt = time.Now()
	if err := v.db.Update(id, *account); err != nil {
		return fmt.Errorf("failed to set balance for account '%s': %w", id, err)
	}
	return nil
}

func (v *AccountView) Remove(_ context.Context, id string) error {
	if err := v.db.Delete(id, models.Account{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.NewNotFoundError("account '%s' not found", id)
		}
		return fmt.Errorf("failed to delete account '%s': %w", id, err)
	}
	return nil
}

// --- CategoryStore ---

// categoryRecord is the stored form of one registry entry. The key is
// type + \x00 + name so names only collide within their own type.
type categoryRecord struct {
	Type      models.CategoryType
	Name      string
	CreatedAt time.Time
}

const keySep = "\x00"

func categoryKey(t models.CategoryType, name string) string {
	return string(t) + keySep + name
}

// CategoryView exposes the category registry half of the store.
type CategoryView struct{ *Store }

func (s *Store) Categories() *CategoryView { return &CategoryView{s} }

func (v *CategoryView) List(_ context.Context, categoryType models.CategoryType) ([]string, error) {
	var records []categoryRecord
	if err := v.db.Find(&records, badgerhold.Where("Type").Eq(categoryType)); err != nil {
		return nil, fmt.Errorf("failed to list %s categories: %w", categoryType, err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	return names, nil
}

func (v *CategoryView) Add(_ context.Context, categoryType models.CategoryType, name string) error {
	rec := categoryRecord{Type: categoryType, Name: name, CreatedAt: time.Now()}
	if err := v.db.Insert(categoryKey(categoryType, name), rec); err != nil {
		if err == badgerhold.ErrKeyExists {
			return models.NewConflictError("category '%s' already exists", name)
		}
		return fmt.Errorf("failed to add category '%s': %w", name, err)
	}
	return nil
}

func (v *CategoryView) Rename(ctx context.Context, categoryType models.CategoryType, oldName, newName string) error {
	var rec categoryRecord
	if err := v.db.Get(categoryKey(categoryType, oldName), &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.NewNotFoundError("category '%s' not found", oldName)
		}
		return fmt.Errorf("failed to get category '%s': %w", oldName, err)
	}
	// Insert under the new key first so a crash never loses the entry.
	renamed := categoryRecord{Type: categoryType, Name: newName, CreatedAt: rec.CreatedAt}
	if err := v.db.Upsert(categoryKey(categoryType, newName), renamed); err != nil {
		return fmt.Errorf("failed to rename category '%s': %w", oldName, err)
	}
	if err := v.db.Delete(categoryKey(categoryType, oldName), categoryRecord{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to remove old category '%s': %w", oldName, err)
	}
	return nil
}

func (v *CategoryView) Remove(_ context.Context, categoryType models.CategoryType, name string) error {
	if err := v.db.Delete(categoryKey(categoryType, name), categoryRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.NewNotFoundError("category '%s' not found", name)
		}
		return fmt.Errorf("failed to delete category '%s': %w", name, err)
	}
	return nil
}
