// Package category manages the per-type category registry and keeps
// transaction labels in sync with it.
package category

import (
	"context"
	"strings"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/models"
)

// Compile-time interface check
var _ interfaces.CategoryService = (*Service)(nil)

// Service implements CategoryService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new category service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// transactionTypeFor maps a category type to the transaction type it labels.
func transactionTypeFor(t models.CategoryType) models.TransactionType {
	if t == models.CategoryIncome {
		return models.TxIncome
	}
	return models.TxExpense
}

// ListCategories returns the category names registered for a type.
func (s *Service) ListCategories(ctx context.Context, categoryType models.CategoryType) ([]string, error) {
	if !models.ValidCategoryType(categoryType) {
		return nil, models.NewValidationError("invalid category type %q; must be income or expense", categoryType)
	}
	return s.storage.CategoryStore().List(ctx, categoryType)
}

// AddCategory registers a new name, rejecting duplicates within the type.
func (s *Service) AddCategory(ctx context.Context, categoryType models.CategoryType, name string) error {
	if !models.ValidCategoryType(categoryType) {
		return models.NewValidationError("invalid category type %q; must be income or expense", categoryType)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("category name is required")
	}

	existing, err := s.storage.CategoryStore().List(ctx, categoryType)
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c == name {
			return models.NewConflictError("category %q already exists for type %s", name, categoryType)
		}
	}

	if err := s.storage.CategoryStore().Add(ctx, categoryType, name); err != nil {
		return err
	}

	s.logger.Info().Str("type", string(categoryType)).Str("name", name).Msg("Category added")
	return nil
}

// RenameCategory renames a registry entry and cascades the new name onto
// every transaction of the same type still carrying the old one.
func (s *Service) RenameCategory(ctx context.Context, categoryType models.CategoryType, oldName, newName string) error {
	if !models.ValidCategoryType(categoryType) {
		return models.NewValidationError("invalid category type %q; must be income or expense", categoryType)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return models.NewValidationError("new category name is required")
	}

	existing, err := s.storage.CategoryStore().List(ctx, categoryType)
	if err != nil {
		return err
	}
	found := false
	for _, c := range existing {
		if c == oldName {
			found = true
		}
		if c == newName && oldName != newName {
			return models.NewConflictError("category %q already exists for type %s", newName, categoryType)
		}
	}
	if !found {
		return models.NewNotFoundError("category %q not found for type %s", oldName, categoryType)
	}
	if oldName == newName {
		return nil
	}

	if err := s.storage.CategoryStore().Rename(ctx, categoryType, oldName, newName); err != nil {
		return err
	}

	// Cascade to transactions of the same type only; an income category and
	// an expense category may share a name.
	txType := transactionTypeFor(categoryType)
	transactions, err := s.storage.LedgerStore().ListAll(ctx)
	if err != nil {
		return err
	}
	renamed := 0
	for _, tx := range transactions {
		if tx.Type != txType || tx.Category != oldName {
			continue
		}
		tx.Category = newName
		if err := s.storage.LedgerStore().Update(ctx, tx); err != nil {
			return err
		}
		renamed++
	}

	s.logger.Info().Str("type", string(categoryType)).
		Str("old", oldName).Str("new", newName).Int("transactions", renamed).
		Msg("Category renamed")
	return nil
}

// RemoveCategory deletes a registry entry, refusing while any transaction of
// the same type still references it.
func (s *Service) RemoveCategory(ctx context.Context, categoryType models.CategoryType, name string) error {
	if !models.ValidCategoryType(categoryType) {
		return models.NewValidationError("invalid category type %q; must be income or expense", categoryType)
	}

	existing, err := s.storage.CategoryStore().List(ctx, categoryType)
	if err != nil {
		return err
	}
	found := false
	for _, c := range existing {
		if c == name {
			found = true
			break
		}
	}
	if !found {
		return models.NewNotFoundError("category %q not found for type %s", name, categoryType)
	}

	txType := transactionTypeFor(categoryType)
	transactions, err := s.storage.LedgerStore().ListAll(ctx)
	if err != nil {
		return err
	}
	for _, tx := range transactions {
		if tx.Type == txType && tx.Category == name {
			return models.NewConflictError("category %q has transactions and cannot be deleted", name)
		}
	}

	if err := s.storage.CategoryStore().Remove(ctx, categoryType, name); err != nil {
		return err
	}

	s.logger.Info().Str("type", string(categoryType)).Str("name", name).Msg("Category removed")
	return nil
}
