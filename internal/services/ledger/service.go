// Package ledger sequences transaction mutations against the ledger and
// account stores so cached balances stay consistent with the transaction
// history, including edits that change a transaction's type or accounts.
package ledger

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerService = (*Service)(nil)

// Service implements LedgerService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new ledger service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// newTransactionID returns a unique transaction identifier.
func newTransactionID() string {
	return "tx_" + uuid.NewString()
}

// normalizeTransaction trims free text and enforces the per-type field rules:
// transfers always carry the fixed transfer category, income and expense
// never carry a destination account.
func normalizeTransaction(tx models.Transaction) models.Transaction {
	tx.Category = strings.TrimSpace(tx.Category)
	tx.Account = strings.TrimSpace(tx.Account)
	tx.ToAccount = strings.TrimSpace(tx.ToAccount)
	tx.Detail = strings.TrimSpace(tx.Detail)

	if tx.Type == models.TxTransfer {
		tx.Category = models.TransferCategory
	} else {
		tx.ToAccount = ""
	}
	return tx
}

// validateTransaction checks that a transaction has valid field values.
// Runs before any mutation so a rejection has zero side effects.
func validateTransaction(tx models.Transaction) error {
	if !models.ValidTransactionType(tx.Type) {
		return models.NewValidationError("invalid transaction type %q; must be income, expense, or transfer", tx.Type)
	}
	if tx.Date.IsZero() {
		return models.NewValidationError("date is required")
	}
	if tx.Account == "" {
		return models.NewValidationError("account is required")
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return models.NewValidationError("amount must be a finite number")
	}
	if tx.Amount < 0 {
		return models.NewValidationError("amount must not be negative")
	}
	if tx.Type != models.TxTransfer && tx.Category == "" {
		return models.NewValidationError("category is required for %s transactions", tx.Type)
	}
	if tx.Type == models.TxTransfer {
		if tx.ToAccount == "" {
			return models.NewValidationError("destination account is required for transfers")
		}
		if tx.ToAccount == tx.Account {
			return models.NewValidationError("transfer source and destination accounts must differ")
		}
	}
	return nil
}

// ListTransactions returns every transaction, newest-first by date.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.storage.LedgerStore().ListAll(ctx)
}

// CreateTransaction validates the draft, appends it to the ledger, and
// forward-applies its balance effect.
func (s *Service) CreateTransaction(ctx context.Context, draft models.Transaction) (*models.Transaction, []models.ReconciliationWarning, error) {
	tx := normalizeTransaction(draft)
	if err := validateTransaction(tx); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	tx.ID = newTransactionID()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.storage.LedgerStore().Append(ctx, tx); err != nil {
		return nil, nil, err
	}

	warnings, err := s.applyEffect(ctx, tx, signForward)
	if err != nil {
		return nil, warnings, err
	}

	s.logger.Info().Str("id", tx.ID).Str("type", string(tx.Type)).
		Str("account", tx.Account).Float64("amount", tx.Amount).
		Msg("Transaction created")
	return &tx, warnings, nil
}

// UpdateTransaction merges the patch onto the stored transaction and swaps
// the old balance effect for the new one: inverse-apply the stored record,
// persist the merged record, forward-apply the merged record. The accounts
// end up reflecting exactly the merged transaction, no matter how its type,
// amount, or accounts changed.
func (s *Service) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (*models.Transaction, []models.ReconciliationWarning, error) {
	existing, err := s.storage.LedgerStore().FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	merged := normalizeTransaction(patch.Merge(*existing))
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	if err := validateTransaction(merged); err != nil {
		return nil, nil, err
	}
	merged.UpdatedAt = time.Now()

	warnings, err := s.applyEffect(ctx, *existing, signInverse)
	if err != nil {
		return nil, warnings, err
	}

	if err := s.storage.LedgerStore().Update(ctx, merged); err != nil {
		return nil, warnings, err
	}

	forward, err := s.applyEffect(ctx, merged, signForward)
	warnings = append(warnings, forward...)
	if err != nil {
		return nil, warnings, err
	}

	s.logger.Info().Str("id", id).Str("type", string(merged.Type)).
		Float64("amount", merged.Amount).Msg("Transaction updated")
	return &merged, warnings, nil
}

// DeleteTransaction inverse-applies the stored effect, then removes the
// record from the ledger.
func (s *Service) DeleteTransaction(ctx context.Context, id string) ([]models.ReconciliationWarning, error) {
	existing, err := s.storage.LedgerStore().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	warnings, err := s.applyEffect(ctx, *existing, signInverse)
	if err != nil {
		return warnings, err
	}

	if err := s.storage.LedgerStore().Remove(ctx, id); err != nil {
		return warnings, err
	}

	s.logger.Info().Str("id", id).Msg("Transaction deleted")
	return warnings, nil
}
