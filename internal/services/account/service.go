// Package account manages money accounts and guards the referential rules
// around them.
package account

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
var _ interfaces.AccountService = (*Service)(nil)

// Service implements AccountService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new account service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// newAccountID returns a unique account identifier.
func newAccountID() string {
	return "acc_" + uuid.NewString()
}

// ListAccounts returns all accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.storage.AccountStore().ListAll(ctx)
}

// GetAccount retrieves one account by identifier.
func (s *Service) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.storage.AccountStore().FindByID(ctx, id)
}

// CreateAccount validates and persists a new account. The cached balance
// starts at the initial balance; from here on only reconciliation moves it.
func (s *Service) CreateAccount(ctx context.Context, draft models.Account) (*models.Account, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return nil, models.NewValidationError("account name is required")
	}
	if !models.ValidAccountType(draft.Type) {
		return nil, models.NewValidationError("invalid account type %q; must be cash, bank, or credit_card", draft.Type)
	}
	if math.IsNaN(draft.InitialBalance) || math.IsInf(draft.InitialBalance, 0) {
		return nil, models.NewValidationError("initial balance must be a finite number")
	}
	if draft.CreditLimit != 0 && draft.Type != models.AccountCreditCard {
		return nil, models.NewValidationError("credit limit applies only to credit_card accounts")
	}

	now := time.Now()
	draft.ID = newAccountID()
	draft.Balance = draft.InitialBalance
	draft.CreatedAt = now
	draft.UpdatedAt = now

	if err := s.storage.AccountStore().Save(ctx, draft); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", draft.ID).Str("name", draft.Name).
		Str("type", string(draft.Type)).Float64("initial", draft.InitialBalance).
		Msg("Account created")
	return &draft, nil
}

// UpdateAccount edits name, type, or credit limit. The initial balance is
// set once at creation and the cached balance is never edited here; balance
// changes flow only through the reconciler.
func (s *Service) UpdateAccount(ctx context.Context, id string, patch models.AccountPatch) (*models.Account, error) {
	existing, err := s.storage.AccountStore().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.InitialBalance != nil {
		return nil, models.NewValidationError("initial balance is set once at creation")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, models.NewValidationError("account name must not be empty")
		}
		existing.Name = name
	}
	if patch.Type != nil {
		if !models.ValidAccountType(*patch.Type) {
			return nil, models.NewValidationError("invalid account type %q", *patch.Type)
		}
		existing.Type = *patch.Type
	}
	if patch.CreditLimit != nil {
		if *patch.CreditLimit != 0 && existing.Type != models.AccountCreditCard {
			return nil, models.NewValidationError("credit limit applies only to credit_card accounts")
		}
		existing.CreditLimit = *patch.CreditLimit
	}
	existing.UpdatedAt = time.Now()

	if err := s.storage.AccountStore().Save(ctx, *existing); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Str("name", existing.Name).Msg("Account updated")
	return existing, nil
}

// DeleteAccount removes an account, refusing while any transaction still
// references it as source or destination.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.storage.AccountStore().FindByID(ctx, id); err != nil {
		return err
	}

	transactions, err := s.storage.LedgerStore().ListAll(ctx)
	if err != nil {
		return err
	}
	for _, tx := range transactions {
		if tx.References(id) {
			return models.NewConflictError("account %q has transactions and cannot be deleted", id)
		}
	}

	if err := s.storage.AccountStore().Remove(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Account deleted")
	return nil
}
