package ledger

import (
	"context"

	"github.com/matiasrojas/guarani/internal/models"
)

// Application sign: forward counts the transaction, inverse undoes it as if
// it never happened. Applying both for the same transaction restores every
// touched balance exactly.
const (
	signForward = 1
	signInverse = -1
)

// applyEffect adjusts account balances for one transaction. Income adds
// sign*amount to the account, expense subtracts it, a transfer moves it from
// source to destination. A referenced account that no longer resolves is
// reported as a warning and skipped rather than aborting the mutation; the
// recovery pass (RecomputeBalances) repairs any drift this leaves behind.
func (s *Service) applyEffect(ctx context.Context, tx models.Transaction, sign int) ([]models.ReconciliationWarning, error) {
	accounts := s.storage.AccountStore()
	signed := float64(sign) * tx.Amount

	var sourceDelta float64
	switch tx.Type {
	case models.TxIncome:
		sourceDelta = signed
	case models.TxExpense:
		sourceDelta = -signed
	case models.TxTransfer:
		sourceDelta = -signed
	default:
		return nil, nil
	}

	var warnings []models.ReconciliationWarning

	source, err := accounts.FindByID(ctx, tx.Account)
	if err != nil {
		if !models.IsKind(err, models.KindNotFound) {
			return nil, err
		}
		w := models.ReconciliationWarning{
			TransactionID: tx.ID,
			AccountID:     tx.Account,
			Side:          "source",
			Delta:         sourceDelta,
		}
		warnings = append(warnings, w)
		s.logger.Warn().Str("transaction", tx.ID).Str("account", tx.Account).
			Str("side", "source").Float64("delta", sourceDelta).
			Msg("Balance adjustment skipped: account not found")
		// Nothing to anchor the transfer against; the destination side is
		// skipped as well.
		return warnings, nil
	}

	if err := accounts.SetBalance(ctx, source.ID, source.Balance+sourceDelta); err != nil {
		return warnings, err
	}

	if tx.Type != models.TxTransfer {
		return warnings, nil
	}

	dest, err := accounts.FindByID(ctx, tx.ToAccount)
	if err != nil {
		if !models.IsKind(err, models.KindNotFound) {
			return warnings, err
		}
		w := models.ReconciliationWarning{
			TransactionID: tx.ID,
			AccountID:     tx.ToAccount,
			Side:          "destination",
			Delta:         signed,
		}
		warnings = append(warnings, w)
		s.logger.Warn().Str("transaction", tx.ID).Str("account", tx.ToAccount).
			Str("side", "destination").Float64("delta", signed).
			Msg("Balance adjustment skipped: account not found")
		return warnings, nil
	}

	if err := accounts.SetBalance(ctx, dest.ID, dest.Balance+signed); err != nil {
		return warnings, err
	}

	return warnings, nil
}

// RecomputeBalances replays the full transaction history against each
// account's initial balance and overwrites any cached balance that drifted.
// This is the recovery path for a mutation interrupted between its inverse
// and forward apply steps.
func (s *Service) RecomputeBalances(ctx context.Context) ([]models.BalanceCorrection, error) {
	accounts, err := s.storage.AccountStore().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.storage.LedgerStore().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	recomputed := make(map[string]float64, len(accounts))
	for _, a := range accounts {
		recomputed[a.ID] = a.InitialBalance
	}

	for _, tx := range transactions {
		switch tx.Type {
		case models.TxIncome:
			if _, ok := recomputed[tx.Account]; ok {
				recomputed[tx.Account] += tx.Amount
			}
		case models.TxExpense:
			if _, ok := recomputed[tx.Account]; ok {
				recomputed[tx.Account] -= tx.Amount
			}
		case models.TxTransfer:
			if _, ok := recomputed[tx.Account]; ok {
				recomputed[tx.Account] -= tx.Amount
			}
			if _, ok := recomputed[tx.ToAccount]; ok {
				recomputed[tx.ToAccount] += tx.Amount
			}
		}
	}

	var corrections []models.BalanceCorrection
	for _, a := range accounts {
		want := recomputed[a.ID]
		if want == a.Balance {
			continue
		}
		if err := s.storage.AccountStore().SetBalance(ctx, a.ID, want); err != nil {
			return corrections, err
		}
		corrections = append(corrections, models.BalanceCorrection{
			AccountID:   a.ID,
			AccountName: a.Name,
			Stored:      a.Balance,
			Recomputed:  want,
		})
		s.logger.Warn().Str("account", a.ID).Str("name", a.Name).
			Float64("stored", a.Balance).Float64("recomputed", want).
			Msg("Account balance repaired")
	}

	if len(corrections) == 0 {
		s.logger.Info().Int("accounts", len(accounts)).Msg("Balance recomputation found no drift")
	}
	return corrections, nil
}
