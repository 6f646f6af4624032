// Package storage provides the top-level StorageManager with pluggable
// backends: a local BadgerHold database or a Google Sheets spreadsheet.
package storage

import (
	"context"
	"fmt"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/storage/ledgerdb"
	"github.com/matiasrojas/guarani/internal/storage/sheetsdb"
)

// Manager implements interfaces.StorageManager over the configured backend.
type Manager struct {
	ledger     interfaces.LedgerStore
	accounts   interfaces.AccountStore
	categories interfaces.CategoryStore
	closer     func() error
	logger     *common.Logger
}

// NewManager creates a StorageManager for the backend named in the config.
// Supported backends: "badger" (default, local) and "sheets".
func NewManager(ctx context.Context, logger *common.Logger, config *common.Config) (*Manager, error) {
	backend := config.Storage.Backend
	if backend == "" {
		backend = common.BackendBadger
	}

	switch backend {
	case common.BackendBadger:
		store, err := ledgerdb.NewStore(logger, config.Storage.Badger.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger storage: %w", err)
		}
		logger.Info().Str("backend", backend).Str("path", config.Storage.Badger.Path).Msg("Storage manager initialized")
		return &Manager{
			ledger:     store,
			accounts:   store.Accounts(),
			categories: store.Categories(),
			closer:     store.Close,
			logger:     logger,
		}, nil

	case common.BackendSheets:
		store, err := sheetsdb.NewStore(ctx, logger, &config.Storage.Sheets)
		if err != nil {
			return nil, fmt.Errorf("failed to connect sheets storage: %w", err)
		}
		if err := store.EnsureLayout(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare spreadsheet layout: %w", err)
		}
		logger.Info().Str("backend", backend).Str("spreadsheet_id", config.Storage.Sheets.SpreadsheetID).Msg("Storage manager initialized")
		return &Manager{
			ledger:     store,
			accounts:   store.Accounts(),
			categories: store.Categories(),
			closer:     store.Close,
			logger:     logger,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: %s, %s)",
			backend, common.BackendBadger, common.BackendSheets)
	}
}

func (m *Manager) LedgerStore() interfaces.LedgerStore { return m.ledger }

func (m *Manager) AccountStore() interfaces.AccountStore { return m.accounts }

func (m *Manager) CategoryStore() interfaces.CategoryStore { return m.categories }

// Close releases the backend. Safe to call more than once.
func (m *Manager) Close() error {
	if m.closer == nil {
		return nil
	}
	err := m.closer()
	m.closer = nil
	return err
}

var _ interfaces.StorageManager = (*Manager)(nil)
