package sheetsdb

import (
	"context"
	"sort"
	"time"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/models"
)

// dateLayout is the date format written to the Fecha column.
const dateLayout = "2006-01-02"

// Store implements the ledger, account, and category store interfaces over
// one spreadsheet. Every call round-trips to the Sheets API; the spreadsheet
// itself is the single source of truth.
type Store struct {
	client *client
	logger *common.Logger
}

// NewStore connects to the configured spreadsheet.
func NewStore(ctx context.Context, logger *common.Logger, config *common.SheetsConfig) (*Store, error) {
	c, err := newClient(ctx, logger, config)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("spreadsheet_id", config.SpreadsheetID).Msg("Sheets store connected")
	return &Store{client: c, logger: logger}, nil
}

// Close is a no-op; the Sheets API client holds no local resources.
func (s *Store) Close() error { return nil }

// EnsureLayout creates any missing worksheets with their header rows. Called
// once at startup before seeding.
func (s *Store) EnsureLayout(ctx context.Context) error {
	worksheets := []struct {
		title  string
		header []any
	}{
		{sheetTransactions, []any{"ID", "Fecha", "Tipo", "Categoría", "Monto", "Cuenta", "Cuenta Destino", "Detalle"}},
		{sheetAccounts, []any{"ID", "Nombre", "Tipo", "Balance Inicial", "Balance Actual", "Límite de Crédito"}},
		{sheetIncomeCategories, []any{"Categoría"}},
		{sheetExpenseCategories, []any{"Categoría"}},
	}
	for _, ws := range worksheets {
		if err := s.client.ensureWorksheet(ctx, ws.title, ws.header); err != nil {
			return err
		}
	}
	return nil
}

// --- LedgerStore ---

// Transaction row layout: ID, Fecha, Tipo, Categoría, Monto, Cuenta,
// Cuenta Destino, Detalle.

func transactionRow(tx models.Transaction) []any {
	return []any{
		tx.ID,
		tx.Date.Format(dateLayout),
		string(tx.Type),
		tx.Category,
		tx.Amount,
		tx.Account,
		tx.ToAccount,
		tx.Detail,
	}
}

func transactionFromRow(row []any) models.Transaction {
	date, _ := time.Parse(dateLayout, cell(row, 1))
	return models.Transaction{
		ID:        cell(row, 0),
		Date:      date,
		Type:      models.TransactionType(cell(row, 2)),
		Category:  cell(row, 3),
		Amount:    common.ParseAmount(at(row, 4)),
		Account:   cell(row, 5),
		ToAccount: cell(row, 6),
		Detail:    cell(row, 7),
	}
}

func (s *Store) ListAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.client.readRows(ctx, sheetTransactions)
	if err != nil {
		return nil, err
	}
	txs := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		txs = append(txs, transactionFromRow(row))
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	return txs, nil
}

func (s *Store) Append(ctx context.Context, tx models.Transaction) error {
	return s.client.appendRow(ctx, sheetTransactions, transactionRow(tx))
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	_, tx, err := s.findTransactionRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Store) Update(ctx context.Context, tx models.Transaction) error {
	idx, _, err := s.findTransactionRow(ctx, tx.ID)
	if err != nil {
		return err
	}
	return s.client.updateRow(ctx, sheetTransactions, idx, transactionRow(tx))
}

func (s *Store) Remove(ctx context.Context, id string) error {
	idx, _, err := s.findTransactionRow(ctx, id)
	if err != nil {
		return err
	}
	return s.client.deleteRow(ctx, sheetTransactions, idx)
}

func (s *Store) findTransactionRow(ctx context.Context, id string) (int, *models.Transaction, error) {
	rows, err := s.client.readRows(ctx, sheetTransactions)
	if err != nil {
		return 0, nil, err
	}
	for i, row := range rows {
		if cell(row, 0) == id {
			tx := transactionFromRow(row)
			return i, &tx, nil
		}
	}
	return 0, nil, models.NewNotFoundError("transaction '%s' not found", id)
}

// --- AccountStore ---

// Account row layout: ID, Nombre, Tipo, Balance Inicial, Balance Actual,
// Límite de Crédito.

func accountRow(account models.Account) []any {
	var limit any = ""
	if account.CreditLimit != 0 {
		limit = account.CreditLimit
	}
	return []any{
		account.ID,
		account.Name,
		string(account.Type),
		account.InitialBalance,
		account.Balance,
		limit,
	}
}

func accountFromRow(row []any) models.Account {
	return models.Account{
		ID:             cell(row, 0),
		Name:           cell(row, 1),
		Type:           models.AccountType(cell(row, 2)),
		InitialBalance: common.ParseAmount(at(row, 3)),
		Balance:        common.ParseAmount(at(row, 4)),
		CreditLimit:    common.ParseAmount(at(row, 5)),
	}
}

// AccountView exposes the account worksheet as an AccountStore.
type AccountView struct{ *Store }

func (s *Store) Accounts() *AccountView { return &AccountView{s} }

func (v *AccountView) ListAll(ctx context.Context) ([]models.Account, error) {
	rows, err := v.client.readRows(ctx, sheetAccounts)
	if err != nil {
		return nil, err
	}
	accounts := make([]models.Account, 0, len(rows))
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		accounts = append(accounts, accountFromRow(row))
	}
	return accounts, nil
}

func (v *AccountView) FindByID(ctx context.Context, id string) (*models.Account, error) {
	_, account, err := v.findAccountRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (v *AccountView) Save(ctx context.Context, account models.Account) error {
	idx, _, err := v.findAccountRow(ctx, account.ID)
	if models.IsKind(err, models.KindNotFound) {
		return v.client.appendRow(ctx, sheetAccounts, accountRow(account))
	}
	if err != nil {
		return err
	}
	return v.client.updateRow(ctx, sheetAccounts, idx, accountRow(account))
}

func (v *AccountView) SetBalance(ctx context.Context, id string, balance float64) error {
	idx, account, err := v.findAccountRow(ctx, id)
	if err != nil {
		return err
	}
	account.Balance = balance
	return v.client.updateRow(ctx, sheetAccounts, idx, accountRow(*account))
}

func (v *AccountView) Remove(ctx context.Context, id string) error {
	idx, _, err := v.findAccountRow(ctx, id)
	if err != nil {
		return err
	}
	return v.client.deleteRow(ctx, sheetAccounts, idx)
}

func (v *AccountView) findAccountRow(ctx context.Context, id string) (int, *models.Account, error) {
	rows, err := v.client.readRows(ctx, sheetAccounts)
	if err != nil {
		return 0, nil, err
	}
	for i, row := range rows {
		if cell(row, 0) == id {
			account := accountFromRow(row)
			return i, &account, nil
		}
	}
	return 0, nil, models.NewNotFoundError("account '%s' not found", id)
}

// --- CategoryStore ---

// Each category worksheet holds one Categoría column.

func categorySheet(t models.CategoryType) string {
	if t == models.CategoryIncome {
		return sheetIncomeCategories
	}
	return sheetExpenseCategories
}

// CategoryView exposes the category worksheets as a CategoryStore.
type CategoryView struct{ *Store }

func (s *Store) Categories() *CategoryView { return &CategoryView{s} }

func (v *CategoryView) List(ctx context.Context, categoryType models.CategoryType) ([]string, error) {
	rows, err := v.client.readRows(ctx, categorySheet(categoryType))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name := cell(row, 0); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (v *CategoryView) Add(ctx context.Context, categoryType models.CategoryType, name string) error {
	return v.client.appendRow(ctx, categorySheet(categoryType), []any{name})
}

func (v *CategoryView) Rename(ctx context.Context, categoryType models.CategoryType, oldName, newName string) error {
	idx, err := v.findCategoryRow(ctx, categoryType, oldName)
	if err != nil {
		return err
	}
	return v.client.updateRow(ctx, categorySheet(categoryType), idx, []any{newName})
}

func (v *CategoryView) Remove(ctx context.Context, categoryType models.CategoryType, name string) error {
	idx, err := v.findCategoryRow(ctx, categoryType, name)
	if err != nil {
		return err
	}
	return v.client.deleteRow(ctx, categorySheet(categoryType), idx)
}

func (v *CategoryView) findCategoryRow(ctx context.Context, categoryType models.CategoryType, name string) (int, error) {
	rows, err := v.client.readRows(ctx, categorySheet(categoryType))
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if cell(row, 0) == name {
			return i, nil
		}
	}
	return 0, models.NewNotFoundError("category '%s' not found", name)
}

// at returns the raw value at column i, or nil for short rows. Used for
// numeric columns so ParseAmount sees the API's native type.
func at(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}
