package category

import (
	"context"
	"testing"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/models"
)

// --- Mock stores ---

type mockCategoryStore struct {
	byType map[models.CategoryType][]string
}

func newMockCategoryStore() *mockCategoryStore {
	return &mockCategoryStore{byType: make(map[models.CategoryType][]string)}
}

func (m *mockCategoryStore) List(_ context.Context, t models.CategoryType) ([]string, error) {
	return append([]string(nil), m.byType[t]...), nil
}

func (m *mockCategoryStore) Add(_ context.Context, t models.CategoryType, name string) error {
	m.byType[t] = append(m.byType[t], name)
	return nil
}

func (m *mockCategoryStore) Rename(_ context.Context, t models.CategoryType, oldName, newName string) error {
	for i, n := range m.byType[t] {
		if n == oldName {
			m.byType[t][i] = newName
			return nil
		}
	}
	return models.NewNotFoundError("category %q not found", oldName)
}

func (m *mockCategoryStore) Remove(_ context.Context, t models.CategoryType, name string) error {
	names := m.byType[t]
	for i, n := range names {
		if n == name {
			m.byType[t] = append(names[:i], names[i+1:]...)
			return nil
		}
	}
	return models.NewNotFoundError("category %q not found", name)
}

func (m *mockCategoryStore) Close() error { return nil }

type mockLedgerStore struct {
	transactions map[string]models.Transaction
}

func newMockLedgerStore(txs ...models.Transaction) *mockLedgerStore {
	m := &mockLedgerStore{transactions: make(map[string]models.Transaction)}
	for _, tx := range txs {
		m.transactions[tx.ID] = tx
	}
	return m
}

func (m *mockLedgerStore) ListAll(_ context.Context) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		out = append(out, tx)
	}
	return out, nil
}

func (m *mockLedgerStore) Append(_ context.Context, tx models.Transaction) error {
	m.transactions[tx.ID] = tx
	return nil
}

func (m *mockLedgerStore) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	tx, ok := m.transactions[id]
	if !ok {
		return nil, models.NewNotFoundError("transaction %q not found", id)
	}
	return &tx, nil
}

func (m *mockLedgerStore) Update(_ context.Context, tx models.Transaction) error {
	if _, ok := m.transactions[tx.ID]; !ok {
		return models.NewNotFoundError("transaction %q not found", tx.ID)
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *mockLedgerStore) Remove(_ context.Context, id string) error {
	delete(m.transactions, id)
	return nil
}

func (m *mockLedgerStore) Close() error { return nil }

type mockStorageManager struct {
	ledger     *mockLedgerStore
	categories *mockCategoryStore
}

func (m *mockStorageManager) LedgerStore() interfaces.LedgerStore     { return m.ledger }
func (m *mockStorageManager) AccountStore() interfaces.AccountStore   { return nil }
func (m *mockStorageManager) CategoryStore() interfaces.CategoryStore { return m.categories }
func (m *mockStorageManager) Close() error                            { return nil }

func newTestService(txs ...models.Transaction) (*Service, *mockStorageManager) {
	storage := &mockStorageManager{
		ledger:     newMockLedgerStore(txs...),
		categories: newMockCategoryStore(),
	}
	return NewService(storage, common.NewLogger("error")), storage
}

// --- Tests ---

func TestAddCategory(t *testing.T) {
	svc, storage := newTestService()
	ctx := context.Background()

	if err := svc.AddCategory(ctx, models.CategoryExpense, "Movilidad"); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	names, _ := storage.categories.List(ctx, models.CategoryExpense)
	if len(names) != 1 || names[0] != "Movilidad" {
		t.Errorf("unexpected registry: %v", names)
	}

	// Duplicate within the type is rejected
	if err := svc.AddCategory(ctx, models.CategoryExpense, "Movilidad"); !models.IsKind(err, models.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
	// Same name under the other type is fine
	if err := svc.AddCategory(ctx, models.CategoryIncome, "Movilidad"); err != nil {
		t.Errorf("cross-type duplicate rejected: %v", err)
	}
}

func TestAddCategory_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.AddCategory(ctx, "weird", "X"); !models.IsKind(err, models.KindValidation) {
		t.Errorf("expected validation error for bad type, got %v", err)
	}
	if err := svc.AddCategory(ctx, models.CategoryExpense, "   "); !models.IsKind(err, models.KindValidation) {
		t.Errorf("expected validation error for blank name, got %v", err)
	}
}

func TestRenameCategory_CascadesToSameTypeOnly(t *testing.T) {
	svc, storage := newTestService(
		models.Transaction{ID: "tx_1", Type: models.TxExpense, Category: "Movilidad", Account: "a", Amount: 10},
		models.Transaction{ID: "tx_2", Type: models.TxExpense, Category: "Movilidad", Account: "a", Amount: 20},
		models.Transaction{ID: "tx_3", Type: models.TxIncome, Category: "Movilidad", Account: "a", Amount: 30},
		models.Transaction{ID: "tx_4", Type: models.TxExpense, Category: "Consumición", Account: "a", Amount: 40},
	)
	ctx := context.Background()
	storage.categories.Add(ctx, models.CategoryExpense, "Movilidad")
	storage.categories.Add(ctx, models.CategoryIncome, "Movilidad")

	if err := svc.RenameCategory(ctx, models.CategoryExpense, "Movilidad", "Transporte"); err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}

	for _, tc := range []struct {
		id   string
		want string
	}{
		{"tx_1", "Transporte"},
		{"tx_2", "Transporte"},
		{"tx_3", "Movilidad"},  // income transaction untouched
		{"tx_4", "Consumición"},
	} {
		tx, _ := storage.ledger.FindByID(ctx, tc.id)
		if tx.Category != tc.want {
			t.Errorf("%s category = %q, want %q", tc.id, tx.Category, tc.want)
		}
	}

	incomeNames, _ := storage.categories.List(ctx, models.CategoryIncome)
	if len(incomeNames) != 1 || incomeNames[0] != "Movilidad" {
		t.Errorf("income registry affected: %v", incomeNames)
	}
}

func TestRenameCategory_Errors(t *testing.T) {
	svc, storage := newTestService()
	ctx := context.Background()
	storage.categories.Add(ctx, models.CategoryExpense, "Movilidad")
	storage.categories.Add(ctx, models.CategoryExpense, "Consumición")

	if err := svc.RenameCategory(ctx, models.CategoryExpense, "NoExiste", "X"); !models.IsKind(err, models.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := svc.RenameCategory(ctx, models.CategoryExpense, "Movilidad", "Consumición"); !models.IsKind(err, models.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
	// Renaming to itself is a no-op
	if err := svc.RenameCategory(ctx, models.CategoryExpense, "Movilidad", "Movilidad"); err != nil {
		t.Errorf("self-rename should be a no-op, got %v", err)
	}
}

func TestRemoveCategory(t *testing.T) {
	svc, storage := newTestService(
		models.Transaction{ID: "tx_1", Type: models.TxExpense, Category: "Movilidad", Account: "a", Amount: 10},
	)
	ctx := context.Background()
	storage.categories.Add(ctx, models.CategoryExpense, "Movilidad")
	storage.categories.Add(ctx, models.CategoryExpense, "Consumición")

	// Referenced: refused
	if err := svc.RemoveCategory(ctx, models.CategoryExpense, "Movilidad"); !models.IsKind(err, models.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
	// Unreferenced: removed
	if err := svc.RemoveCategory(ctx, models.CategoryExpense, "Consumición"); err != nil {
		t.Fatalf("RemoveCategory failed: %v", err)
	}
	// Absent: not found
	if err := svc.RemoveCategory(ctx, models.CategoryExpense, "Consumición"); !models.IsKind(err, models.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestRemoveCategory_IgnoresOtherTypeReferences(t *testing.T) {
	// An income transaction labeled "Movilidad" must not block removing the
	// expense category of the same name.
	svc, storage := newTestService(
		models.Transaction{ID: "tx_1", Type: models.TxIncome, Category: "Movilidad", Account: "a", Amount: 10},
	)
	ctx := context.Background()
	storage.categories.Add(ctx, models.CategoryExpense, "Movilidad")

	if err := svc.RemoveCategory(ctx, models.CategoryExpense, "Movilidad"); err != nil {
		t.Fatalf("RemoveCategory failed: %v", err)
	}
}
