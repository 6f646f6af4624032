package account

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/models"
)

// --- Mock stores ---

type mockAccountStore struct {
	accounts map[string]models.Account
}

func newMockAccountStore(accounts ...models.Account) *mockAccountStore {
	m := &mockAccountStore{accounts: make(map[string]models.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountStore) ListAll(_ context.Context) ([]models.Account, error) {
	out := make([]models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockAccountStore) FindByID(_ context.Context, id string) (*models.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, models.NewNotFoundError("account %q not found", id)
	}
	return &a, nil
}

func (m *mockAccountStore) Save(_ context.Context, account models.Account) error {
	m.accounts[account.ID] = account
	return nil
}

func (m *mockAccountStore) SetBalance(_ context.Context, id string, balance float64) error {
	a, ok := m.accounts[id]
	if !ok {
		return models.NewNotFoundError("account %q not found", id)
	}
	a.Balance = balance
	m.accounts[id] = a
	return nil
}

func (m *mockAccountStore) Remove(_ context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *mockAccountStore) Close() error { return nil }

type mockLedgerStore struct {
	transactions []models.Transaction
}

func (m *mockLedgerStore) ListAll(_ context.Context) ([]models.Transaction, error) {
	return m.transactions, nil
}

func (m *mockLedgerStore) Append(_ context.Context, tx models.Transaction) error {
	m.transactions = append(m.transactions, tx)
	return nil
}

func (m *mockLedgerStore) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	for i := range m.transactions {
		if m.transactions[i].ID == id {
			return &m.transactions[i], nil
		}
	}
	return nil, models.NewNotFoundError("transaction %q not found", id)
}

func (m *mockLedgerStore) Update(_ context.Context, tx models.Transaction) error { return nil }

func (m *mockLedgerStore) Remove(_ context.Context, id string) error { return nil }

func (m *mockLedgerStore) Close() error { return nil }

type mockStorageManager struct {
	ledger   *mockLedgerStore
	accounts *mockAccountStore
}

func (m *mockStorageManager) LedgerStore() interfaces.LedgerStore     { return m.ledger }
func (m *mockStorageManager) AccountStore() interfaces.AccountStore   { return m.accounts }
func (m *mockStorageManager) CategoryStore() interfaces.CategoryStore { return nil }
func (m *mockStorageManager) Close() error                            { return nil }

func newTestService(accounts ...models.Account) (*Service, *mockStorageManager) {
	storage := &mockStorageManager{
		ledger:   &mockLedgerStore{},
		accounts: newMockAccountStore(accounts...),
	}
	return NewService(storage, common.NewLogger("error")), storage
}

// --- Tests ---

func TestCreateAccount(t *testing.T) {
	svc, _ := newTestService()

	account, err := svc.CreateAccount(context.Background(), models.Account{
		Name:           "Itau",
		Type:           models.AccountBank,
		InitialBalance: 500000,
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if !strings.HasPrefix(account.ID, "acc_") {
		t.Errorf("ID should start with acc_, got %q", account.ID)
	}
	if account.Balance != 500000 {
		t.Errorf("balance should start at initial balance, got %v", account.Balance)
	}
}

func TestCreateAccount_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		draft models.Account
	}{
		{"empty name", models.Account{Type: models.AccountBank}},
		{"bad type", models.Account{Name: "X", Type: "savings"}},
		{"credit limit on bank", models.Account{Name: "X", Type: models.AccountBank, CreditLimit: 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateAccount(ctx, tc.draft); !models.IsKind(err, models.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateAccount_CreditCardWithLimit(t *testing.T) {
	svc, _ := newTestService()

	account, err := svc.CreateAccount(context.Background(), models.Account{
		Name:        "ItauClasica",
		Type:        models.AccountCreditCard,
		CreditLimit: 3000000,
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if account.CreditLimit != 3000000 {
		t.Errorf("credit limit = %v, want 3000000", account.CreditLimit)
	}
}

func TestUpdateAccount_RejectsInitialBalanceEdit(t *testing.T) {
	svc, _ := newTestService(models.Account{
		ID: "acc_1", Name: "Efectivo", Type: models.AccountCash, InitialBalance: 1000, Balance: 1500,
	})

	newInitial := 2000.0
	_, err := svc.UpdateAccount(context.Background(), "acc_1", models.AccountPatch{
		InitialBalance: &newInitial,
	})
	if !models.IsKind(err, models.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateAccount_RenameKeepsBalances(t *testing.T) {
	svc, storage := newTestService(models.Account{
		ID: "acc_1", Name: "Efectivo", Type: models.AccountCash, InitialBalance: 1000, Balance: 1500,
	})

	name := "Billetera"
	updated, err := svc.UpdateAccount(context.Background(), "acc_1", models.AccountPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}
	if updated.Name != "Billetera" {
		t.Errorf("name = %q, want Billetera", updated.Name)
	}
	stored, _ := storage.accounts.FindByID(context.Background(), "acc_1")
	if stored.Balance != 1500 || stored.InitialBalance != 1000 {
		t.Errorf("balances changed by rename: %+v", stored)
	}
}

func TestUpdateAccount_NotFound(t *testing.T) {
	svc, _ := newTestService()
	name := "X"
	if _, err := svc.UpdateAccount(context.Background(), "acc_missing", models.AccountPatch{Name: &name}); !models.IsKind(err, models.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteAccount_RefusedWhileReferenced(t *testing.T) {
	svc, storage := newTestService(models.Account{
		ID: "acc_1", Name: "Efectivo", Type: models.AccountCash,
	})
	storage.ledger.transactions = []models.Transaction{
		{ID: "tx_1", Type: models.TxExpense, Account: "acc_1", Amount: 100},
	}

	if err := svc.DeleteAccount(context.Background(), "acc_1"); !models.IsKind(err, models.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Still present
	if _, err := storage.accounts.FindByID(context.Background(), "acc_1"); err != nil {
		t.Errorf("account removed despite conflict: %v", err)
	}
}

func TestDeleteAccount_RefusedAsTransferDestination(t *testing.T) {
	svc, storage := newTestService(models.Account{
		ID: "acc_2", Name: "Itau", Type: models.AccountBank,
	})
	storage.ledger.transactions = []models.Transaction{
		{ID: "tx_1", Type: models.TxTransfer, Account: "acc_1", ToAccount: "acc_2", Amount: 100},
	}

	if err := svc.DeleteAccount(context.Background(), "acc_2"); !models.IsKind(err, models.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteAccount_Unreferenced(t *testing.T) {
	svc, storage := newTestService(models.Account{
		ID: "acc_1", Name: "Efectivo", Type: models.AccountCash,
	})

	if err := svc.DeleteAccount(context.Background(), "acc_1"); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if _, err := storage.accounts.FindByID(context.Background(), "acc_1"); !models.IsKind(err, models.KindNotFound) {
		t.Errorf("account still present after delete")
	}
}
