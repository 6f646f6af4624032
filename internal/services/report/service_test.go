package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/models"
)

// --- Mock stores ---

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
func (m *mockLedgerStore) Remove(_ context.Context, id string) error             { return nil }
func (m *mockLedgerStore) Close() error                                          { return nil }

type mockAccountStore struct {
	accounts []models.Account
}

func (m *mockAccountStore) ListAll(_ context.Context) ([]models.Account, error) {
	return m.accounts, nil
}

func (m *mockAccountStore) FindByID(_ context.Context, id string) (*models.Account, error) {
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			return &m.accounts[i], nil
		}
	}
	return nil, models.NewNotFoundError("account %q not found", id)
}

func (m *mockAccountStore) Save(_ context.Context, account models.Account) error            { return nil }
func (m *mockAccountStore) SetBalance(_ context.Context, id string, balance float64) error { return nil }
func (m *mockAccountStore) Remove(_ context.Context, id string) error                      { return nil }
func (m *mockAccountStore) Close() error                                                   { return nil }

type mockStorageManager struct {
	ledger   *mockLedgerStore
	accounts *mockAccountStore
}

func (m *mockStorageManager) LedgerStore() interfaces.LedgerStore     { return m.ledger }
func (m *mockStorageManager) AccountStore() interfaces.AccountStore   { return m.accounts }
func (m *mockStorageManager) CategoryStore() interfaces.CategoryStore { return nil }
func (m *mockStorageManager) Close() error                            { return nil }

func newTestService(txs []models.Transaction, accounts []models.Account) *Service {
	storage := &mockStorageManager{
		ledger:   &mockLedgerStore{transactions: txs},
		accounts: &mockAccountStore{accounts: accounts},
	}
	return NewService(storage, common.NewLogger("error"))
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// --- Tests ---

func TestSummary(t *testing.T) {
	svc := newTestService(
		[]models.Transaction{
			{ID: "tx_1", Type: models.TxIncome, Amount: 1000, Date: date("2025-03-01")},
			{ID: "tx_2", Type: models.TxIncome, Amount: 500, Date: date("2025-03-02")},
			{ID: "tx_3", Type: models.TxExpense, Amount: 400, Date: date("2025-03-03")},
			// Transfers move money between accounts without touching totals
			{ID: "tx_4", Type: models.TxTransfer, Amount: 9999, Account: "cash", ToAccount: "itau", Date: date("2025-03-04")},
		},
		[]models.Account{
			{ID: "cash", Name: "Efectivo", Type: models.AccountCash, Balance: 300},
			{ID: "itau", Name: "Itau", Type: models.AccountBank, Balance: 700},
			{ID: "ueno", Name: "Ueno", Type: models.AccountBank, Balance: 100},
			{ID: "card", Name: "ItauClasica", Type: models.AccountCreditCard, Balance: -250},
			{ID: "card2", Name: "ItauPuntos", Type: models.AccountCreditCard, Balance: 50},
		},
	)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalIncome != 1500 {
		t.Errorf("TotalIncome = %v, want 1500", summary.TotalIncome)
	}
	if summary.TotalExpenses != 400 {
		t.Errorf("TotalExpenses = %v, want 400", summary.TotalExpenses)
	}
	if summary.NetBalance != 1100 {
		t.Errorf("NetBalance = %v, want 1100", summary.NetBalance)
	}
	if summary.CashBalance != 300 {
		t.Errorf("CashBalance = %v, want 300", summary.CashBalance)
	}
	if summary.BankBalance != 800 {
		t.Errorf("BankBalance = %v, want 800", summary.BankBalance)
	}
	// Only the negative card counts toward debt, as a positive magnitude.
	if summary.CreditCardDebt != 250 {
		t.Errorf("CreditCardDebt = %v, want 250", summary.CreditCardDebt)
	}
	if summary.AccountBalances["itau"] != 700 {
		t.Errorf("AccountBalances[itau] = %v, want 700", summary.AccountBalances["itau"])
	}
}

func TestSummary_Empty(t *testing.T) {
	svc := newTestService(nil, nil)
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalIncome != 0 || summary.TotalExpenses != 0 || summary.NetBalance != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	svc := newTestService(
		[]models.Transaction{
			{ID: "tx_1", Type: models.TxExpense, Category: "Movilidad", Amount: 100},
			{ID: "tx_2", Type: models.TxExpense, Category: "Movilidad", Amount: 150},
			{ID: "tx_3", Type: models.TxExpense, Category: "Consumición", Amount: 80},
			{ID: "tx_4", Type: models.TxIncome, Category: "Otros Ingresos", Amount: 999},
		},
		nil,
	)

	breakdown, err := svc.CategoryBreakdown(context.Background(), models.CategoryExpense)
	if err != nil {
		t.Fatalf("CategoryBreakdown failed: %v", err)
	}
	if len(breakdown) != 2 {
		t.Fatalf("expected 2 categories, got %v", breakdown)
	}
	if breakdown["Movilidad"] != 250 {
		t.Errorf("Movilidad = %v, want 250", breakdown["Movilidad"])
	}
	if breakdown["Consumición"] != 80 {
		t.Errorf("Consumición = %v, want 80", breakdown["Consumición"])
	}

	if _, err := svc.CategoryBreakdown(context.Background(), "weird"); !models.IsKind(err, models.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestMonthlyTotals(t *testing.T) {
	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 5, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	svc := newTestService(
		[]models.Transaction{
			{ID: "tx_1", Type: models.TxIncome, Amount: 1000, Date: thisMonth},
			{ID: "tx_2", Type: models.TxExpense, Amount: 400, Date: thisMonth},
			{ID: "tx_3", Type: models.TxIncome, Amount: 200, Date: lastMonth},
			// Outside the window, ignored
			{ID: "tx_4", Type: models.TxIncome, Amount: 5000, Date: thisMonth.AddDate(-1, 0, 0)},
		},
		nil,
	)

	totals, err := svc.MonthlyTotals(context.Background(), 3)
	if err != nil {
		t.Fatalf("MonthlyTotals failed: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("expected 3 months, got %d", len(totals))
	}
	// Oldest first, zero-filled
	if totals[0].Income != 0 || totals[0].Expenses != 0 {
		t.Errorf("oldest month should be zero, got %+v", totals[0])
	}
	if totals[1].Income != 200 {
		t.Errorf("last month income = %v, want 200", totals[1].Income)
	}
	if totals[2].Income != 1000 || totals[2].Expenses != 400 {
		t.Errorf("current month = %+v, want income 1000 expenses 400", totals[2])
	}
	for i := 1; i < len(totals); i++ {
		if !totals[i].Month.After(totals[i-1].Month) {
			t.Errorf("months not ascending: %v then %v", totals[i-1].Month, totals[i].Month)
		}
	}
}

func TestMonthlyTotals_DefaultsToSixMonths(t *testing.T) {
	svc := newTestService(nil, nil)
	totals, err := svc.MonthlyTotals(context.Background(), 0)
	if err != nil {
		t.Fatalf("MonthlyTotals failed: %v", err)
	}
	if len(totals) != 6 {
		t.Errorf("expected 6 months by default, got %d", len(totals))
	}
}

func TestRenderExpenseChart(t *testing.T) {
	svc := newTestService(
		[]models.Transaction{
			{ID: "tx_1", Type: models.TxExpense, Category: "Movilidad", Amount: 100},
			{ID: "tx_2", Type: models.TxExpense, Category: "Consumición", Amount: 80},
		},
		nil,
	)

	png, err := svc.RenderExpenseChart(context.Background())
	if err != nil {
		t.Fatalf("RenderExpenseChart failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG (%d bytes)", len(png))
	}
}

func TestRenderExpenseChart_NoData(t *testing.T) {
	svc := newTestService(nil, nil)
	if _, err := svc.RenderExpenseChart(context.Background()); err == nil {
		t.Error("expected error with no expenses")
	}
}

func TestRenderMonthlyChart(t *testing.T) {
	now := time.Now().UTC()
	svc := newTestService(
		[]models.Transaction{
			{ID: "tx_1", Type: models.TxIncome, Amount: 1000, Date: now},
			{ID: "tx_2", Type: models.TxExpense, Amount: 400, Date: now},
		},
		nil,
	)

	png, err := svc.RenderMonthlyChart(context.Background())
	if err != nil {
		t.Fatalf("RenderMonthlyChart failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG (%d bytes)", len(png))
	}
}
