// Package advisor answers natural-language questions about the user's
// finances by handing the current snapshot to Gemini.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/interfaces"
	"github.com/matiasrojas/guarani/internal/models"
)

// recentTransactionCount limits how much ledger history goes into the prompt.
const recentTransactionCount = 10

// Compile-time interface check
var _ interfaces.AdvisorService = (*Service)(nil)

// Service implements AdvisorService
type Service struct {
	reports interfaces.ReportService
	ledger  interfaces.LedgerService
	storage interfaces.StorageManager
	gemini  interfaces.GeminiClient
	logger  *common.Logger
}

// NewService creates a new advisor service. gemini may be nil when no API
// key is configured; Ask then fails with a dependency error.
func NewService(reports interfaces.ReportService, ledger interfaces.LedgerService, storage interfaces.StorageManager, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		reports: reports,
		ledger:  ledger,
		storage: storage,
		gemini:  gemini,
		logger:  logger,
	}
}

// Ask builds the financial context prompt and asks Gemini.
func (s *Service) Ask(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", models.NewValidationError("message is required")
	}
	if s.gemini == nil {
		return "", models.NewDependencyError("chat assistant is not configured", nil)
	}

	summary, err := s.reports.Summary(ctx)
	if err != nil {
		return "", err
	}
	accounts, err := s.storage.AccountStore().ListAll(ctx)
	if err != nil {
		return "", err
	}
	transactions, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		return "", err
	}
	if len(transactions) > recentTransactionCount {
		transactions = transactions[:recentTransactionCount]
	}

	prompt := buildPrompt(message, summary, accounts, transactions)

	answer, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return "", models.NewDependencyError("chat assistant request failed", err)
	}

	s.logger.Info().Int("context_transactions", len(transactions)).Msg("Chat question answered")
	return answer, nil
}

// formatPYG renders an amount as whole guaraníes with thousands separators.
func formatPYG(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := fmt.Sprintf("%.0f", amount)

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// txTypeLabel translates a transaction type for the prompt.
func txTypeLabel(t models.TransactionType) string {
	switch t {
	case models.TxIncome:
		return "Ingreso"
	case models.TxExpense:
		return "Gasto"
	default:
		return "Transferencia"
	}
}

// buildPrompt assembles the assistant prompt from the financial snapshot.
func buildPrompt(message string, summary *models.Summary, accounts []models.Account, transactions []models.Transaction) string {
	var sb strings.Builder

	sb.WriteString("Eres un asistente financiero personal experto. Analiza los siguientes datos financieros del usuario y responde su pregunta de manera clara y útil.\n\n")

	sb.WriteString("RESUMEN FINANCIERO:\n")
	fmt.Fprintf(&sb, "- Ingresos totales: %s PYG\n", formatPYG(summary.TotalIncome))
	fmt.Fprintf(&sb, "- Gastos totales: %s PYG\n", formatPYG(summary.TotalExpenses))
	fmt.Fprintf(&sb, "- Balance neto: %s PYG\n", formatPYG(summary.NetBalance))
	fmt.Fprintf(&sb, "- Efectivo: %s PYG\n", formatPYG(summary.CashBalance))
	fmt.Fprintf(&sb, "- Cajas de ahorro: %s PYG\n", formatPYG(summary.BankBalance))
	fmt.Fprintf(&sb, "- Deuda de tarjetas de crédito: %s PYG\n", formatPYG(summary.CreditCardDebt))

	sb.WriteString("\nCUENTAS:\n")
	for _, a := range accounts {
		fmt.Fprintf(&sb, "- %s (%s): %s PYG", a.Name, a.Type, formatPYG(a.Balance))
		if a.CreditLimit > 0 {
			fmt.Fprintf(&sb, " | Límite: %s PYG", formatPYG(a.CreditLimit))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nÚLTIMAS TRANSACCIONES:\n")
	for _, tx := range transactions {
		fmt.Fprintf(&sb, "- %s: %s de %s PYG en %s (%s)",
			tx.Date.Format("2006-01-02"), txTypeLabel(tx.Type), formatPYG(tx.Amount), tx.Category, tx.Account)
		if tx.Detail != "" {
			fmt.Fprintf(&sb, " - %s", tx.Detail)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nINSTRUCCIONES:\n")
	sb.WriteString("- Responde en español de Paraguay\n")
	sb.WriteString("- Usa formato de moneda PYG (Guaraníes)\n")
	sb.WriteString("- Sé conciso pero informativo\n")
	sb.WriteString("- Proporciona recomendaciones prácticas cuando sea relevante\n")
	sb.WriteString("- Si la pregunta no está relacionada con finanzas, indica amablemente que solo puedes ayudar con temas financieros\n")

	sb.WriteString("\nPREGUNTA DEL USUARIO:\n")
	sb.WriteString(message)

	return sb.String()
}
