package models

// CategoryType scopes a category name: categories exist separately for
// income and expense transactions. Transfers carry the fixed
// TransferCategory label and have no registry entry.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// ValidCategoryType returns true if t is a valid category type.
func ValidCategoryType(t CategoryType) bool {
	return t == CategoryIncome || t == CategoryExpense
}

// DefaultIncomeCategories seeds the income category registry on first run.
var DefaultIncomeCategories = []string{
	"Ingresos Operativos",
	"Otros Ingresos",
	"Intereses Ganados",
}

// DefaultExpenseCategories seeds the expense category registry on first run.
var DefaultExpenseCategories = []string{
	"Gastos Laborales",
	"Movilidad",
	"Consumición",
	"Gastos en Dpto.",
	"Aporte Familiar",
}
