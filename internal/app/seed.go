package app

import (
	"context"
	"fmt"

	"github.com/matiasrojas/guarani/internal/models"
)

// defaultAccounts are created on first run against an empty store, all with a
// zero initial balance.
var defaultAccounts = []struct {
	name string
	typ  models.AccountType
}{
	{"Efectivo", models.AccountCash},
	{"Itau", models.AccountBank},
	{"UevoV", models.AccountBank},
	{"Ueno", models.AccountBank},
	{"Eko", models.AccountBank},
	{"ItauPuntos", models.AccountCreditCard},
	{"ItauClasica", models.AccountCreditCard},
}

// seedDefaults populates an empty store with the default accounts and
// category registries. A store with any existing data in an area is left
// alone, so seeding stays idempotent across restarts.
func (a *App) seedDefaults(ctx context.Context) error {
	accounts, err := a.AccountService.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		for _, seed := range defaultAccounts {
			draft := models.Account{Name: seed.name, Type: seed.typ}
			if _, err := a.AccountService.CreateAccount(ctx, draft); err != nil {
				return fmt.Errorf("failed to seed account %q: %w", seed.name, err)
			}
		}
		a.Logger.Info().Int("count", len(defaultAccounts)).Msg("Default accounts seeded")
	}

	seedsByType := map[models.CategoryType][]string{
		models.CategoryIncome:  models.DefaultIncomeCategories,
		models.CategoryExpense: models.DefaultExpenseCategories,
	}
	for categoryType, names := range seedsByType {
		existing, err := a.CategoryService.ListCategories(ctx, categoryType)
		if err != nil {
			return fmt.Errorf("failed to list %s categories: %w", categoryType, err)
		}
		if len(existing) > 0 {
			continue
		}
		for _, name := range names {
			if err := a.CategoryService.AddCategory(ctx, categoryType, name); err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
		}
		a.Logger.Info().Str("type", string(categoryType)).Int("count", len(names)).Msg("Default categories seeded")
	}

	return nil
}
