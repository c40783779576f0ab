package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

type ExpensesValidator struct{}

func (v *ExpensesValidator) Validate(rec *model.OnboardingRecord) []model.Issue {
	var is issues
	keys := make([]string, 0, len(rec.Expenses))
	for k := range rec.Expenses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, g := range keys {
		if !catalog.IsGroup(g) {
			is.add("expenses."+g, "UNKNOWN_GROUP", "Unknown expense group")
			continue
		}
		validateItems(&is, "expenses."+g, rec.Expenses[g], false)
	}
	return is
}

type IrregularExpensesValidator struct{}

func (v *IrregularExpensesValidator) Validate(rec *model.OnboardingRecord) []model.Issue {
	var is issues
	validateItems(&is, "irregularExpenses", rec.IrregularExpenses, true)
	return is
}

func validateItems(is *issues, prefix string, items []model.ExpenseItem, irregular bool) {
	for i, it := range items {
		path := fmt.Sprintf("%s.%d", prefix, i)
		if strings.TrimSpace(it.Name) == "" {
			is.add(path+".name", "REQUIRED", "Enter a name for this expense")
		}
		if invalidAmount(it.Amount) {
			is.add(path+".amount", "INVALID_AMOUNT", "Amount must be a non-negative number")
		}
		if !catalog.IsCategory(it.Category) {
			is.add(path+".category", "UNKNOWN_CATEGORY", "Select a category")
		}
		if !it.IsCustom && it.TemplateID == "" {
			is.add(path+".templateId", "TEMPLATE_REQUIRED", "Template item is missing its template reference")
		}
		if irregular && (it.Month < 0 || it.Month > 12) {
			is.add(path+".month", "OUT_OF_RANGE", "Month must be between 1 and 12")
		}
	}
}
