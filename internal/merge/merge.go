// Package merge reconciles onboarding records coming from different
// sources: blank defaults, the locally cached draft and the last submission
// stored upstream.
//
// The policy is "non-empty wins": for every scalar the current value is kept
// when it is non-empty, non-zero or true, otherwise the incoming value is
// used. Expense lists are reconciled per catalog template, other collections
// are taken wholesale from whichever side has items.
package merge

import (
	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

// Defaults returns a record with every field at its initial value and every
// catalog template present at zero.
func Defaults() model.OnboardingRecord {
	rec := model.OnboardingRecord{
		Expenses:          catalog.DefaultExpenses(),
		IrregularExpenses: catalog.DefaultIrregular(),
	}
	Normalize(&rec)
	return rec
}

// Hydrate builds the working record from the cached draft and the last
// submission. Either may be nil. The draft wins over the submission.
func Hydrate(local, server *model.OnboardingRecord) model.OnboardingRecord {
	out := Defaults()
	if server != nil {
		out = Merge(*server, out)
	}
	if local != nil {
		out = Merge(*local, out)
	}
	return out
}

// Merge combines current and incoming, preferring current. The result is
// normalized and satisfies every record invariant even if neither input did.
func Merge(current, incoming model.OnboardingRecord) model.OnboardingRecord {
	out := model.OnboardingRecord{
		Life:              mergeLife(current.Life, incoming.Life),
		Income:            mergeIncome(current.Income, incoming.Income),
		Expenses:          mergeGroups(current.Expenses, incoming.Expenses),
		IrregularExpenses: mergeIrregular(current.IrregularExpenses, incoming.IrregularExpenses),
		Liabilities:       pickSlice(current.Liabilities, incoming.Liabilities),
		Assets:            mergeAssets(current.Assets, incoming.Assets),
		Goals:             pickSlice(current.Goals, incoming.Goals),
	}
	Normalize(&out)
	return out
}

func mergeLife(c, i model.LifeData) model.LifeData {
	return model.LifeData{
		MaritalStatus:              pickString(c.MaritalStatus, i.MaritalStatus),
		IncludePartnerFinances:     c.IncludePartnerFinances || i.IncludePartnerFinances,
		ChildrenCount:              pickInt(c.ChildrenCount, i.ChildrenCount),
		ChildrenAgeRange:           pickString(c.ChildrenAgeRange, i.ChildrenAgeRange),
		HousingType:                pickString(c.HousingType, i.HousingType),
		HasMortgage:                c.HasMortgage || i.HasMortgage,
		EmploymentStatus:           pickString(c.EmploymentStatus, i.EmploymentStatus),
		TaxForm:                    pickString(c.TaxForm, i.TaxForm),
		HouseholdCost:              pickFloat(c.HouseholdCost, i.HouseholdCost),
		BirthYear:                  pickInt(c.BirthYear, i.BirthYear),
		UseAuthorsCosts:            c.UseAuthorsCosts || i.UseAuthorsCosts,
		RetirementPlanEnrolled:     c.RetirementPlanEnrolled || i.RetirementPlanEnrolled,
		RetirementPlanEmployeeRate: pickFloat(c.RetirementPlanEmployeeRate, i.RetirementPlanEmployeeRate),
		RetirementPlanEmployerRate: pickFloat(c.RetirementPlanEmployerRate, i.RetirementPlanEmployerRate),
	}
}

func mergeIncome(c, i model.IncomeData) model.IncomeData {
	out := model.IncomeData{
		SalaryNet:             pickFloat(c.SalaryNet, i.SalaryNet),
		IrregularIncomeAnnual: pickFloat(c.IrregularIncomeAnnual, i.IrregularIncomeAnnual),
		AdditionalSources:     c.AdditionalSources,
	}
	incoming := map[string]model.IncomeSource{}
	i.AdditionalSources.Each(func(key string, src *model.IncomeSource) {
		incoming[key] = *src
	})
	out.AdditionalSources.Each(func(key string, src *model.IncomeSource) {
		in := incoming[key]
		src.Enabled = src.Enabled || in.Enabled
		src.Amount = pickFloat(src.Amount, in.Amount)
	})
	return out
}

func mergeAssets(c, i model.AssetsData) model.AssetsData {
	return model.AssetsData{
		Savings:             pickFloat(c.Savings, i.Savings),
		EmergencyFundMonths: pickInt(c.EmergencyFundMonths, i.EmergencyFundMonths),
		Investments: model.Investments{
			Categories: pickSlice(c.Investments.Categories, i.Investments.Categories),
			TotalValue: pickFloat(c.Investments.TotalValue, i.Investments.TotalValue),
		},
		Properties: pickSlice(c.Properties, i.Properties),
		Vehicles:   pickSlice(c.Vehicles, i.Vehicles),
		Retirement: model.RetirementAccounts{
			Individual:    pickFloat(c.Retirement.Individual, i.Retirement.Individual),
			TaxAdvantaged: pickFloat(c.Retirement.TaxAdvantaged, i.Retirement.TaxAdvantaged),
			Employer:      pickFloat(c.Retirement.Employer, i.Retirement.Employer),
		},
	}
}

// mergeGroups reconciles two grouped expense maps template by template.
// Custom items from both sides are kept; on an id clash current wins.
func mergeGroups(current, incoming model.ExpenseGroups) model.ExpenseGroups {
	c := normalizeGroups(current)
	i := normalizeGroups(incoming)
	out := make(model.ExpenseGroups, len(c))
	for _, g := range catalog.Groups() {
		out[g] = mergeItems(c[g], i[g])
	}
	return out
}

func mergeIrregular(current, incoming []model.ExpenseItem) []model.ExpenseItem {
	templates := catalog.IrregularTemplates()
	c := normalizeList(current, templates, catalog.IrregularTemplate)
	i := normalizeList(incoming, templates, catalog.IrregularTemplate)
	return mergeItems(c, i)
}

// mergeItems expects both lists normalized against the same templates.
func mergeItems(current, incoming []model.ExpenseItem) []model.ExpenseItem {
	byTemplate := make(map[string]model.ExpenseItem)
	for _, it := range incoming {
		if it.TemplateID != "" {
			byTemplate[it.TemplateID] = it
		}
	}

	out := make([]model.ExpenseItem, 0, len(current)+len(incoming))
	customIDs := make(map[string]bool)
	for _, it := range current {
		if it.TemplateID != "" {
			if in, ok := byTemplate[it.TemplateID]; ok {
				it.Amount = pickFloat(it.Amount, in.Amount)
				it.Month = pickInt(it.Month, in.Month)
			}
		} else {
			customIDs[it.ID] = true
		}
		out = append(out, it)
	}
	for _, it := range incoming {
		if it.TemplateID == "" && !customIDs[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

func pickString(c, i string) string {
	if c != "" {
		return c
	}
	return i
}

func pickFloat(c, i float64) float64 {
	if c > 0 {
		return c
	}
	return i
}

func pickInt(c, i int) int {
	if c != 0 {
		return c
	}
	return i
}

// pickSlice copies current when it has items, otherwise incoming.
func pickSlice[T any](c, i []T) []T {
	if len(c) > 0 {
		return append([]T(nil), c...)
	}
	return append([]T(nil), i...)
}
