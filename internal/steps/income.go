package steps

import (
	"fmt"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

type IncomeValidator struct{}

func (v *IncomeValidator) Validate(rec *model.OnboardingRecord) []model.Issue {
	var is issues
	inc := rec.Income

	if invalidAmount(inc.SalaryNet) {
		is.add("income.salaryNet", "INVALID_AMOUNT", "Amount must be a non-negative number")
	}
	if invalidAmount(inc.IrregularIncomeAnnual) {
		is.add("income.irregularIncomeAnnual", "INVALID_AMOUNT", "Amount must be a non-negative number")
	}

	inc.AdditionalSources.Each(func(key string, src *model.IncomeSource) {
		path := "income.additionalSources." + key + ".amount"
		switch {
		case invalidAmount(src.Amount):
			is.add(path, "INVALID_AMOUNT", "Amount must be a non-negative number")
		case src.Enabled && src.Amount <= 0:
			is.add(path, "AMOUNT_REQUIRED", "Enter the monthly amount or switch this source off")
		}
	})

	benefit := inc.AdditionalSources.ChildBenefit
	children := rec.Life.ChildrenCount
	if benefit.Enabled && children <= 0 {
		is.add("income.additionalSources.childBenefit.enabled", "CHILD_BENEFIT_WITHOUT_CHILDREN", "Child benefit requires at least one child")
	}
	if limit := catalog.ChildBenefitLimit(children); children > 0 && benefit.Amount > limit {
		is.add("income.additionalSources.childBenefit.amount", "CHILD_BENEFIT_LIMIT",
			fmt.Sprintf("Child benefit cannot exceed %.0f", limit))
	}
	return is
}
