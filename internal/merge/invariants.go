package merge

import (
	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

// Enforce applies the cross-field rules every record must satisfy and
// sanitizes every amount. It is idempotent.
func Enforce(rec *model.OnboardingRecord) {
	life := &rec.Life
	if life.ChildrenCount < 0 {
		life.ChildrenCount = 0
	}
	if life.MaritalStatus == catalog.MaritalSingle {
		life.IncludePartnerFinances = false
	}
	if life.HousingType != catalog.HousingMortgage {
		life.HasMortgage = false
	}
	life.HouseholdCost = Sanitize(life.HouseholdCost)
	life.RetirementPlanEmployeeRate = Sanitize(life.RetirementPlanEmployeeRate)
	life.RetirementPlanEmployerRate = Sanitize(life.RetirementPlanEmployerRate)

	inc := &rec.Income
	inc.SalaryNet = Sanitize(inc.SalaryNet)
	inc.IrregularIncomeAnnual = Sanitize(inc.IrregularIncomeAnnual)
	inc.AdditionalSources.Each(func(_ string, src *model.IncomeSource) {
		src.Amount = Sanitize(src.Amount)
	})

	benefit := &inc.AdditionalSources.ChildBenefit
	if life.ChildrenCount <= 0 {
		life.ChildrenAgeRange = ""
		benefit.Enabled = false
		benefit.Amount = 0
	} else if limit := catalog.ChildBenefitLimit(life.ChildrenCount); benefit.Amount > limit {
		benefit.Amount = limit
	}

	for g := range rec.Expenses {
		sanitizeItems(rec.Expenses[g])
	}
	sanitizeItems(rec.IrregularExpenses)

	for i := range rec.Liabilities {
		l := &rec.Liabilities[i]
		l.RemainingAmount = Sanitize(l.RemainingAmount)
		l.MonthlyPayment = Sanitize(l.MonthlyPayment)
		l.PropertyValue = Sanitize(l.PropertyValue)
		if l.TermMonths < 0 {
			l.TermMonths = 0
		}
		if l.InterestRate != nil {
			r := Sanitize(*l.InterestRate)
			l.InterestRate = &r
		}
	}

	a := &rec.Assets
	a.Savings = Sanitize(a.Savings)
	if a.EmergencyFundMonths < 0 {
		a.EmergencyFundMonths = 0
	}
	a.Investments.TotalValue = Sanitize(a.Investments.TotalValue)
	for i := range a.Properties {
		a.Properties[i].Value = Sanitize(a.Properties[i].Value)
	}
	for i := range a.Vehicles {
		a.Vehicles[i].Value = Sanitize(a.Vehicles[i].Value)
	}
	a.Retirement.Individual = Sanitize(a.Retirement.Individual)
	a.Retirement.TaxAdvantaged = Sanitize(a.Retirement.TaxAdvantaged)
	a.Retirement.Employer = Sanitize(a.Retirement.Employer)

	for i := range rec.Goals {
		rec.Goals[i].TargetAmount = Sanitize(rec.Goals[i].TargetAmount)
	}
}

func sanitizeItems(items []model.ExpenseItem) {
	for i := range items {
		items[i].Amount = Sanitize(items[i].Amount)
		if items[i].Month < 0 || items[i].Month > 12 {
			items[i].Month = 0
		}
	}
}
