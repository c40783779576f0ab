package submit

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

const dateLayout = "2006-01-02"

var incomeSources = map[string]struct{ category, description string }{
	model.SourceRental:       {"rental", "Rental income"},
	model.SourceBonuses:      {"bonus", "Bonuses"},
	model.SourceFreelance:    {"freelance", "Freelance work"},
	model.SourceBenefits:     {"benefits", "Benefits"},
	model.SourceChildBenefit: {"child_benefit", "Child benefit"},
}

// IncomeRecords derives one record for the salary, one per enabled
// additional source and one non-recurring record for irregular income.
func IncomeRecords(rec model.OnboardingRecord, today time.Time) []model.IncomeRecord {
	date := today.Format(dateLayout)
	var out []model.IncomeRecord
	if rec.Income.SalaryNet > 0 {
		out = append(out, model.IncomeRecord{
			Category:    "salary",
			Description: "Net salary",
			Amount:      money(rec.Income.SalaryNet),
			IsRecurring: true,
			Date:        date,
		})
	}
	rec.Income.AdditionalSources.Each(func(key string, src *model.IncomeSource) {
		if !src.Enabled || src.Amount <= 0 {
			return
		}
		meta := incomeSources[key]
		out = append(out, model.IncomeRecord{
			Category:    meta.category,
			Description: meta.description,
			Amount:      money(src.Amount),
			IsRecurring: true,
			Date:        date,
		})
	})
	if rec.Income.IrregularIncomeAnnual > 0 {
		out = append(out, model.IncomeRecord{
			Category:    "other",
			Description: "Irregular income (annual)",
			Amount:      money(rec.Income.IrregularIncomeAnnual),
			IsRecurring: false,
			Date:        date,
		})
	}
	return out
}

// ExpenseRecords derives one recurring record per positive monthly item and
// one non-recurring record per positive irregular item, dated on its next
// occurrence month.
func ExpenseRecords(rec model.OnboardingRecord, today time.Time) []model.ExpenseRecord {
	date := today.Format(dateLayout)
	var out []model.ExpenseRecord
	for _, g := range catalog.Groups() {
		for _, it := range rec.Expenses[g] {
			if it.Amount <= 0 {
				continue
			}
			out = append(out, model.ExpenseRecord{
				Category:    it.Category,
				Description: it.Name,
				Amount:      money(it.Amount),
				IsRecurring: true,
				Date:        date,
			})
		}
	}
	for _, it := range rec.IrregularExpenses {
		if it.Amount <= 0 {
			continue
		}
		out = append(out, model.ExpenseRecord{
			Category:    it.Category,
			Description: it.Name,
			Amount:      money(it.Amount),
			IsRecurring: false,
			Date:        nextOccurrence(it.Month, today).Format(dateLayout),
		})
	}
	return out
}

// LoanRecords derives one record per liability with a balance or payment.
//
// Leasing has no payoff balance: its principal is monthly payment times term
// and it carries no interest. A mortgage's principal is the property value
// when known. Revolving credit keeps the balance as current utilization and
// has no term.
func LoanRecords(rec model.OnboardingRecord, today time.Time) []model.LoanRecord {
	var out []model.LoanRecord
	for _, l := range rec.Liabilities {
		if l.RemainingAmount <= 0 && l.MonthlyPayment <= 0 {
			continue
		}
		r := model.LoanRecord{
			LoanType:         l.Type,
			Description:      l.Description,
			PrincipalAmount:  l.RemainingAmount,
			RemainingBalance: l.RemainingAmount,
			MonthlyPayment:   l.MonthlyPayment,
			StartDate:        l.StartDate,
			TermMonths:       l.TermMonths,
		}
		if l.InterestRate != nil {
			r.InterestRate = *l.InterestRate
		}
		if r.Description == "" {
			r.Description = strings.ReplaceAll(l.Type, "_", " ")
		}
		if r.StartDate == "" {
			r.StartDate = today.Format(dateLayout)
		}
		if r.TermMonths == 0 {
			r.TermMonths = monthsBetween(l.StartDate, l.EndDate)
		}

		switch {
		case l.Type == catalog.LiabilityLeasing:
			r.PrincipalAmount = l.MonthlyPayment * float64(r.TermMonths)
			r.InterestRate = 0
			if r.RemainingBalance <= 0 {
				r.RemainingBalance = r.PrincipalAmount
			}
		case l.Type == catalog.LiabilityMortgage:
			if l.PropertyValue > 0 {
				r.PrincipalAmount = l.PropertyValue
			}
		case catalog.IsRevolving(l.Type):
			r.TermMonths = 0
		}

		r.PrincipalAmount = money(r.PrincipalAmount)
		r.RemainingBalance = money(r.RemainingBalance)
		r.MonthlyPayment = money(r.MonthlyPayment)
		out = append(out, r)
	}
	return out
}

// SavingRecords derives one deposit per positive asset bucket.
func SavingRecords(rec model.OnboardingRecord, today time.Time) []model.SavingRecord {
	date := today.Format(dateLayout)
	var out []model.SavingRecord
	add := func(category, description string, amount float64) {
		if amount <= 0 {
			return
		}
		out = append(out, model.SavingRecord{
			Category:    category,
			Description: description,
			Amount:      money(amount),
			IsRecurring: false,
			Date:        date,
			SavingType:  "deposit",
		})
	}

	a := rec.Assets
	if a.EmergencyFundMonths > 0 {
		add("emergency_fund", "Cash savings", a.Savings)
	} else {
		add("general", "Cash savings", a.Savings)
	}
	investments := "Investments"
	if len(a.Investments.Categories) > 0 {
		investments += " (" + strings.Join(a.Investments.Categories, ", ") + ")"
	}
	add("investment", investments, a.Investments.TotalValue)
	for _, p := range a.Properties {
		add("real_estate", p.Name, p.Value)
	}
	for _, v := range a.Vehicles {
		add("vehicle", v.Name, v.Value)
	}
	add("retirement", "Individual retirement account", a.Retirement.Individual)
	add("retirement", "Tax-advantaged retirement account", a.Retirement.TaxAdvantaged)
	add("retirement", "Employer retirement plan", a.Retirement.Employer)
	return out
}

func money(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return v
}

// nextOccurrence returns the first day of the next occurrence of month
// (this month counts), or today when month is unset.
func nextOccurrence(month int, today time.Time) time.Time {
	if month < 1 || month > 12 {
		return today
	}
	year := today.Year()
	if time.Month(month) < today.Month() {
		year++
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func monthsBetween(start, end string) int {
	s, err1 := time.Parse(dateLayout, start)
	e, err2 := time.Parse(dateLayout, end)
	if err1 != nil || err2 != nil || !e.After(s) {
		return 0
	}
	return (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
}
