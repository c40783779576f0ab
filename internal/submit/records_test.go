package submit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcukro/home-budget-sub000/internal/model"
)

var today = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

func TestLoanRecordsDerivations(t *testing.T) {
	rec := model.OnboardingRecord{Liabilities: []model.Liability{
		{ID: "lease", Type: "leasing", MonthlyPayment: 900, TermMonths: 36, RemainingAmount: 0},
		{ID: "mort", Type: "mortgage", RemainingAmount: 250000, MonthlyPayment: 2000},
		{ID: "card", Type: "credit_card", RemainingAmount: 3200, MonthlyPayment: 300, TermMonths: 12},
		{ID: "car", Type: "car_loan", RemainingAmount: 20000, MonthlyPayment: 700, StartDate: "2025-01-01", EndDate: "2027-07-01"},
		{ID: "empty", Type: "consumer_loan"},
	}}

	loans := LoanRecords(rec, today)
	require.Len(t, loans, 4)

	lease := loans[0]
	assert.Equal(t, 32400.0, lease.PrincipalAmount)
	assert.Equal(t, 32400.0, lease.RemainingBalance)
	assert.Zero(t, lease.InterestRate)
	assert.Equal(t, "leasing", lease.Description)
	assert.Equal(t, "2026-05-10", lease.StartDate)

	assert.Equal(t, 250000.0, loans[1].PrincipalAmount, "mortgage without property value keeps the balance")

	card := loans[2]
	assert.Equal(t, 3200.0, card.PrincipalAmount)
	assert.Zero(t, card.TermMonths)
	assert.Equal(t, "credit card", card.Description)

	assert.Equal(t, 30, loans[3].TermMonths)
}

func TestIncomeRecordsSkipDisabledSources(t *testing.T) {
	rec := model.OnboardingRecord{Income: model.IncomeData{SalaryNet: 5000.555}}
	rec.Income.AdditionalSources.Bonuses = model.IncomeSource{Enabled: false, Amount: 900}
	rec.Income.AdditionalSources.Freelance = model.IncomeSource{Enabled: true, Amount: 0}
	rec.Income.AdditionalSources.ChildBenefit = model.IncomeSource{Enabled: true, Amount: 800}

	got := IncomeRecords(rec, today)
	require.Len(t, got, 2)
	assert.Equal(t, "salary", got[0].Category)
	assert.Equal(t, 5000.56, got[0].Amount)
	assert.Equal(t, "child_benefit", got[1].Category)
	assert.True(t, got[1].IsRecurring)
}

func TestSavingRecordsBuckets(t *testing.T) {
	rec := model.OnboardingRecord{Assets: model.AssetsData{
		Savings:     1000,
		Investments: model.Investments{Categories: []string{"etf", "bonds"}, TotalValue: 5000},
		Properties:  []model.AssetItem{{ID: "p", Name: "Flat", Value: 400000}},
		Vehicles:    []model.AssetItem{{ID: "v", Name: "Car", Value: 0}},
		Retirement:  model.RetirementAccounts{Employer: 1500},
	}}

	got := SavingRecords(rec, today)
	require.Len(t, got, 4)
	assert.Equal(t, "general", got[0].Category)
	assert.Equal(t, "Investments (etf, bonds)", got[1].Description)
	assert.Equal(t, "real_estate", got[2].Category)
	assert.Equal(t, "retirement", got[3].Category)
	for _, s := range got {
		assert.Equal(t, "deposit", s.SavingType)
	}
}

func TestNextOccurrence(t *testing.T) {
	assert.Equal(t, "2026-05-01", nextOccurrence(5, today).Format(dateLayout))
	assert.Equal(t, "2027-03-01", nextOccurrence(3, today).Format(dateLayout))
	assert.Equal(t, "2026-05-10", nextOccurrence(0, today).Format(dateLayout))
}
