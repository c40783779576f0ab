// Package metrics derives the budgeting ratios shown alongside the wizard.
package metrics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/elcukro/home-budget-sub000/internal/model"
)

// Compute derives the metrics for rec. It never fails: every ratio with a
// zero denominator is reported as 0. No rounding is applied.
func Compute(rec model.OnboardingRecord) model.Metrics {
	var m model.Metrics

	m.MonthlyIncome = rec.Income.SalaryNet + rec.Income.IrregularIncomeAnnual/12
	rec.Income.AdditionalSources.Each(func(_ string, src *model.IncomeSource) {
		if src.Enabled {
			m.MonthlyIncome += src.Amount
		}
	})

	for _, items := range rec.Expenses {
		for _, it := range items {
			m.RegularMonthlyExpenses += it.Amount
		}
	}

	var irregular float64
	for _, it := range rec.IrregularExpenses {
		irregular += it.Amount
	}
	m.IrregularMonthlyExpenses = irregular / 12

	for _, l := range rec.Liabilities {
		m.LiabilitiesMonthly += l.MonthlyPayment
		m.LiabilitiesTotal += l.RemainingAmount
	}

	a := rec.Assets
	m.AssetsTotal = a.Savings + a.Investments.TotalValue + a.Retirement.Total()
	for _, p := range a.Properties {
		m.AssetsTotal += p.Value
	}
	for _, v := range a.Vehicles {
		m.AssetsTotal += v.Value
	}

	spending := m.RegularMonthlyExpenses + m.IrregularMonthlyExpenses
	m.Surplus = m.MonthlyIncome - (spending + m.LiabilitiesMonthly)
	if m.MonthlyIncome > 0 {
		m.DTI = m.LiabilitiesMonthly / m.MonthlyIncome * 100
	}
	if spending > 0 {
		m.EmergencyCoverage = a.Savings / spending
	}
	m.NetWorth = m.AssetsTotal - m.LiabilitiesTotal
	return m
}

// Display rounds money to 2 decimals and ratios to 1 for presentation.
func Display(m model.Metrics) model.Metrics {
	return model.Metrics{
		MonthlyIncome:            round(m.MonthlyIncome, 2),
		RegularMonthlyExpenses:   round(m.RegularMonthlyExpenses, 2),
		IrregularMonthlyExpenses: round(m.IrregularMonthlyExpenses, 2),
		LiabilitiesMonthly:       round(m.LiabilitiesMonthly, 2),
		LiabilitiesTotal:         round(m.LiabilitiesTotal, 2),
		AssetsTotal:              round(m.AssetsTotal, 2),
		Surplus:                  round(m.Surplus, 2),
		DTI:                      round(m.DTI, 1),
		EmergencyCoverage:        round(m.EmergencyCoverage, 1),
		NetWorth:                 round(m.NetWorth, 2),
	}
}

func round(f float64, places int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	v, _ := decimal.NewFromFloat(f).Round(places).Float64()
	return v
}
