package steps

import (
	"fmt"
	"strings"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

const maxEmergencyFundMonths = 120

type AssetsValidator struct{}

func (v *AssetsValidator) Validate(rec *model.OnboardingRecord) []model.Issue {
	var is issues
	a := rec.Assets

	if invalidAmount(a.Savings) {
		is.add("assets.savings", "INVALID_AMOUNT", "Amount must be a non-negative number")
	}
	if a.EmergencyFundMonths < 0 || a.EmergencyFundMonths > maxEmergencyFundMonths {
		is.add("assets.emergencyFundMonths", "OUT_OF_RANGE", "Enter between 0 and 120 months")
	}
	if invalidAmount(a.Investments.TotalValue) {
		is.add("assets.investments.totalValue", "INVALID_AMOUNT", "Amount must be a non-negative number")
	}
	for i, c := range a.Investments.Categories {
		if !catalog.OneOf(c, catalog.InvestmentKinds) {
			is.add(fmt.Sprintf("assets.investments.categories.%d", i), "UNKNOWN_VALUE", "Unknown investment type")
		}
	}
	validateAssetItems(&is, "assets.properties", a.Properties)
	validateAssetItems(&is, "assets.vehicles", a.Vehicles)

	r := a.Retirement
	retirement := []struct {
		path string
		val  float64
	}{
		{"assets.retirement.individual", r.Individual},
		{"assets.retirement.taxAdvantaged", r.TaxAdvantaged},
		{"assets.retirement.employer", r.Employer},
	}
	for _, acc := range retirement {
		if invalidAmount(acc.val) {
			is.add(acc.path, "INVALID_AMOUNT", "Amount must be a non-negative number")
		}
	}
	return is
}

func validateAssetItems(is *issues, prefix string, items []model.AssetItem) {
	for i, it := range items {
		path := fmt.Sprintf("%s.%d", prefix, i)
		if strings.TrimSpace(it.Name) == "" {
			is.add(path+".name", "REQUIRED", "Enter a name")
		}
		if invalidAmount(it.Value) {
			is.add(path+".value", "INVALID_AMOUNT", "Amount must be a non-negative number")
		}
	}
}
