package steps

import (
	"time"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

const (
	maxChildren  = 20
	minBirthYear = 1900

	minEmployeeRate = 0.5
	maxEmployeeRate = 4
	minEmployerRate = 1.5
	maxEmployerRate = 4
)

var now = time.Now

type LifeValidator struct{}

func (v *LifeValidator) Validate(rec *model.OnboardingRecord) []model.Issue {
	var is issues
	l := rec.Life

	if !catalog.OneOf(l.MaritalStatus, catalog.MaritalStatuses) {
		is.add("life.maritalStatus", "REQUIRED", "Select your marital status")
	}
	if !catalog.OneOf(l.HousingType, catalog.HousingTypes) {
		is.add("life.housingType", "REQUIRED", "Select your housing situation")
	}
	if !catalog.OneOf(l.EmploymentStatus, catalog.EmploymentStatuses) {
		is.add("life.employmentStatus", "REQUIRED", "Select your employment status")
	}
	if catalog.RequiresTaxForm(l.EmploymentStatus) && !catalog.OneOf(l.TaxForm, catalog.TaxForms) {
		is.add("life.taxForm", "TAX_FORM_REQUIRED", "Select the tax form of your business")
	}

	if l.ChildrenCount < 0 || l.ChildrenCount > maxChildren {
		is.add("life.childrenCount", "OUT_OF_RANGE", "Number of children must be between 0 and 20")
	}
	if l.ChildrenCount > 0 && !catalog.OneOf(l.ChildrenAgeRange, catalog.ChildrenAgeRanges) {
		is.add("life.childrenAgeRange", "CHILDREN_AGE_REQUIRED", "Select the age range of your children")
	}

	if l.MaritalStatus == catalog.MaritalSingle && l.IncludePartnerFinances {
		is.add("life.includePartnerFinances", "PARTNER_NOT_ALLOWED", "Partner finances cannot be included for a single household")
	}
	if l.HousingType != catalog.HousingMortgage && l.HasMortgage {
		is.add("life.hasMortgage", "MORTGAGE_MISMATCH", "A mortgage requires the mortgage housing type")
	}

	if invalidAmount(l.HouseholdCost) {
		is.add("life.householdCost", "INVALID_AMOUNT", "Amount must be a non-negative number")
	}
	if l.BirthYear != 0 && (l.BirthYear < minBirthYear || l.BirthYear > now().Year()) {
		is.add("life.birthYear", "OUT_OF_RANGE", "Enter a valid birth year")
	}

	if l.RetirementPlanEnrolled {
		if r := l.RetirementPlanEmployeeRate; r < minEmployeeRate || r > maxEmployeeRate {
			is.add("life.retirementPlanEmployeeRate", "OUT_OF_RANGE", "Employee contribution must be between 0.5% and 4%")
		}
		if r := l.RetirementPlanEmployerRate; r < minEmployerRate || r > maxEmployerRate {
			is.add("life.retirementPlanEmployerRate", "OUT_OF_RANGE", "Employer contribution must be between 1.5% and 4%")
		}
	}
	return is
}
