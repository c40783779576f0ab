package steps

import (
	"fmt"
	"time"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

const maxInterestRate = 100

type LiabilitiesValidator struct{}

func (v *LiabilitiesValidator) Validate(rec *model.OnboardingRecord) []model.Issue {
	var is issues
	for i, l := range rec.Liabilities {
		path := fmt.Sprintf("liabilities.%d", i)
		if !catalog.OneOf(l.Type, catalog.LiabilityTypes) {
			is.add(path+".type", "REQUIRED", "Select the type of debt")
		}
		if invalidAmount(l.RemainingAmount) {
			is.add(path+".remainingAmount", "INVALID_AMOUNT", "Amount must be a non-negative number")
		}
		if invalidAmount(l.MonthlyPayment) {
			is.add(path+".monthlyPayment", "INVALID_AMOUNT", "Amount must be a non-negative number")
		}
		if l.RemainingAmount == 0 && l.MonthlyPayment == 0 {
			is.add(path+".remainingAmount", "LIABILITY_EMPTY", "Enter the remaining balance or the monthly payment")
		}
		if l.InterestRate != nil && (invalidAmount(*l.InterestRate) || *l.InterestRate > maxInterestRate) {
			is.add(path+".interestRate", "OUT_OF_RANGE", "Interest rate must be between 0% and 100%")
		}
		if l.Type == catalog.LiabilityLeasing && l.TermMonths <= 0 {
			is.add(path+".termMonths", "TERM_REQUIRED", "Enter the leasing term in months")
		}
		if l.RepaymentType != "" && !catalog.OneOf(l.RepaymentType, catalog.RepaymentTypes) {
			is.add(path+".repaymentType", "UNKNOWN_VALUE", "Select the repayment structure")
		}

		start, startOK := parseDate(l.StartDate)
		end, endOK := parseDate(l.EndDate)
		if l.StartDate != "" && !startOK {
			is.add(path+".startDate", "INVALID_DATE", "Enter a valid date")
		}
		if l.EndDate != "" && !endOK {
			is.add(path+".endDate", "INVALID_DATE", "Enter a valid date")
		}
		if startOK && endOK && end.Before(start) {
			is.add(path+".endDate", "DATE_ORDER", "End date must be after the start date")
		}
	}
	return is
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}
