package steps

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

func codes(issues []model.Issue) map[string]string {
	out := map[string]string{}
	for _, is := range issues {
		out[is.Path] = is.Code
	}
	return out
}

func validLife() model.LifeData {
	return model.LifeData{MaritalStatus: "married", HousingType: "rent", EmploymentStatus: "employee"}
}

func TestWelcomeAndSummaryHaveNoValidator(t *testing.T) {
	var rec model.OnboardingRecord
	assert.Nil(t, Validate(Welcome, &rec))
	assert.Nil(t, Validate(Summary, &rec))
	_, ok := Get(Summary)
	assert.False(t, ok)
}

func TestLifeCrossFieldRules(t *testing.T) {
	rec := model.OnboardingRecord{Life: model.LifeData{
		MaritalStatus:          "single",
		IncludePartnerFinances: true,
		ChildrenCount:          2,
		HousingType:            "rent",
		HasMortgage:            true,
		EmploymentStatus:       "business",
	}}

	got := codes(Validate(Life, &rec))
	assert.Equal(t, map[string]string{
		"life.taxForm":                "TAX_FORM_REQUIRED",
		"life.childrenAgeRange":       "CHILDREN_AGE_REQUIRED",
		"life.includePartnerFinances": "PARTNER_NOT_ALLOWED",
		"life.hasMortgage":            "MORTGAGE_MISMATCH",
	}, got)

	rec.Life = validLife()
	assert.Nil(t, Validate(Life, &rec))
}

func TestLifeRanges(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	rec := model.OnboardingRecord{Life: validLife()}
	rec.Life.BirthYear = 2030
	rec.Life.ChildrenCount = 21
	rec.Life.ChildrenAgeRange = "mixed"
	rec.Life.RetirementPlanEnrolled = true
	rec.Life.RetirementPlanEmployeeRate = 2
	rec.Life.RetirementPlanEmployerRate = 1

	got := codes(Validate(Life, &rec))
	assert.Equal(t, "OUT_OF_RANGE", got["life.birthYear"])
	assert.Equal(t, "OUT_OF_RANGE", got["life.childrenCount"])
	assert.Equal(t, "OUT_OF_RANGE", got["life.retirementPlanEmployerRate"])
	assert.NotContains(t, got, "life.retirementPlanEmployeeRate")
}

func TestIncomeRules(t *testing.T) {
	rec := model.OnboardingRecord{Life: validLife()}
	rec.Income.SalaryNet = math.NaN()
	rec.Income.AdditionalSources.Freelance = model.IncomeSource{Enabled: true}
	rec.Income.AdditionalSources.ChildBenefit = model.IncomeSource{Enabled: true, Amount: 100}

	got := codes(Validate(Income, &rec))
	assert.Equal(t, "INVALID_AMOUNT", got["income.salaryNet"])
	assert.Equal(t, "AMOUNT_REQUIRED", got["income.additionalSources.freelance.amount"])
	assert.Equal(t, "CHILD_BENEFIT_WITHOUT_CHILDREN", got["income.additionalSources.childBenefit.enabled"])

	rec = model.OnboardingRecord{Life: validLife()}
	rec.Life.ChildrenCount = 1
	rec.Income.AdditionalSources.ChildBenefit = model.IncomeSource{Enabled: true, Amount: 900}
	got = codes(Validate(Income, &rec))
	assert.Equal(t, "CHILD_BENEFIT_LIMIT", got["income.additionalSources.childBenefit.amount"])

	rec.Life.ChildrenCount = math.MaxInt64 / 100
	rec.Income.AdditionalSources.ChildBenefit = model.IncomeSource{Enabled: true, Amount: 500}
	got = codes(Validate(Income, &rec))
	assert.NotContains(t, got, "income.additionalSources.childBenefit.amount")
}

func TestExpenseItems(t *testing.T) {
	rec := model.OnboardingRecord{
		Expenses: model.ExpenseGroups{
			"home":  {{ID: "home-rent", TemplateID: "home-rent", Name: "Rent", Category: "housing", Amount: 100}},
			"boats": {{ID: "x", Name: "Boat", Category: "other", IsCustom: true}},
			"food":  {{ID: "y", Name: " ", Category: "caviar", Amount: -1}},
		},
		IrregularExpenses: []model.ExpenseItem{{ID: "z", Name: "Trip", Category: "other", IsCustom: true, Month: 13}},
	}

	got := codes(Validate(Expenses, &rec))
	assert.Equal(t, map[string]string{
		"expenses.boats":             "UNKNOWN_GROUP",
		"expenses.food.0.name":       "REQUIRED",
		"expenses.food.0.amount":     "INVALID_AMOUNT",
		"expenses.food.0.category":   "UNKNOWN_CATEGORY",
		"expenses.food.0.templateId": "TEMPLATE_REQUIRED",
	}, got)

	got = codes(Validate(IrregularExpenses, &rec))
	assert.Equal(t, map[string]string{"irregularExpenses.0.month": "OUT_OF_RANGE"}, got)
}

func TestLiabilities(t *testing.T) {
	rate := 120.0
	rec := model.OnboardingRecord{Liabilities: []model.Liability{
		{Type: catalog.LiabilityLeasing, MonthlyPayment: 900},
		{Type: "mortgage", InterestRate: &rate, StartDate: "2024-05-01", EndDate: "2020-01-01"},
		{Type: "car_loan", RemainingAmount: 1000, StartDate: "01/05/2024"},
	}}

	got := codes(Validate(Liabilities, &rec))
	assert.Equal(t, "TERM_REQUIRED", got["liabilities.0.termMonths"])
	assert.Equal(t, "LIABILITY_EMPTY", got["liabilities.1.remainingAmount"])
	assert.Equal(t, "OUT_OF_RANGE", got["liabilities.1.interestRate"])
	assert.Equal(t, "DATE_ORDER", got["liabilities.1.endDate"])
	assert.Equal(t, "INVALID_DATE", got["liabilities.2.startDate"])
}

func TestAssets(t *testing.T) {
	rec := model.OnboardingRecord{Assets: model.AssetsData{
		EmergencyFundMonths: 121,
		Properties:          []model.AssetItem{{ID: "p", Value: 10}},
		Retirement:          model.RetirementAccounts{TaxAdvantaged: -1},
	}}
	got := codes(Validate(Assets, &rec))
	assert.Equal(t, map[string]string{
		"assets.emergencyFundMonths":      "OUT_OF_RANGE",
		"assets.properties.0.name":        "REQUIRED",
		"assets.retirement.taxAdvantaged": "INVALID_AMOUNT",
	}, got)
}

func TestGoalsRequireAtLeastOne(t *testing.T) {
	var rec model.OnboardingRecord
	issues := Validate(Goals, &rec)
	require.Len(t, issues, 1)
	assert.Equal(t, model.Issue{Path: "goals", Code: "GOALS_REQUIRED", Message: "Add at least one financial goal"}, issues[0])

	rec.Goals = []model.Goal{{ID: "g", Name: "Car", Type: "long", Priority: 6}}
	got := codes(Validate(Goals, &rec))
	assert.Equal(t, "AMOUNT_REQUIRED", got["goals.0.targetAmount"])
	assert.Equal(t, "OUT_OF_RANGE", got["goals.0.priority"])
	assert.NotContains(t, got, "goals")
}

func TestIssuesToErrorsFirstWins(t *testing.T) {
	errs := IssuesToErrors([]model.Issue{
		{Path: "a", Message: "first"},
		{Path: "a", Message: "second"},
		{Path: "b", Message: "other"},
	})
	assert.Equal(t, map[string]string{"a": "first", "b": "other"}, errs)
	assert.Nil(t, IssuesToErrors(nil))
}

func TestOrder(t *testing.T) {
	assert.Equal(t, 0, Index(Welcome))
	assert.Equal(t, len(Order)-1, Index(Summary))
	assert.Equal(t, -1, Index("nowhere"))
}
