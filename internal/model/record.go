package model

// OnboardingRecord is the whole wizard draft for one user.
type OnboardingRecord struct {
	Life              LifeData      `json:"life"`
	Income            IncomeData    `json:"income"`
	Expenses          ExpenseGroups `json:"expenses"`
	IrregularExpenses []ExpenseItem `json:"irregularExpenses"`
	Liabilities       []Liability   `json:"liabilities"`
	Assets            AssetsData    `json:"assets"`
	Goals             []Goal        `json:"goals"`
}

type LifeData struct {
	MaritalStatus              string  `json:"maritalStatus"`
	IncludePartnerFinances     bool    `json:"includePartnerFinances"`
	ChildrenCount              int     `json:"childrenCount"`
	ChildrenAgeRange           string  `json:"childrenAgeRange"`
	HousingType                string  `json:"housingType"`
	HasMortgage                bool    `json:"hasMortgage"`
	EmploymentStatus           string  `json:"employmentStatus"`
	TaxForm                    string  `json:"taxForm"`
	HouseholdCost              float64 `json:"householdCost"`
	BirthYear                  int     `json:"birthYear"`
	UseAuthorsCosts            bool    `json:"useAuthorsCosts"`
	RetirementPlanEnrolled     bool    `json:"retirementPlanEnrolled"`
	RetirementPlanEmployeeRate float64 `json:"retirementPlanEmployeeRate"`
	RetirementPlanEmployerRate float64 `json:"retirementPlanEmployerRate"`
}

type IncomeSource struct {
	Enabled bool    `json:"enabled"`
	Amount  float64 `json:"amount"`
}

type AdditionalSources struct {
	Rental       IncomeSource `json:"rental"`
	Bonuses      IncomeSource `json:"bonuses"`
	Freelance    IncomeSource `json:"freelance"`
	Benefits     IncomeSource `json:"benefits"`
	ChildBenefit IncomeSource `json:"childBenefit"`
}

// Each calls fn for every additional source in a fixed order.
func (a *AdditionalSources) Each(fn func(key string, src *IncomeSource)) {
	fn(SourceRental, &a.Rental)
	fn(SourceBonuses, &a.Bonuses)
	fn(SourceFreelance, &a.Freelance)
	fn(SourceBenefits, &a.Benefits)
	fn(SourceChildBenefit, &a.ChildBenefit)
}

const (
	SourceRental       = "rental"
	SourceBonuses      = "bonuses"
	SourceFreelance    = "freelance"
	SourceBenefits     = "benefits"
	SourceChildBenefit = "childBenefit"
)

type IncomeData struct {
	SalaryNet             float64           `json:"salaryNet"`
	AdditionalSources     AdditionalSources `json:"additionalSources"`
	IrregularIncomeAnnual float64           `json:"irregularIncomeAnnual"`
}

// ExpenseItem is a single expense line. Template items carry the id of the
// catalog entry they were created from.
type ExpenseItem struct {
	ID         string  `json:"id"`
	TemplateID string  `json:"templateId,omitempty"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	IsCustom   bool    `json:"isCustom"`
	Month      int     `json:"month,omitempty"`
}

// ExpenseGroups maps an expense group key (home, food, ...) to its items.
type ExpenseGroups map[string][]ExpenseItem

type Liability struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Description     string   `json:"description"`
	RemainingAmount float64  `json:"remainingAmount"`
	MonthlyPayment  float64  `json:"monthlyPayment"`
	InterestRate    *float64 `json:"interestRate,omitempty"`
	TermMonths      int      `json:"termMonths,omitempty"`
	StartDate       string   `json:"startDate,omitempty"`
	EndDate         string   `json:"endDate,omitempty"`
	RepaymentType   string   `json:"repaymentType,omitempty"`
	PropertyValue   float64  `json:"propertyValue,omitempty"`
}

type Investments struct {
	Categories []string `json:"categories"`
	TotalValue float64  `json:"totalValue"`
}

type AssetItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type RetirementAccounts struct {
	Individual    float64 `json:"individual"`
	TaxAdvantaged float64 `json:"taxAdvantaged"`
	Employer      float64 `json:"employer"`
}

func (r RetirementAccounts) Total() float64 {
	return r.Individual + r.TaxAdvantaged + r.Employer
}

type AssetsData struct {
	Savings             float64            `json:"savings"`
	EmergencyFundMonths int                `json:"emergencyFundMonths"`
	Investments         Investments        `json:"investments"`
	Properties          []AssetItem        `json:"properties"`
	Vehicles            []AssetItem        `json:"vehicles"`
	Retirement          RetirementAccounts `json:"retirement"`
}

type Goal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	TargetAmount float64 `json:"targetAmount"`
	TargetDate   string  `json:"targetDate,omitempty"`
	Priority     int     `json:"priority"`
}

// Metrics are the budgeting ratios derived from a record. Values are not
// rounded; see metrics.Display for presentation.
type Metrics struct {
	MonthlyIncome            float64 `json:"monthlyIncome"`
	RegularMonthlyExpenses   float64 `json:"regularMonthlyExpenses"`
	IrregularMonthlyExpenses float64 `json:"irregularMonthlyExpenses"`
	LiabilitiesMonthly       float64 `json:"liabilitiesMonthly"`
	LiabilitiesTotal         float64 `json:"liabilitiesTotal"`
	AssetsTotal              float64 `json:"assetsTotal"`
	Surplus                  float64 `json:"surplus"`
	DTI                      float64 `json:"dti"`
	EmergencyCoverage        float64 `json:"emergencyCoverage"`
	NetWorth                 float64 `json:"netWorth"`
}
