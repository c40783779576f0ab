package catalog

// Allowed values for the enumerated record fields.
var (
	MaritalStatuses    = []string{"single", "married", "relationship", "divorced", "widowed"}
	ChildrenAgeRanges  = []string{"0-6", "7-12", "13-18", "18+", "mixed"}
	HousingTypes       = []string{"rent", "own", "mortgage", "family", "other"}
	EmploymentStatuses = []string{"employee", "business", "self_employed", "contract", "freelance", "unemployed", "retired", "student"}
	TaxForms           = []string{"scale", "linear", "lump_sum", "tax_card"}
	LiabilityTypes     = []string{"mortgage", "car_loan", "consumer_loan", "credit_card", "overdraft", "leasing", "student_loan", "other"}
	RepaymentTypes     = []string{"equal", "decreasing"}
	InvestmentKinds    = []string{"stocks", "bonds", "funds", "etf", "crypto", "deposits", "real_estate", "other"}
	GoalTypes          = []string{"short", "medium", "long"}
)

const (
	MaritalSingle   = "single"
	HousingMortgage = "mortgage"

	LiabilityMortgage   = "mortgage"
	LiabilityLeasing    = "leasing"
	LiabilityCreditCard = "credit_card"
	LiabilityOverdraft  = "overdraft"
)

// OneOf reports whether v is in allowed.
func OneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// RequiresTaxForm reports whether an employment status files its own taxes.
func RequiresTaxForm(status string) bool {
	return status == "business" || status == "self_employed"
}

// IsRevolving reports whether a liability type is a credit line rather than
// an amortizing loan.
func IsRevolving(t string) bool {
	return t == LiabilityCreditCard || t == LiabilityOverdraft
}
