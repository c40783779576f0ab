// Package catalog holds the static expense templates and enumerations the
// onboarding record is normalized against. Nothing here is mutated at
// runtime; accessors hand out copies.
package catalog

import "github.com/elcukro/home-budget-sub000/internal/model"

// Template is a canonical expense line.
type Template struct {
	ID       string
	Group    string
	Name     string
	Category string
	Month    int
}

const (
	GroupHome          = "home"
	GroupTransport     = "transport"
	GroupFood          = "food"
	GroupFamily        = "family"
	GroupLifestyle     = "lifestyle"
	GroupSubscriptions = "subscriptions"
	GroupObligations   = "obligations"
	GroupPets          = "pets"
	GroupInsurance     = "insurance"
	GroupOther         = "other"
)

// ChildBenefitPerChild caps the child benefit income per child.
const ChildBenefitPerChild = 800

// ChildBenefitLimit returns the child benefit cap for a household, in
// float64 so that it never overflows.
func ChildBenefitLimit(children int) float64 {
	if children <= 0 {
		return 0
	}
	return float64(children) * ChildBenefitPerChild
}

var groups = []string{
	GroupHome, GroupTransport, GroupFood, GroupFamily, GroupLifestyle,
	GroupSubscriptions, GroupObligations, GroupPets, GroupInsurance, GroupOther,
}

var expenseTemplates = []Template{
	{ID: "home-rent", Group: GroupHome, Name: "Rent", Category: "housing"},
	{ID: "home-utilities", Group: GroupHome, Name: "Utilities", Category: "utilities"},
	{ID: "home-internet", Group: GroupHome, Name: "Internet and phone", Category: "utilities"},
	{ID: "home-maintenance", Group: GroupHome, Name: "Repairs and maintenance", Category: "housing"},

	{ID: "transport-fuel", Group: GroupTransport, Name: "Fuel", Category: "transportation"},
	{ID: "transport-public", Group: GroupTransport, Name: "Public transport", Category: "transportation"},
	{ID: "transport-service", Group: GroupTransport, Name: "Car service and parking", Category: "transportation"},

	{ID: "food-groceries", Group: GroupFood, Name: "Groceries", Category: "food"},
	{ID: "food-dining", Group: GroupFood, Name: "Eating out", Category: "food"},

	{ID: "family-childcare", Group: GroupFamily, Name: "Childcare", Category: "childcare"},
	{ID: "family-education", Group: GroupFamily, Name: "School and activities", Category: "education"},

	{ID: "lifestyle-entertainment", Group: GroupLifestyle, Name: "Entertainment", Category: "entertainment"},
	{ID: "lifestyle-clothing", Group: GroupLifestyle, Name: "Clothing", Category: "clothing"},
	{ID: "lifestyle-sport", Group: GroupLifestyle, Name: "Sport and health", Category: "healthcare"},

	{ID: "subscriptions-streaming", Group: GroupSubscriptions, Name: "Streaming", Category: "subscriptions"},
	{ID: "subscriptions-software", Group: GroupSubscriptions, Name: "Apps and software", Category: "subscriptions"},

	{ID: "obligations-alimony", Group: GroupObligations, Name: "Alimony", Category: "other"},
	{ID: "obligations-other", Group: GroupObligations, Name: "Other obligations", Category: "other"},

	{ID: "pets-food", Group: GroupPets, Name: "Pet food", Category: "pets"},
	{ID: "pets-vet", Group: GroupPets, Name: "Vet", Category: "pets"},

	{ID: "insurance-life", Group: GroupInsurance, Name: "Life insurance", Category: "insurance"},
	{ID: "insurance-health", Group: GroupInsurance, Name: "Health insurance", Category: "insurance"},
	{ID: "insurance-property", Group: GroupInsurance, Name: "Home insurance", Category: "insurance"},

	{ID: "other-misc", Group: GroupOther, Name: "Other", Category: "other"},
}

var irregularTemplates = []Template{
	{ID: "irregular-car-insurance", Name: "Car insurance", Category: "insurance"},
	{ID: "irregular-car-service", Name: "Car inspection and service", Category: "transportation"},
	{ID: "irregular-holidays", Name: "Holidays", Category: "travel"},
	{ID: "irregular-gifts", Name: "Gifts and celebrations", Category: "gifts", Month: 12},
	{ID: "irregular-property-tax", Name: "Property tax", Category: "housing", Month: 3},
	{ID: "irregular-annual-subscriptions", Name: "Annual subscriptions", Category: "subscriptions"},
	{ID: "irregular-medical", Name: "Medical and dental", Category: "healthcare"},
	{ID: "irregular-school-start", Name: "School year start", Category: "education", Month: 9},
}

// legacyFields maps the old flat expense layout onto templates.
var legacyFields = map[string]string{
	"housing":        "home-rent",
	"transportation": "transport-fuel",
	"food":           "food-groceries",
	"utilities":      "home-utilities",
	"insurance":      "insurance-health",
	"other":          "other-misc",
}

// LegacyMarker is the key whose presence identifies the flat expense layout.
const LegacyMarker = "housing"

var categories = map[string]bool{
	"housing": true, "transportation": true, "food": true, "utilities": true,
	"insurance": true, "healthcare": true, "entertainment": true, "education": true,
	"childcare": true, "clothing": true, "subscriptions": true, "pets": true,
	"personal": true, "debt": true, "gifts": true, "travel": true, "other": true,
}

var (
	expenseByID   = index(expenseTemplates)
	irregularByID = index(irregularTemplates)
)

func index(ts []Template) map[string]Template {
	m := make(map[string]Template, len(ts))
	for _, t := range ts {
		m[t.ID] = t
	}
	return m
}

// Groups returns the expense group keys in display order.
func Groups() []string {
	return append([]string(nil), groups...)
}

// IsGroup reports whether key is a known expense group.
func IsGroup(key string) bool {
	for _, g := range groups {
		if g == key {
			return true
		}
	}
	return false
}

// GroupTemplates returns the templates of one group in catalog order.
func GroupTemplates(group string) []Template {
	var out []Template
	for _, t := range expenseTemplates {
		if t.Group == group {
			out = append(out, t)
		}
	}
	return out
}

// ExpenseTemplate looks up a monthly expense template by id.
func ExpenseTemplate(id string) (Template, bool) {
	t, ok := expenseByID[id]
	return t, ok
}

// IrregularTemplates returns the irregular expense templates in catalog order.
func IrregularTemplates() []Template {
	return append([]Template(nil), irregularTemplates...)
}

// IrregularTemplate looks up an irregular expense template by id.
func IrregularTemplate(id string) (Template, bool) {
	t, ok := irregularByID[id]
	return t, ok
}

// LegacyTemplate resolves a field of the flat expense layout.
func LegacyTemplate(field string) (Template, bool) {
	id, ok := legacyFields[field]
	if !ok {
		return Template{}, false
	}
	return ExpenseTemplate(id)
}

// IsCategory reports whether c is accepted by the budget backend.
func IsCategory(c string) bool {
	return categories[c]
}

// Item builds a zero-amount line item from a template.
func (t Template) Item() model.ExpenseItem {
	return model.ExpenseItem{
		ID:         t.ID,
		TemplateID: t.ID,
		Name:       t.Name,
		Category:   t.Category,
		Month:      t.Month,
	}
}

// DefaultExpenses returns every group populated with zero-amount template items.
func DefaultExpenses() model.ExpenseGroups {
	out := make(model.ExpenseGroups, len(groups))
	for _, g := range groups {
		items := []model.ExpenseItem{}
		for _, t := range GroupTemplates(g) {
			items = append(items, t.Item())
		}
		out[g] = items
	}
	return out
}

// DefaultIrregular returns the irregular expense templates at zero.
func DefaultIrregular() []model.ExpenseItem {
	out := make([]model.ExpenseItem, 0, len(irregularTemplates))
	for _, t := range irregularTemplates {
		out = append(out, t.Item())
	}
	return out
}
