package steps

import (
	"github.com/elcukro/home-budget-sub000/internal/model"
)

// Step identifies one screen of the onboarding wizard.
type Step string

const (
	Welcome           Step = "welcome"
	Life              Step = "life"
	Income            Step = "income"
	Expenses          Step = "expenses"
	IrregularExpenses Step = "irregularExpenses"
	Liabilities       Step = "liabilities"
	Assets            Step = "assets"
	Goals             Step = "goals"
	Summary           Step = "summary"
)

// Order is the fixed wizard sequence.
var Order = []Step{Welcome, Life, Income, Expenses, IrregularExpenses, Liabilities, Assets, Goals, Summary}

// Index returns the position of s in Order, or -1.
func Index(s Step) int {
	for i, o := range Order {
		if o == s {
			return i
		}
	}
	return -1
}

// Validator checks the slice of the record a step is responsible for.
type Validator interface {
	Validate(rec *model.OnboardingRecord) []model.Issue
}

var registry = map[Step]Validator{
	Life:              &LifeValidator{},
	Income:            &IncomeValidator{},
	Expenses:          &ExpensesValidator{},
	IrregularExpenses: &IrregularExpensesValidator{},
	Liabilities:       &LiabilitiesValidator{},
	Assets:            &AssetsValidator{},
	Goals:             &GoalsValidator{},
}

func Get(s Step) (Validator, bool) {
	v, ok := registry[s]
	return v, ok
}

// Validate returns the issues for step, or nil when the step is valid or
// has no validator (welcome, summary).
func Validate(s Step, rec *model.OnboardingRecord) []model.Issue {
	v, ok := registry[s]
	if !ok {
		return nil
	}
	issues := v.Validate(rec)
	if len(issues) == 0 {
		return nil
	}
	return issues
}

// IssuesToErrors builds the path -> message table rendered next to fields.
// The first issue for a path wins.
func IssuesToErrors(issues []model.Issue) map[string]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string]string, len(issues))
	for _, is := range issues {
		if _, ok := out[is.Path]; !ok {
			out[is.Path] = is.Message
		}
	}
	return out
}

type issues []model.Issue

func (is *issues) add(path, code, msg string) {
	*is = append(*is, model.Issue{Path: path, Code: code, Message: msg})
}
