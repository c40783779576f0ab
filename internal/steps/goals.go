package steps

import (
	"fmt"
	"math"
	"strings"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

type GoalsValidator struct{}

// Validate requires at least one goal; the empty-list issue is reported on
// the "goals" path itself, separately from per-goal problems.
func (v *GoalsValidator) Validate(rec *model.OnboardingRecord) []model.Issue {
	var is issues
	if len(rec.Goals) == 0 {
		is.add("goals", "GOALS_REQUIRED", "Add at least one financial goal")
		return is
	}
	for i, g := range rec.Goals {
		path := fmt.Sprintf("goals.%d", i)
		if strings.TrimSpace(g.Name) == "" {
			is.add(path+".name", "REQUIRED", "Enter a name for this goal")
		}
		if !catalog.OneOf(g.Type, catalog.GoalTypes) {
			is.add(path+".type", "REQUIRED", "Select the goal horizon")
		}
		if invalidAmount(g.TargetAmount) || g.TargetAmount == 0 {
			is.add(path+".targetAmount", "AMOUNT_REQUIRED", "Enter a target amount greater than 0")
		}
		if g.Priority < 1 || g.Priority > 5 {
			is.add(path+".priority", "OUT_OF_RANGE", "Priority must be between 1 and 5")
		}
		if _, ok := parseDate(g.TargetDate); g.TargetDate != "" && !ok {
			is.add(path+".targetDate", "INVALID_DATE", "Enter a valid date")
		}
	}
	return is
}

func invalidAmount(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0) || f < 0
}
