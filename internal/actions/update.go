package actions

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/merge"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

const childBenefitPath = "income.additionalSources.childBenefit.amount"

type UpdateHandler struct{}

func (h *UpdateHandler) Validate(env *Env, action *model.Action) []model.Message {
	if env.Session.Completed {
		return completedMessage()
	}
	if !catalog.OneOf(action.Section, merge.Sections) {
		return []model.Message{critical("UNKNOWN_SECTION", fmt.Sprintf("Unknown section: %q", action.Section))}
	}
	if len(action.Value) == 0 || !json.Valid(action.Value) {
		return []model.Message{critical("INVALID_VALUE", "Value must be a JSON document")}
	}
	return nil
}

// Apply replaces the section. A child benefit reduced by the record
// invariants is reported as a warning so the client can refresh its form.
func (h *UpdateHandler) Apply(env *Env, action *model.Action) []model.Message {
	if err := env.Session.Update(action.Section, action.Value); err != nil {
		return []model.Message{critical("INVALID_VALUE", err.Error())}
	}
	if action.Section != merge.SectionIncome {
		return nil
	}

	var requested model.OnboardingRecord
	if err := merge.DecodeSection(&requested, merge.SectionIncome, action.Value); err != nil {
		return nil
	}
	asked := requested.Income.AdditionalSources.ChildBenefit.Amount
	kept := env.Session.Record.Income.AdditionalSources.ChildBenefit.Amount
	if asked <= kept {
		return nil
	}
	msg := warning("CHILD_BENEFIT_LIMITED", fmt.Sprintf("Child benefit limited to %.2f", kept))
	msg.Path = childBenefitPath
	return []model.Message{msg}
}
