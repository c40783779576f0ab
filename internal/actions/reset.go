package actions

import "github.com/elcukro/home-budget-sub000/internal/model"

// ResetHandler returns to the welcome step with a default record. The
// caller drops the stored draft.
type ResetHandler struct{}

func (h *ResetHandler) Validate(env *Env, action *model.Action) []model.Message {
	return nil
}

func (h *ResetHandler) Apply(env *Env, action *model.Action) []model.Message {
	env.Session.Reset()
	env.Issues = nil
	env.WasReset = true
	env.Submitted = false
	return nil
}
