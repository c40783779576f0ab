package actions

import (
	"fmt"

	"github.com/elcukro/home-budget-sub000/internal/model"
	"github.com/elcukro/home-budget-sub000/internal/steps"
)

// FinishHandler submits the record from the summary step.
type FinishHandler struct{}

// Validate also reports, as warnings, every step that was skipped while
// still invalid. They do not block the submission.
func (h *FinishHandler) Validate(env *Env, action *model.Action) []model.Message {
	if env.Session.Completed {
		return completedMessage()
	}
	if env.Session.Step != steps.Summary {
		return []model.Message{critical("NOT_AT_SUMMARY", "Onboarding can only be finished from the summary")}
	}
	if env.Submitter == nil {
		return []model.Message{critical("SUBMISSION_UNAVAILABLE", "Submission is not configured")}
	}

	var msgs []model.Message
	for _, st := range steps.Order {
		if len(steps.Validate(st, &env.Session.Record)) > 0 {
			msg := warning("STEP_INCOMPLETE", fmt.Sprintf("Step %s has unresolved issues", st))
			msg.Path = string(st)
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// Apply pushes the record upstream. Failures surface as one generic
// message; the session stays on the summary so the user can retry.
func (h *FinishHandler) Apply(env *Env, action *model.Action) []model.Message {
	if _, err := env.Submitter.Submit(env.Ctx, env.Token, env.Session.Record); err != nil {
		env.SubmitErr = err
		return []model.Message{critical("SUBMISSION_FAILED", "Saving your answers failed, please try again")}
	}
	env.Session.Complete()
	env.Submitted = true
	return nil
}
