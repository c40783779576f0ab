package actions

import (
	"github.com/elcukro/home-budget-sub000/internal/model"
	"github.com/elcukro/home-budget-sub000/internal/steps"
)

type NextHandler struct{}

// Validate refuses to leave a step whose slice of the record is invalid.
// Every issue becomes one CRITICAL message carrying its field path.
func (h *NextHandler) Validate(env *Env, action *model.Action) []model.Message {
	if env.Session.Completed {
		return completedMessage()
	}
	if env.Session.Step == steps.Summary {
		return []model.Message{critical("AT_LAST_STEP", "Summary is the last step, use finish")}
	}
	issues := env.Session.Validate()
	if len(issues) == 0 {
		return nil
	}
	env.Issues = issues
	msgs := make([]model.Message, 0, len(issues))
	for _, is := range issues {
		msgs = append(msgs, model.Message{
			Level:   model.LevelCritical,
			Code:    is.Code,
			Message: is.Message,
			Path:    is.Path,
		})
	}
	return msgs
}

func (h *NextHandler) Apply(env *Env, action *model.Action) []model.Message {
	issues, err := env.Session.Next()
	if err != nil {
		return []model.Message{critical("AT_LAST_STEP", err.Error())}
	}
	if len(issues) > 0 {
		env.Issues = issues
		return []model.Message{critical("VALIDATION_FAILED", "Step is not valid")}
	}
	env.Issues = nil
	env.moved()
	return nil
}

type BackHandler struct{}

func (h *BackHandler) Validate(env *Env, action *model.Action) []model.Message {
	if env.Session.Completed {
		return completedMessage()
	}
	if env.Session.Step == steps.Welcome {
		return []model.Message{critical("AT_FIRST_STEP", "Welcome is the first step")}
	}
	return nil
}

func (h *BackHandler) Apply(env *Env, action *model.Action) []model.Message {
	if err := env.Session.Back(); err != nil {
		return []model.Message{critical("AT_FIRST_STEP", err.Error())}
	}
	env.Issues = nil
	env.moved()
	return nil
}

// SkipHandler advances without validating the current step.
type SkipHandler struct{}

func (h *SkipHandler) Validate(env *Env, action *model.Action) []model.Message {
	if env.Session.Completed {
		return completedMessage()
	}
	if env.Session.Step == steps.Summary {
		return []model.Message{critical("AT_LAST_STEP", "Summary is the last step, use finish")}
	}
	return nil
}

func (h *SkipHandler) Apply(env *Env, action *model.Action) []model.Message {
	if err := env.Session.Skip(); err != nil {
		return []model.Message{critical("AT_LAST_STEP", err.Error())}
	}
	env.Issues = nil
	env.moved()
	return nil
}
