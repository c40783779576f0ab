// Package actions holds the handlers for wizard actions. Each handler
// validates an action against the session before applying it; a CRITICAL
// message from either phase stops the batch.
package actions

import (
	"context"

	"github.com/elcukro/home-budget-sub000/internal/model"
	"github.com/elcukro/home-budget-sub000/internal/submit"
	"github.com/elcukro/home-budget-sub000/internal/wizard"
)

// Handler defines the contract for all action implementations.
type Handler interface {
	Validate(env *Env, action *model.Action) []model.Message
	Apply(env *Env, action *model.Action) []model.Message
}

// Submitter pushes a finished record upstream.
type Submitter interface {
	Submit(ctx context.Context, token string, rec model.OnboardingRecord) (*submit.Report, error)
}

// Env is the state shared by the actions of one batch. Handlers record
// side effects on it and the caller carries them out.
type Env struct {
	Ctx       context.Context
	Token     string
	Session   *wizard.Session
	Submitter Submitter

	// Issues holds the validation issues of the last refused step change.
	Issues []model.Issue
	// WasReset is set when the record went back to defaults.
	WasReset bool
	// Submitted is set once the record was stored upstream.
	Submitted bool
	// SubmitErr keeps the cause of a failed submission for logging.
	SubmitErr error
	// Moves lists every step entered during the batch.
	Moves []string
}

func (env *Env) moved() {
	env.Moves = append(env.Moves, string(env.Session.Step))
}

func critical(code, msg string) model.Message {
	return model.Message{Level: model.LevelCritical, Code: code, Message: msg}
}

func warning(code, msg string) model.Message {
	return model.Message{Level: model.LevelWarning, Code: code, Message: msg}
}

func completedMessage() []model.Message {
	return []model.Message{critical("ALREADY_COMPLETED", "Onboarding was already completed")}
}
