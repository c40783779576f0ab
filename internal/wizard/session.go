// Package wizard implements the linear onboarding state machine over a
// single record: welcome -> life -> ... -> goals -> summary.
package wizard

import (
	"errors"

	"github.com/elcukro/home-budget-sub000/internal/merge"
	"github.com/elcukro/home-budget-sub000/internal/metrics"
	"github.com/elcukro/home-budget-sub000/internal/model"
	"github.com/elcukro/home-budget-sub000/internal/steps"
)

var (
	ErrAtSummary = errors.New("summary is the last step")
	ErrAtWelcome = errors.New("welcome is the first step")
	ErrCompleted = errors.New("onboarding already completed")
)

// Session is one user's wizard. It is not safe for concurrent use.
type Session struct {
	Step      steps.Step
	Record    model.OnboardingRecord
	Completed bool
}

// New starts a session at the welcome step with rec as the working record.
func New(rec model.OnboardingRecord) *Session {
	merge.Normalize(&rec)
	return &Session{Step: steps.Welcome, Record: rec}
}

// Update replaces one section of the record from a client payload and
// re-applies the record invariants.
func (s *Session) Update(section string, raw []byte) error {
	if s.Completed {
		return ErrCompleted
	}
	rec := s.Record
	if err := merge.DecodeSection(&rec, section, raw); err != nil {
		return err
	}
	merge.Normalize(&rec)
	s.Record = rec
	return nil
}

// Validate returns the issues blocking the current step.
func (s *Session) Validate() []model.Issue {
	return steps.Validate(s.Step, &s.Record)
}

// Next advances one step if the current step validates. The issues are
// returned unchanged when it does not.
func (s *Session) Next() ([]model.Issue, error) {
	if s.Step == steps.Summary {
		return nil, ErrAtSummary
	}
	if issues := s.Validate(); len(issues) > 0 {
		return issues, nil
	}
	s.advance()
	return nil, nil
}

// Skip advances one step without validation.
func (s *Session) Skip() error {
	if s.Step == steps.Summary {
		return ErrAtSummary
	}
	s.advance()
	return nil
}

func (s *Session) Back() error {
	i := steps.Index(s.Step)
	if i <= 0 {
		return ErrAtWelcome
	}
	s.Step = steps.Order[i-1]
	return nil
}

// Reset returns to the welcome step with a default record.
func (s *Session) Reset() {
	s.Step = steps.Welcome
	s.Record = merge.Defaults()
	s.Completed = false
}

// Complete marks the session as submitted.
func (s *Session) Complete() {
	s.Completed = true
}

func (s *Session) Metrics() model.Metrics {
	return metrics.Compute(s.Record)
}

func (s *Session) advance() {
	if i := steps.Index(s.Step); i >= 0 && i < len(steps.Order)-1 {
		s.Step = steps.Order[i+1]
	}
}

// StepNames lists the wizard steps in order.
func StepNames() []string {
	out := make([]string, len(steps.Order))
	for i, st := range steps.Order {
		out[i] = string(st)
	}
	return out
}
