// Package submit turns a finished onboarding record into financial records
// on the budget API and stores the record as a submission.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/elcukro/home-budget-sub000/internal/budgetapi"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

var ErrSubmission = errors.New("onboarding submission failed")

// API is the part of the budget API the submitter uses.
type API interface {
	ListIncome(ctx context.Context, token string) ([]model.IncomeRecord, error)
	CreateIncome(ctx context.Context, token string, r model.IncomeRecord) (model.IncomeRecord, error)
	ListExpenses(ctx context.Context, token string) ([]model.ExpenseRecord, error)
	CreateExpense(ctx context.Context, token string, r model.ExpenseRecord) (model.ExpenseRecord, error)
	ListLoans(ctx context.Context, token string) ([]model.LoanRecord, error)
	CreateLoan(ctx context.Context, token string, r model.LoanRecord) (model.LoanRecord, error)
	ListSavings(ctx context.Context, token string) ([]model.SavingRecord, error)
	CreateSaving(ctx context.Context, token string, r model.SavingRecord) (model.SavingRecord, error)
	Delete(ctx context.Context, token string, kind budgetapi.Kind, id int64) error
	CreateSubmission(ctx context.Context, token string, s model.Submission) error
	GetSettings(ctx context.Context, token string) (map[string]any, error)
	UpdateSettings(ctx context.Context, token string, settings map[string]any) error
}

// Report counts what a submission changed upstream.
type Report struct {
	Deleted map[budgetapi.Kind]int
	Created map[budgetapi.Kind]int
}

type Submitter struct {
	api      API
	logger   *zap.Logger
	rollback bool
	now      func() time.Time
}

type Option func(*Submitter)

// WithRollback deletes the records created by a failed submission.
func WithRollback(enabled bool) Option {
	return func(s *Submitter) { s.rollback = enabled }
}

// WithClock overrides the clock used for record dates.
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

func New(api API, logger *zap.Logger, opts ...Option) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Submitter{api: api, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit replaces the user's income, expenses, loans and savings with the
// ones derived from rec, one kind after the other, then stores rec as a
// submission. The first failing call aborts the whole submission.
func (s *Submitter) Submit(ctx context.Context, token string, rec model.OnboardingRecord) (*Report, error) {
	today := s.now()
	report := &Report{Deleted: map[budgetapi.Kind]int{}, Created: map[budgetapi.Kind]int{}}
	j := &journal{}

	stages := []struct {
		kind budgetapi.Kind
		run  func() error
	}{
		{budgetapi.KindIncome, func() error {
			return replace(ctx, s.api, token, budgetapi.KindIncome, report, j,
				s.api.ListIncome, func(r model.IncomeRecord) int64 { return r.ID },
				s.api.CreateIncome, IncomeRecords(rec, today))
		}},
		{budgetapi.KindExpenses, func() error {
			return replace(ctx, s.api, token, budgetapi.KindExpenses, report, j,
				s.api.ListExpenses, func(r model.ExpenseRecord) int64 { return r.ID },
				s.api.CreateExpense, ExpenseRecords(rec, today))
		}},
		{budgetapi.KindLoans, func() error {
			return replace(ctx, s.api, token, budgetapi.KindLoans, report, j,
				s.api.ListLoans, func(r model.LoanRecord) int64 { return r.ID },
				s.api.CreateLoan, LoanRecords(rec, today))
		}},
		{budgetapi.KindSavings, func() error {
			return replace(ctx, s.api, token, budgetapi.KindSavings, report, j,
				s.api.ListSavings, func(r model.SavingRecord) int64 { return r.ID },
				s.api.CreateSaving, SavingRecords(rec, today))
		}},
	}

	for _, st := range stages {
		if err := st.run(); err != nil {
			s.abort(ctx, token, j)
			return report, fmt.Errorf("%w: %s: %w", ErrSubmission, st.kind, err)
		}
		s.logger.Debug("onboarding stage synced",
			zap.String("kind", string(st.kind)),
			zap.Int("deleted", report.Deleted[st.kind]),
			zap.Int("created", report.Created[st.kind]),
		)
	}

	s.syncSettings(ctx, token, rec)

	sub := model.Submission{Data: rec, SubmittedAt: today.UTC().Format(time.RFC3339)}
	if err := s.api.CreateSubmission(ctx, token, sub); err != nil {
		s.abort(ctx, token, j)
		return report, fmt.Errorf("%w: submission: %w", ErrSubmission, err)
	}
	return report, nil
}

func (s *Submitter) abort(ctx context.Context, token string, j *journal) {
	if !s.rollback {
		return
	}
	if failed := j.rollback(ctx, s.api, token); failed > 0 {
		s.logger.Warn("rollback left records behind", zap.Int("failed", failed))
	}
}

// replace deletes every existing record of kind, then creates want in order.
func replace[T any](
	ctx context.Context,
	api API,
	token string,
	kind budgetapi.Kind,
	report *Report,
	j *journal,
	list func(context.Context, string) ([]T, error),
	idOf func(T) int64,
	create func(context.Context, string, T) (T, error),
	want []T,
) error {
	existing, err := list(ctx, token)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	for _, r := range existing {
		if err := api.Delete(ctx, token, kind, idOf(r)); err != nil {
			return fmt.Errorf("delete %d: %w", idOf(r), err)
		}
		report.Deleted[kind]++
	}
	for _, r := range want {
		created, err := create(ctx, token, r)
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}
		j.add(kind, idOf(created))
		report.Created[kind]++
	}
	return nil
}
