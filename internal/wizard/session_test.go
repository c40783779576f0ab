package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcukro/home-budget-sub000/internal/merge"
	"github.com/elcukro/home-budget-sub000/internal/model"
	"github.com/elcukro/home-budget-sub000/internal/steps"
)

func TestNewStartsAtWelcome(t *testing.T) {
	s := New(model.OnboardingRecord{})
	assert.Equal(t, steps.Welcome, s.Step)
	assert.False(t, s.Completed)
	assert.Equal(t, merge.Defaults(), s.Record)
}

func TestNextValidatesCurrentStep(t *testing.T) {
	s := New(merge.Defaults())

	issues, err := s.Next()
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, steps.Life, s.Step)

	issues, err = s.Next()
	require.NoError(t, err)
	assert.NotEmpty(t, issues)
	assert.Equal(t, steps.Life, s.Step)

	require.NoError(t, s.Update(merge.SectionLife, []byte(`{"maritalStatus":"single","housingType":"family","employmentStatus":"student"}`)))
	issues, err = s.Next()
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, steps.Income, s.Step)
}

func TestSkipBackAndBounds(t *testing.T) {
	s := New(merge.Defaults())
	assert.ErrorIs(t, s.Back(), ErrAtWelcome)

	for s.Step != steps.Summary {
		require.NoError(t, s.Skip())
	}
	assert.ErrorIs(t, s.Skip(), ErrAtSummary)
	_, err := s.Next()
	assert.ErrorIs(t, err, ErrAtSummary)

	require.NoError(t, s.Back())
	assert.Equal(t, steps.Goals, s.Step)
}

func TestUpdateAppliesInvariants(t *testing.T) {
	s := New(merge.Defaults())
	require.NoError(t, s.Update(merge.SectionLife, []byte(`{"childrenCount":0,"childrenAgeRange":"0-6","maritalStatus":"single","includePartnerFinances":true}`)))
	assert.Empty(t, s.Record.Life.ChildrenAgeRange)
	assert.False(t, s.Record.Life.IncludePartnerFinances)

	assert.ErrorIs(t, s.Update("pets", []byte(`{}`)), merge.ErrUnknownSection)
}

func TestUpdateKeepsRecordOnError(t *testing.T) {
	s := New(merge.Defaults())
	require.NoError(t, s.Update(merge.SectionIncome, []byte(`{"salaryNet":100}`)))
	require.Error(t, s.Update(merge.SectionIncome, []byte(`{"salaryNet":`)))
	assert.Equal(t, 100.0, s.Record.Income.SalaryNet)
}

func TestResetAndComplete(t *testing.T) {
	s := New(merge.Defaults())
	require.NoError(t, s.Update(merge.SectionIncome, []byte(`{"salaryNet":4200}`)))
	require.NoError(t, s.Skip())
	assert.Equal(t, 4200.0, s.Metrics().MonthlyIncome)

	s.Complete()
	assert.ErrorIs(t, s.Update(merge.SectionIncome, []byte(`{}`)), ErrCompleted)

	s.Reset()
	assert.Equal(t, steps.Welcome, s.Step)
	assert.False(t, s.Completed)
	assert.Zero(t, s.Record.Income.SalaryNet)
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, []string{
		"welcome", "life", "income", "expenses", "irregularExpenses",
		"liabilities", "assets", "goals", "summary",
	}, StepNames())
}
