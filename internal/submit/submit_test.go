package submit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcukro/home-budget-sub000/internal/budgetapi"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

// fakeUpstream is an in-memory budget API that logs every call.
type fakeUpstream struct {
	mu       sync.Mutex
	calls    []string
	existing map[string][]int64
	created  map[string][]json.RawMessage
	settings map[string]any
	failOn   string
	nullGet  bool
	nextID   int64
	subs     []json.RawMessage
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		existing: map[string][]int64{"income": {1, 2}, "expenses": {3}, "loans": {}, "savings": {4}},
		created:  map[string][]json.RawMessage{},
		settings: map[string]any{"language": "pl", "currency": "PLN"},
		nextID:   100,
	}
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := r.Method + " " + r.URL.Path
	f.calls = append(f.calls, call)
	if f.failOn != "" && call == f.failOn {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	if r.Header.Get("Authorization") != "Bearer tok" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.URL.Path == "/settings" && r.Method == http.MethodGet:
		if f.nullGet {
			io.WriteString(w, "null")
			return
		}
		_ = json.NewEncoder(w).Encode(f.settings)
	case r.URL.Path == "/settings" && r.Method == http.MethodPut:
		_ = json.NewDecoder(r.Body).Decode(&f.settings)
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/onboarding/submissions" && r.Method == http.MethodPost:
		b, _ := io.ReadAll(r.Body)
		f.subs = append(f.subs, b)
		w.WriteHeader(http.StatusCreated)
	case len(parts) == 1 && r.Method == http.MethodGet:
		out := []map[string]any{}
		for _, id := range f.existing[parts[0]] {
			out = append(out, map[string]any{"id": id})
		}
		_ = json.NewEncoder(w).Encode(out)
	case len(parts) == 1 && r.Method == http.MethodPost:
		b, _ := io.ReadAll(r.Body)
		f.created[parts[0]] = append(f.created[parts[0]], b)
		f.nextID++
		_ = json.NewEncoder(w).Encode(map[string]any{"id": f.nextID})
	case len(parts) == 2 && r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func sampleRecord() model.OnboardingRecord {
	rate := 7.5
	rec := model.OnboardingRecord{
		Life: model.LifeData{
			EmploymentStatus: "business",
			TaxForm:          "linear",
			BirthYear:        1988,
			ChildrenCount:    1,
		},
		Income: model.IncomeData{SalaryNet: 7500, IrregularIncomeAnnual: 6000},
		Expenses: model.ExpenseGroups{
			"home": {{ID: "home-rent", TemplateID: "home-rent", Name: "Rent", Amount: 2500, Category: "housing"}},
			"food": {{ID: "food-groceries", TemplateID: "food-groceries", Name: "Groceries", Amount: 0, Category: "food"}},
		},
		IrregularExpenses: []model.ExpenseItem{
			{ID: "irregular-gifts", TemplateID: "irregular-gifts", Name: "Gifts", Amount: 1200, Category: "other", Month: 12},
		},
		Liabilities: []model.Liability{
			{ID: "l1", Type: "mortgage", RemainingAmount: 300000, MonthlyPayment: 2400, InterestRate: &rate, PropertyValue: 550000, TermMonths: 300},
		},
		Assets: model.AssetsData{Savings: 20000, EmergencyFundMonths: 3},
	}
	rec.Income.AdditionalSources.Rental = model.IncomeSource{Enabled: true, Amount: 1200}
	return rec
}

func TestSubmitReplacesRecordsInStageOrder(t *testing.T) {
	up := newFakeUpstream()
	srv := httptest.NewServer(up)
	defer srv.Close()

	clock := func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) }
	s := New(budgetapi.New(srv.URL, 5*time.Second, nil), nil, WithClock(clock))

	report, err := s.Submit(context.Background(), "tok", sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /income", "DELETE /income/1", "DELETE /income/2",
		"POST /income", "POST /income", "POST /income",
		"GET /expenses", "DELETE /expenses/3", "POST /expenses", "POST /expenses",
		"GET /loans", "POST /loans",
		"GET /savings", "DELETE /savings/4", "POST /savings",
		"GET /settings", "PUT /settings",
		"POST /onboarding/submissions",
	}, up.calls)

	assert.Equal(t, 2, report.Deleted[budgetapi.KindIncome])
	assert.Equal(t, 3, report.Created[budgetapi.KindIncome])
	assert.Equal(t, 1, report.Created[budgetapi.KindLoans])

	var loan model.LoanRecord
	require.NoError(t, json.Unmarshal(up.created["loans"][0], &loan))
	assert.Equal(t, 550000.0, loan.PrincipalAmount)
	assert.Equal(t, 300000.0, loan.RemainingBalance)
	assert.Equal(t, 7.5, loan.InterestRate)

	var gift model.ExpenseRecord
	require.NoError(t, json.Unmarshal(up.created["expenses"][1], &gift))
	assert.False(t, gift.IsRecurring)
	assert.Equal(t, "2026-12-01", gift.Date)

	assert.Equal(t, "pl", up.settings["language"])
	assert.Equal(t, "business", up.settings["employment_status"])
	assert.Equal(t, "linear", up.settings["tax_form"])
	assert.EqualValues(t, 1988, up.settings["birth_year"])

	require.Len(t, up.subs, 1)
	var sub model.StoredSubmission
	require.NoError(t, json.Unmarshal(up.subs[0], &sub))
	assert.Equal(t, "2026-05-10T09:00:00Z", sub.SubmittedAt)
	assert.Contains(t, string(sub.Data), `"salaryNet":7500`)
}

func TestSubmitStopsAtFailingStage(t *testing.T) {
	up := newFakeUpstream()
	up.failOn = "GET /loans"
	srv := httptest.NewServer(up)
	defer srv.Close()

	s := New(budgetapi.New(srv.URL, 5*time.Second, nil), nil)
	_, err := s.Submit(context.Background(), "tok", sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmission)
	assert.ErrorIs(t, err, budgetapi.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "loans")

	for _, c := range up.calls {
		assert.False(t, strings.HasSuffix(c, "/savings"), "savings stage must not start: %s", c)
		assert.NotEqual(t, "POST /onboarding/submissions", c)
	}
	for _, c := range up.calls {
		assert.NotEqual(t, "DELETE /income/101", c, "no rollback by default")
	}
}

func TestSubmitRollbackDeletesCreatedRecords(t *testing.T) {
	up := newFakeUpstream()
	up.failOn = "GET /savings"
	srv := httptest.NewServer(up)
	defer srv.Close()

	s := New(budgetapi.New(srv.URL, 5*time.Second, nil), nil, WithRollback(true))
	_, err := s.Submit(context.Background(), "tok", sampleRecord())
	require.ErrorIs(t, err, ErrSubmission)

	tail := up.calls[len(up.calls)-6:]
	assert.Equal(t, []string{
		"DELETE /loans/106",
		"DELETE /expenses/105", "DELETE /expenses/104",
		"DELETE /income/103", "DELETE /income/102", "DELETE /income/101",
	}, tail)
}

func TestSubmitSettingsFailureIsNotFatal(t *testing.T) {
	up := newFakeUpstream()
	up.failOn = "PUT /settings"
	srv := httptest.NewServer(up)
	defer srv.Close()

	s := New(budgetapi.New(srv.URL, 5*time.Second, nil), nil)
	_, err := s.Submit(context.Background(), "tok", sampleRecord())
	require.NoError(t, err)
	assert.Len(t, up.subs, 1)
}

func TestSubmitWithNullSettings(t *testing.T) {
	up := newFakeUpstream()
	up.nullGet = true
	srv := httptest.NewServer(up)
	defer srv.Close()

	s := New(budgetapi.New(srv.URL, 5*time.Second, nil), nil)
	var err error
	require.NotPanics(t, func() {
		_, err = s.Submit(context.Background(), "tok", sampleRecord())
	})
	require.NoError(t, err)
	assert.Len(t, up.subs, 1)
	assert.Contains(t, up.settings, "children_count")
}

func TestApplyTaxProfileIgnoresNilSettings(t *testing.T) {
	assert.NotPanics(t, func() { ApplyTaxProfile(nil, model.LifeData{ChildrenCount: 1}) })
}

func TestApplyTaxProfileKeepsUnknownFields(t *testing.T) {
	settings := map[string]any{"theme": "dark", "retirement_plan_employee_rate": 2.0}
	ApplyTaxProfile(settings, model.LifeData{ChildrenCount: 2})

	assert.Equal(t, "dark", settings["theme"])
	assert.Equal(t, 2, settings["children_count"])
	assert.Equal(t, false, settings["retirement_plan_enrolled"])
	assert.Equal(t, 2.0, settings["retirement_plan_employee_rate"])
	_, ok := settings["tax_form"]
	assert.False(t, ok)
}
