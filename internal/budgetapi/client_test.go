package budgetapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcukro/home-budget-sub000/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", 2*time.Second, nil)
}

func TestCreateIncomeSendsBearerAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/income", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in model.IncomeRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "salary", in.Category)
		in.ID = 42
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(in)
	})

	out, err := c.CreateIncome(context.Background(), "tok", model.IncomeRecord{Category: "salary", Amount: 8000})
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, 8000.0, out.Amount)
}

func TestListLoansOmitsAuthWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		io.WriteString(w, `[{"id":1,"loan_type":"mortgage"},{"id":2,"loan_type":"leasing"}]`)
	})

	loans, err := c.ListLoans(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, int64(2), loans[1].ID)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "tok", KindExpenses, 17))
	assert.Equal(t, "/api/expenses/17", path)
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "  quota exceeded  ", http.StatusUnprocessableEntity)
	})

	_, err := c.ListSavings(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Status)
	assert.Equal(t, "/savings", se.Path)
	assert.Equal(t, "quota exceeded", se.Body)
}

func TestLastSubmission(t *testing.T) {
	body := `[]`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/onboarding/submissions", r.URL.Path)
		io.WriteString(w, body)
	})

	sub, err := c.LastSubmission(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, sub)

	body = `[{"id":1,"data":{"income":{"salaryNet":1}}},{"id":2,"data":{"income":{"salaryNet":2}}}]`
	sub, err = c.LastSubmission(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, int64(2), sub.ID)
	assert.JSONEq(t, `{"income":{"salaryNet":2}}`, string(sub.Data))
}

func TestSettingsRoundTripKeepsUnknownFields(t *testing.T) {
	var stored map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/settings", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"language":"pl","currency":"PLN"}`)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
		}
	})

	settings, err := c.GetSettings(context.Background(), "tok")
	require.NoError(t, err)
	settings["children_count"] = 2
	require.NoError(t, c.UpdateSettings(context.Background(), "tok", settings))

	assert.Equal(t, "pl", stored["language"])
	assert.Equal(t, "PLN", stored["currency"])
	assert.EqualValues(t, 2, stored["children_count"])
}

func TestGetSettingsNullBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	})

	settings, err := c.GetSettings(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, settings)
	settings["tax_form"] = "scale"
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	})

	_, err := c.ListIncome(context.Background(), "tok")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "decode GET /income")
}
