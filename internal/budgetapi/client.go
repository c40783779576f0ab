// Package budgetapi talks to the budget backend that stores financial
// records and onboarding submissions. Every call is authenticated with the
// caller's bearer token; nothing is retried.
package budgetapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/elcukro/home-budget-sub000/internal/model"
)

var ErrUnexpectedStatus = errors.New("unexpected status from budget api")

// StatusError carries the failing call for ErrUnexpectedStatus.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Kind is a family of financial records.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpenses Kind = "expenses"
	KindLoans    Kind = "loans"
	KindSavings  Kind = "savings"
)

const (
	submissionsPath = "/onboarding/submissions"
	settingsPath    = "/settings"
	maxErrorBody    = 512
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

func (c *Client) ListIncome(ctx context.Context, token string) ([]model.IncomeRecord, error) {
	return list[model.IncomeRecord](ctx, c, token, KindIncome)
}

func (c *Client) CreateIncome(ctx context.Context, token string, r model.IncomeRecord) (model.IncomeRecord, error) {
	return create(ctx, c, token, KindIncome, r)
}

func (c *Client) ListExpenses(ctx context.Context, token string) ([]model.ExpenseRecord, error) {
	return list[model.ExpenseRecord](ctx, c, token, KindExpenses)
}

func (c *Client) CreateExpense(ctx context.Context, token string, r model.ExpenseRecord) (model.ExpenseRecord, error) {
	return create(ctx, c, token, KindExpenses, r)
}

func (c *Client) ListLoans(ctx context.Context, token string) ([]model.LoanRecord, error) {
	return list[model.LoanRecord](ctx, c, token, KindLoans)
}

func (c *Client) CreateLoan(ctx context.Context, token string, r model.LoanRecord) (model.LoanRecord, error) {
	return create(ctx, c, token, KindLoans, r)
}

func (c *Client) ListSavings(ctx context.Context, token string) ([]model.SavingRecord, error) {
	return list[model.SavingRecord](ctx, c, token, KindSavings)
}

func (c *Client) CreateSaving(ctx context.Context, token string, r model.SavingRecord) (model.SavingRecord, error) {
	return create(ctx, c, token, KindSavings, r)
}

// Delete removes one record of the given kind.
func (c *Client) Delete(ctx context.Context, token string, kind Kind, id int64) error {
	return c.do(ctx, token, http.MethodDelete, "/"+string(kind)+"/"+strconv.FormatInt(id, 10), nil, nil)
}

// LastSubmission returns the most recent onboarding submission, or nil when
// the user never submitted.
func (c *Client) LastSubmission(ctx context.Context, token string) (*model.StoredSubmission, error) {
	var subs []model.StoredSubmission
	if err := c.do(ctx, token, http.MethodGet, submissionsPath, nil, &subs); err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}
	last := subs[len(subs)-1]
	return &last, nil
}

func (c *Client) CreateSubmission(ctx context.Context, token string, s model.Submission) error {
	return c.do(ctx, token, http.MethodPost, submissionsPath, s, nil)
}

// GetSettings returns the user's settings document as-is so that fields
// unknown to this service survive a read-modify-write.
func (c *Client) GetSettings(ctx context.Context, token string) (map[string]any, error) {
	settings := map[string]any{}
	if err := c.do(ctx, token, http.MethodGet, settingsPath, nil, &settings); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = map[string]any{}
	}
	return settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, token string, settings map[string]any) error {
	return c.do(ctx, token, http.MethodPut, settingsPath, settings, nil)
}

func list[T any](ctx context.Context, c *Client, token string, kind Kind) ([]T, error) {
	var out []T
	if err := c.do(ctx, token, http.MethodGet, "/"+string(kind), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func create[T any](ctx context.Context, c *Client, token string, kind Kind, in T) (T, error) {
	var out T
	if err := c.do(ctx, token, http.MethodPost, "/"+string(kind), in, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("budget api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
