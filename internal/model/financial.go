package model

import json "github.com/goccy/go-json"

// Records exchanged with the budget API. Field names follow the API.

type IncomeRecord struct {
	ID          int64   `json:"id,omitempty"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	IsRecurring bool    `json:"is_recurring"`
	Date        string  `json:"date"`
}

type ExpenseRecord struct {
	ID          int64   `json:"id,omitempty"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	IsRecurring bool    `json:"is_recurring"`
	Date        string  `json:"date"`
}

type LoanRecord struct {
	ID               int64   `json:"id,omitempty"`
	LoanType         string  `json:"loan_type"`
	Description      string  `json:"description"`
	PrincipalAmount  float64 `json:"principal_amount"`
	RemainingBalance float64 `json:"remaining_balance"`
	InterestRate     float64 `json:"interest_rate"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	StartDate        string  `json:"start_date"`
	TermMonths       int     `json:"term_months"`
}

type SavingRecord struct {
	ID          int64   `json:"id,omitempty"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	IsRecurring bool    `json:"is_recurring"`
	Date        string  `json:"date"`
	SavingType  string  `json:"saving_type"`
}

// Submission is one stored onboarding snapshot.
type Submission struct {
	ID          int64            `json:"id,omitempty"`
	Data        OnboardingRecord `json:"data"`
	SubmittedAt string           `json:"submittedAt"`
}

// StoredSubmission is a submission as returned by the API; Data is kept raw
// because older snapshots may use legacy shapes.
type StoredSubmission struct {
	ID          int64           `json:"id,omitempty"`
	Data        json.RawMessage `json:"data"`
	SubmittedAt string          `json:"submittedAt"`
}
