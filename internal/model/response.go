package model

import json "github.com/goccy/go-json"

type ActionResponse struct {
	Metadata ActionMetadata `json:"metadata"`
	Result   ActionResult   `json:"result"`
}

type ActionMetadata struct {
	RequestID   string `json:"requestId"`
	UserID      string `json:"userId"`
	StartedAt   string `json:"startedAt"`
	CompletedAt string `json:"completedAt"`
	DurationMs  int64  `json:"durationMs"`
	Outcome     string `json:"outcome"`
}

type ActionResult struct {
	Step      string            `json:"step"`
	Completed bool              `json:"completed"`
	Record    OnboardingRecord  `json:"record"`
	Metrics   Metrics           `json:"metrics"`
	Display   Metrics           `json:"display"`
	Messages  []Message         `json:"messages"`
	Errors    map[string]string `json:"errors,omitempty"`
	Actions   []ProcessedAction `json:"actions"`
	Changes   []PatchOp         `json:"changes,omitempty"`
}

type ProcessedAction struct {
	Action         Action `json:"action"`
	MessageIndexes []int  `json:"messageIndexes,omitempty"`
}

// PatchOp is one RFC 6902 operation.
type PatchOp struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

type SessionState struct {
	Step      string           `json:"step"`
	Steps     []string         `json:"steps"`
	Completed bool             `json:"completed"`
	Record    OnboardingRecord `json:"record"`
	Metrics   Metrics          `json:"metrics"`
	Display   Metrics          `json:"display"`
}

type MergeRequest struct {
	Current  json.RawMessage `json:"current"`
	Incoming json.RawMessage `json:"incoming"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

type MetricsResult struct {
	Metrics Metrics `json:"metrics"`
	Display Metrics `json:"display"`
}
