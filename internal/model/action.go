package model

import json "github.com/goccy/go-json"

type ActionRequest struct {
	Actions []Action `json:"actions"`
}

// Action is one wizard interaction. Value carries the raw section payload
// for update actions and is decoded leniently.
type Action struct {
	Type    string          `json:"type"`
	Section string          `json:"section,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

const (
	ActionUpdate = "update"
	ActionNext   = "next"
	ActionBack   = "back"
	ActionSkip   = "skip"
	ActionReset  = "reset"
	ActionFinish = "finish"
)
