// Package draft persists the in-progress onboarding record as one JSON blob
// per user.
package draft

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no draft is stored for the user.
var ErrNotFound = errors.New("draft not found")

// KeyPrefix namespaces draft keys in shared stores.
const KeyPrefix = "onboarding-draft:"

// Store keeps one raw JSON document per user.
type Store interface {
	Load(ctx context.Context, userID string) ([]byte, error)
	Save(ctx context.Context, userID string, data []byte) error
	Delete(ctx context.Context, userID string) error
}

// Key returns the storage key for a user's draft.
func Key(userID string) string {
	return KeyPrefix + userID
}
