package submit

import (
	"context"

	"github.com/elcukro/home-budget-sub000/internal/budgetapi"
)

type journalEntry struct {
	kind budgetapi.Kind
	id   int64
}

// journal remembers the records created during one submission so they can
// be compensated if a later stage fails.
type journal struct {
	entries []journalEntry
}

func (j *journal) add(kind budgetapi.Kind, id int64) {
	if id == 0 {
		return
	}
	j.entries = append(j.entries, journalEntry{kind: kind, id: id})
}

// rollback deletes the journaled records newest first and returns how many
// deletions failed. Deleted records are not restored.
func (j *journal) rollback(ctx context.Context, api API, token string) int {
	failed := 0
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		if err := api.Delete(ctx, token, e.kind, e.id); err != nil {
			failed++
		}
	}
	j.entries = nil
	return failed
}
