// Package engine runs batches of wizard actions against per-user sessions.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/elcukro/home-budget-sub000/internal/actions"
	"github.com/elcukro/home-budget-sub000/internal/activity"
	"github.com/elcukro/home-budget-sub000/internal/auth"
	"github.com/elcukro/home-budget-sub000/internal/draft"
	"github.com/elcukro/home-budget-sub000/internal/jsonpatch"
	"github.com/elcukro/home-budget-sub000/internal/merge"
	"github.com/elcukro/home-budget-sub000/internal/metrics"
	"github.com/elcukro/home-budget-sub000/internal/model"
	"github.com/elcukro/home-budget-sub000/internal/steps"
	"github.com/elcukro/home-budget-sub000/internal/telemetry"
	"github.com/elcukro/home-budget-sub000/internal/wizard"
)

// Prefiller returns the user's last onboarding submission, or nil.
type Prefiller interface {
	LastSubmission(ctx context.Context, token string) (*model.StoredSubmission, error)
}

type Config struct {
	Drafts     draft.Store
	Debouncer  *draft.Debouncer
	Prefill    Prefiller
	Submitter  actions.Submitter
	Events     activity.Publisher
	Logger     *zap.Logger
	CacheSize  int
	SessionTTL time.Duration
}

type Engine struct {
	drafts    draft.Store
	debouncer *draft.Debouncer
	prefill   Prefiller
	submitter actions.Submitter
	events    activity.Publisher
	logger    *zap.Logger

	mu       sync.Mutex
	sessions *expirable.LRU[string, *entry]

	defaults []byte
}

// entry guards one user's session. loaded is false until hydration ran.
type entry struct {
	mu      sync.Mutex
	loaded  bool
	session *wizard.Session
}

func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Events == nil {
		cfg.Events = activity.Nop{}
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1024
	}
	defaults, _ := json.Marshal(merge.Defaults())
	return &Engine{
		drafts:    cfg.Drafts,
		debouncer: cfg.Debouncer,
		prefill:   cfg.Prefill,
		submitter: cfg.Submitter,
		events:    cfg.Events,
		logger:    cfg.Logger,
		sessions:  expirable.NewLRU[string, *entry](cfg.CacheSize, nil, cfg.SessionTTL),
		defaults:  defaults,
	}
}

// State returns the user's session without changing it.
func (e *Engine) State(ctx context.Context, id auth.Identity) model.SessionState {
	en := e.acquire(ctx, id)
	defer en.mu.Unlock()

	s := en.session
	m := s.Metrics()
	return model.SessionState{
		Step:      string(s.Step),
		Steps:     wizard.StepNames(),
		Completed: s.Completed,
		Record:    s.Record,
		Metrics:   m,
		Display:   metrics.Display(m),
	}
}

// Process applies the actions in order. The batch stops at the first
// action that produces a CRITICAL message; earlier actions stay applied.
func (e *Engine) Process(ctx context.Context, id auth.Identity, req *model.ActionRequest) *model.ActionResponse {
	start := time.Now()

	en := e.acquire(ctx, id)
	defer en.mu.Unlock()
	s := en.session

	before, _ := json.Marshal(s.Record)
	env := &actions.Env{Ctx: ctx, Token: id.Token, Session: s, Submitter: e.submitter}

	allMessages := []model.Message{}
	processed := []model.ProcessedAction{}
	outcome := model.OutcomeSuccess
	hasCritical := false

	for _, act := range req.Actions {
		handler, ok := actions.Get(act.Type)
		if !ok {
			msg := model.Message{
				ID:      len(allMessages),
				Level:   model.LevelCritical,
				Code:    "UNKNOWN_ACTION",
				Message: fmt.Sprintf("Unknown action: %s", act.Type),
			}
			allMessages = append(allMessages, msg)
			processed = append(processed, model.ProcessedAction{Action: act, MessageIndexes: []int{msg.ID}})
			telemetry.ObserveAction(act.Type, false)
			outcome = model.OutcomeFailure
			hasCritical = true
			break
		}

		var msgIndexes []int
		collect := func(msgs []model.Message) {
			for _, m := range msgs {
				m.ID = len(allMessages)
				allMessages = append(allMessages, m)
				msgIndexes = append(msgIndexes, m.ID)
				if m.Level == model.LevelCritical {
					hasCritical = true
				}
			}
		}

		collect(handler.Validate(env, &act))
		if !hasCritical {
			collect(handler.Apply(env, &act))
		}

		processed = append(processed, model.ProcessedAction{Action: act, MessageIndexes: msgIndexes})
		telemetry.ObserveAction(act.Type, !hasCritical)

		if hasCritical {
			outcome = model.OutcomeFailure
			break
		}
	}

	after, err := json.Marshal(s.Record)
	if err != nil {
		e.logger.Error("failed to encode record", zap.String("user_id", id.UserID), zap.Error(err))
	}
	changes, err := jsonpatch.DiffJSON(before, after)
	if err != nil {
		e.logger.Warn("failed to diff record", zap.String("user_id", id.UserID), zap.Error(err))
	}

	requestID := uuid.New().String()
	e.persist(ctx, id.UserID, env, after, len(changes) > 0)
	e.publish(ctx, id.UserID, requestID, env)

	m := s.Metrics()
	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.ActionResponse{
		Metadata: model.ActionMetadata{
			RequestID:   requestID,
			UserID:      id.UserID,
			StartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CompletedAt: now.Format(time.RFC3339),
			DurationMs:  elapsed.Milliseconds(),
			Outcome:     outcome,
		},
		Result: model.ActionResult{
			Step:      string(s.Step),
			Completed: s.Completed,
			Record:    s.Record,
			Metrics:   m,
			Display:   metrics.Display(m),
			Messages:  allMessages,
			Errors:    steps.IssuesToErrors(env.Issues),
			Actions:   processed,
			Changes:   changes,
		},
	}
}

// persist keeps the stored draft in line with the session: dropped on
// completion or reset, rewritten (debounced) after any other change.
func (e *Engine) persist(ctx context.Context, userID string, env *actions.Env, record []byte, changed bool) {
	if env.SubmitErr != nil {
		telemetry.ObserveSubmission(false)
		e.logger.Error("onboarding submission failed", zap.String("user_id", userID), zap.Error(env.SubmitErr))
	}
	if env.Submitted {
		telemetry.ObserveSubmission(true)
		e.discard(ctx, userID)
		return
	}
	if env.WasReset {
		e.discard(ctx, userID)
		changed = !bytes.Equal(record, e.defaults)
	}
	if changed && e.debouncer != nil && record != nil {
		e.debouncer.Schedule(userID, record)
	}
}

func (e *Engine) discard(ctx context.Context, userID string) {
	if e.debouncer != nil {
		e.debouncer.Discard(ctx, userID)
		return
	}
	if e.drafts != nil {
		if err := e.drafts.Delete(ctx, userID); err != nil {
			e.logger.Warn("failed to delete draft", zap.String("user_id", userID), zap.Error(err))
		}
	}
}

func (e *Engine) publish(ctx context.Context, userID, requestID string, env *actions.Env) {
	now := time.Now().UTC()
	var events []activity.Event
	if env.WasReset {
		events = append(events, activity.Event{Type: activity.EventReset, UserID: userID, RequestID: requestID, OccurredAt: now})
	}
	for _, st := range env.Moves {
		events = append(events, activity.Event{Type: activity.EventStep, UserID: userID, Step: st, RequestID: requestID, OccurredAt: now})
	}
	if env.Submitted {
		events = append(events, activity.Event{Type: activity.EventCompleted, UserID: userID, RequestID: requestID, OccurredAt: now})
	}
	e.events.Publish(ctx, events...)
}

// acquire returns the user's entry locked and hydrated.
func (e *Engine) acquire(ctx context.Context, id auth.Identity) *entry {
	e.mu.Lock()
	en, ok := e.sessions.Get(id.UserID)
	if !ok {
		en = &entry{}
		e.sessions.Add(id.UserID, en)
	}
	e.mu.Unlock()

	en.mu.Lock()
	if !en.loaded {
		en.session = wizard.New(e.hydrate(ctx, id))
		en.loaded = true
	}
	return en
}

// hydrate builds the starting record from the stored draft and the last
// submission. Either source may be missing or broken; failures are logged
// and the source is skipped.
func (e *Engine) hydrate(ctx context.Context, id auth.Identity) model.OnboardingRecord {
	var local, server *model.OnboardingRecord

	if e.debouncer != nil {
		e.debouncer.Flush(id.UserID)
	}
	if e.drafts != nil {
		raw, err := e.drafts.Load(ctx, id.UserID)
		switch {
		case errors.Is(err, draft.ErrNotFound):
		case err != nil:
			e.logger.Warn("failed to load draft", zap.String("user_id", id.UserID), zap.Error(err))
		default:
			if rec, err := merge.Decode(raw); err != nil {
				e.logger.Warn("ignoring unreadable draft", zap.String("user_id", id.UserID), zap.Error(err))
			} else {
				local = &rec
			}
		}
	}

	if e.prefill != nil && id.Token != "" {
		sub, err := e.prefill.LastSubmission(ctx, id.Token)
		switch {
		case err != nil:
			e.logger.Warn("failed to fetch last submission", zap.String("user_id", id.UserID), zap.Error(err))
		case sub != nil:
			if rec, err := merge.Decode(sub.Data); err != nil {
				e.logger.Warn("ignoring unreadable submission", zap.String("user_id", id.UserID), zap.Error(err))
			} else {
				server = &rec
			}
		}
	}

	return merge.Hydrate(local, server)
}
