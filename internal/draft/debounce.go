package draft

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

type pendingWrite struct {
	timer *time.Timer
	data  []byte
}

// Debouncer coalesces bursts of draft saves. Every Schedule call cancels
// the user's pending write and restarts the delay, so at most one write is
// pending per user. Store failures are logged and otherwise ignored.
type Debouncer struct {
	store  Store
	delay  time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	pending map[string]*pendingWrite

	// writeMu is taken before mu; it orders writes against Discard so a
	// late write cannot resurrect a deleted draft.
	writeMu sync.Mutex
}

func NewDebouncer(store Store, delay time.Duration, logger *zap.Logger) *Debouncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Debouncer{
		store:   store,
		delay:   delay,
		logger:  logger,
		pending: make(map[string]*pendingWrite),
	}
}

// Schedule queues data as the user's draft, replacing any pending write.
func (d *Debouncer) Schedule(userID string, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[userID]; ok {
		p.timer.Stop()
	}
	p := &pendingWrite{data: data}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(userID, p) })
	d.pending[userID] = p
}

// Pending reports whether a write is queued for the user.
func (d *Debouncer) Pending(userID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[userID]
	return ok
}

// Cancel drops the user's pending write, if any.
func (d *Debouncer) Cancel(userID string) {
	d.take(userID)
}

// Flush writes the user's pending draft immediately.
func (d *Debouncer) Flush(userID string) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if p := d.take(userID); p != nil {
		d.save(userID, p.data)
	}
}

// Discard cancels the pending write and deletes the stored draft.
func (d *Debouncer) Discard(ctx context.Context, userID string) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.take(userID)
	if err := d.store.Delete(ctx, userID); err != nil {
		d.logger.Warn("failed to delete draft", zap.String("user_id", userID), zap.Error(err))
	}
}

// Close flushes every pending write.
func (d *Debouncer) Close() {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	all := d.pending
	d.pending = make(map[string]*pendingWrite)
	d.mu.Unlock()

	for userID, p := range all {
		p.timer.Stop()
		d.save(userID, p.data)
	}
}

func (d *Debouncer) take(userID string) *pendingWrite {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[userID]
	if !ok {
		return nil
	}
	p.timer.Stop()
	delete(d.pending, userID)
	return p
}

func (d *Debouncer) fire(userID string, p *pendingWrite) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	if d.pending[userID] != p {
		d.mu.Unlock()
		return
	}
	delete(d.pending, userID)
	d.mu.Unlock()

	d.save(userID, p.data)
}

// save expects writeMu to be held.
func (d *Debouncer) save(userID string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := d.store.Save(ctx, userID, data); err != nil {
		d.logger.Warn("failed to save draft", zap.String("user_id", userID), zap.Error(err))
		return
	}
	d.logger.Debug("draft saved", zap.String("user_id", userID), zap.Int("bytes", len(data)))
}
