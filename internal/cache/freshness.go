package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hetulpatel/valorfinder/internal/logging"
	"github.com/hetulpatel/valorfinder/internal/models"
)

const (
	// DefaultValidityWindow is how long a derived match list stays fresh.
	DefaultValidityWindow = time.Hour

	defaultPrefix = "matches"
)

// envelope is the persisted cache value: capture time plus the derived list.
type envelope struct {
	Timestamp int64          `json:"timestamp"`
	Matches   []models.Match `json:"matches"`
}

// Freshness wraps a plain Store with the per-date expiry policy. Entries older
// than the validity window are treated as absent and purged on access; corrupt
// entries are handled the same way and never surfaced.
type Freshness struct {
	store  Store
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewFreshness builds the TTL-aware layer over store.
func NewFreshness(store Store, window time.Duration) *Freshness {
	if window <= 0 {
		window = DefaultValidityWindow
	}
	return &Freshness{
		store:  store,
		window: window,
		prefix: defaultPrefix,
		now:    time.Now,
	}
}

func (f *Freshness) key(date string) string {
	return fmt.Sprintf("%s-%s", f.prefix, date)
}

// Get returns the cached match list for a YYYY-MM-DD date, or absent when
// there is no entry, the entry expired, or the payload does not deserialize.
// Expired and corrupt entries are deleted as a side effect.
func (f *Freshness) Get(ctx context.Context, date string) ([]models.Match, bool) {
	if f == nil || f.store == nil {
		return nil, false
	}
	key := f.key(date)

	raw, ok, err := f.store.Get(ctx, key)
	if err != nil {
		logging.Errorf("[cache] read %s: %v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logging.Errorf("[cache] corrupt entry %s, purging: %v", key, err)
		f.purge(ctx, key)
		return nil, false
	}

	age := f.now().Sub(time.UnixMilli(env.Timestamp))
	if age >= f.window {
		logging.Infof("[cache] entry %s expired (age %s), purging", key, age.Truncate(time.Second))
		f.purge(ctx, key)
		return nil, false
	}

	return env.Matches, true
}

// Put stores the derived list for a date, stamped at the current time. The
// last write for a date wins.
func (f *Freshness) Put(ctx context.Context, date string, matches []models.Match) error {
	if f == nil || f.store == nil {
		return nil
	}
	payload, err := json.Marshal(envelope{
		Timestamp: f.now().UnixMilli(),
		Matches:   matches,
	})
	if err != nil {
		return fmt.Errorf("cache: marshal entry: %w", err)
	}
	return f.store.Set(ctx, f.key(date), payload, f.window)
}

// Invalidate drops the entry for a date regardless of freshness.
func (f *Freshness) Invalidate(ctx context.Context, date string) {
	if f == nil || f.store == nil {
		return
	}
	f.purge(ctx, f.key(date))
}

func (f *Freshness) purge(ctx context.Context, key string) {
	if err := f.store.Delete(ctx, key); err != nil {
		logging.Errorf("[cache] purge %s: %v", key, err)
	}
}
