package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hetulpatel/valorfinder/internal/models"
)

var (
	// ErrInvalidStake rejects non-positive stakes at the point of entry.
	ErrInvalidStake = errors.New("stake must be a positive number")

	// ErrBetNotFound means no bet with the given ID exists.
	ErrBetNotFound = errors.New("bet not found")

	// ErrAlreadySettled rejects resolving a bet that is not pending. Resolving
	// a settled bet is an error here, not a no-op.
	ErrAlreadySettled = errors.New("bet already settled")

	// ErrInvalidOutcome rejects resolution outcomes other than won or lost.
	ErrInvalidOutcome = errors.New("outcome must be won or lost")
)

// Store persists the full bet collection as one unit.
type Store interface {
	Load(ctx context.Context) ([]models.Bet, error)
	Save(ctx context.Context, bets []models.Bet) error
	Close() error
}

// Summary aggregates ledger performance. Totals, ROI, and win rate cover
// settled bets only; pending bets are counted separately.
type Summary struct {
	TotalStaked  float64 `json:"totalStaked"`
	TotalProfit  float64 `json:"totalProfit"`
	ROI          float64 `json:"roi"`
	WinRate      float64 `json:"winRate"`
	PendingCount int     `json:"pendingCount"`
}

// Ledger owns the bet collection. Every mutation durably persists the entire
// updated list before it is considered complete; on a persist failure the
// in-memory state is left untouched.
type Ledger struct {
	mu    sync.Mutex
	bets  []models.Bet
	store Store
	now   func() time.Time
	newID func() string
}

// Open loads the persisted bet list and returns a ready ledger.
func Open(ctx context.Context, store Store) (*Ledger, error) {
	if store == nil {
		return nil, fmt.Errorf("ledger: store is required")
	}
	bets, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: load bets: %w", err)
	}
	return &Ledger{
		bets:  bets,
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}, nil
}

// Place records a pending bet with full match and market snapshots.
func (l *Ledger) Place(ctx context.Context, match models.Match, market models.Market, stake float64) (models.Bet, error) {
	if stake <= 0 {
		return models.Bet{}, ErrInvalidStake
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bet := models.Bet{
		ID:       l.newID(),
		Match:    match,
		Market:   market,
		Stake:    stake,
		Outcome:  models.OutcomePending,
		Profit:   0,
		PlacedAt: l.now(),
	}

	updated := append(l.copyBets(), bet)
	if err := l.store.Save(ctx, updated); err != nil {
		return models.Bet{}, fmt.Errorf("ledger: persist bets: %w", err)
	}
	l.bets = updated
	return bet, nil
}

// Resolve settles a pending bet. Won pays stake*(odds-1); lost loses the
// stake. Resolving a settled bet returns ErrAlreadySettled.
func (l *Ledger) Resolve(ctx context.Context, betID string, outcome models.Outcome) (models.Bet, error) {
	if outcome != models.OutcomeWon && outcome != models.OutcomeLost {
		return models.Bet{}, ErrInvalidOutcome
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(betID)
	if idx < 0 {
		return models.Bet{}, ErrBetNotFound
	}
	if l.bets[idx].Outcome != models.OutcomePending {
		return models.Bet{}, ErrAlreadySettled
	}

	updated := l.copyBets()
	bet := &updated[idx]
	bet.Outcome = outcome
	if outcome == models.OutcomeWon {
		bet.Profit = bet.Stake * (bet.Market.BookmakerOdds - 1)
	} else {
		bet.Profit = -bet.Stake
	}

	if err := l.store.Save(ctx, updated); err != nil {
		return models.Bet{}, fmt.Errorf("ledger: persist bets: %w", err)
	}
	l.bets = updated
	return updated[idx], nil
}

// Delete removes a bet in any state.
func (l *Ledger) Delete(ctx context.Context, betID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(betID)
	if idx < 0 {
		return ErrBetNotFound
	}

	cur := l.copyBets()
	updated := append(cur[:idx], cur[idx+1:]...)
	if err := l.store.Save(ctx, updated); err != nil {
		return fmt.Errorf("ledger: persist bets: %w", err)
	}
	l.bets = updated
	return nil
}

// List returns the bets newest first.
func (l *Ledger) List() []models.Bet {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.copyBets()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out
}

// Summarize computes aggregate stats over the current collection.
func (l *Ledger) Summarize() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Summarize(l.bets)
}

// Summarize computes totals, ROI, and win rate over settled bets only. Both
// ratios are zero when their denominator is zero.
func Summarize(bets []models.Bet) Summary {
	var s Summary
	settled := 0
	won := 0
	for _, b := range bets {
		if !b.Outcome.Settled() {
			s.PendingCount++
			continue
		}
		settled++
		s.TotalStaked += b.Stake
		s.TotalProfit += b.Profit
		if b.Outcome == models.OutcomeWon {
			won++
		}
	}
	if s.TotalStaked > 0 {
		s.ROI = s.TotalProfit / s.TotalStaked * 100
	}
	if settled > 0 {
		s.WinRate = float64(won) / float64(settled) * 100
	}
	return s
}

func (l *Ledger) indexOf(betID string) int {
	for i, b := range l.bets {
		if b.ID == betID {
			return i
		}
	}
	return -1
}

func (l *Ledger) copyBets() []models.Bet {
	out := make([]models.Bet, len(l.bets))
	copy(out, l.bets)
	return out
}
