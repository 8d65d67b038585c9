package ledger

import (
	"context"
	"sync"

	"github.com/hetulpatel/valorfinder/internal/models"
)

type memoryStore struct {
	mu   sync.Mutex
	bets []models.Bet
}

// NewMemoryStore builds a volatile store, used in tests and as a fallback when
// no database path is configured.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Load(_ context.Context) ([]models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Bet, len(s.bets))
	copy(out, s.bets)
	return out, nil
}

func (s *memoryStore) Save(_ context.Context, bets []models.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.Bet, len(bets))
	copy(stored, bets)
	s.bets = stored
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
