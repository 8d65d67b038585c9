package matches

import (
	"context"
	"sync"
	"time"

	"github.com/hetulpatel/valorfinder/internal/cache"
	"github.com/hetulpatel/valorfinder/internal/logging"
	"github.com/hetulpatel/valorfinder/internal/models"
	"github.com/hetulpatel/valorfinder/internal/source"
)

// Source is the external collaborator supplying raw match data and narratives.
type Source interface {
	FetchRawMatches(ctx context.Context, date time.Time, lang source.Language) ([]models.Match, error)
	FetchAnalysis(ctx context.Context, match models.Match, lang source.Language) (string, error)
}

// Publisher receives each freshly derived pick list. Optional.
type Publisher interface {
	PublishPicks(ctx context.Context, date string, picks []models.Match) error
}

// DateKey normalizes a query date to the YYYY-MM-DD cache key.
func DateKey(date time.Time) string {
	return date.UTC().Format("2006-01-02")
}

// Service runs the fetch-derive-cache cycle. A second Load for a date while
// one is outstanding joins the in-flight call instead of issuing a duplicate
// fetch.
type Service struct {
	source    Source
	cache     *cache.Freshness
	publisher Publisher

	mu       sync.Mutex
	inflight map[string]*loadCall
}

type loadCall struct {
	done    chan struct{}
	matches []models.Match
	err     error
}

// NewService wires the pipeline. publisher may be nil.
func NewService(src Source, fresh *cache.Freshness, publisher Publisher) *Service {
	return &Service{
		source:    src,
		cache:     fresh,
		publisher: publisher,
		inflight:  make(map[string]*loadCall),
	}
}

// Load returns the derived match list for a date, serving from cache when
// fresh. force bypasses the cache read and invalidates the stored entry.
func (s *Service) Load(ctx context.Context, date time.Time, lang source.Language, force bool) ([]models.Match, error) {
	day := DateKey(date)

	if force {
		s.cache.Invalidate(ctx, day)
	} else if cached, ok := s.cache.Get(ctx, day); ok {
		logging.Infof("[matches] cache hit for %s (%d matches)", day, len(cached))
		return cached, nil
	}

	s.mu.Lock()
	if call, ok := s.inflight[day]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.matches, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &loadCall{done: make(chan struct{})}
	s.inflight[day] = call
	s.mu.Unlock()

	result, err := s.fetchAndDerive(ctx, date, day, lang)

	call.matches, call.err = result, err
	close(call.done)
	s.mu.Lock()
	delete(s.inflight, day)
	s.mu.Unlock()

	return result, err
}

func (s *Service) fetchAndDerive(ctx context.Context, date time.Time, day string, lang source.Language) ([]models.Match, error) {
	logging.Infof("[matches] fetching fixtures for %s", day)
	raw, err := s.source.FetchRawMatches(ctx, date, lang)
	if err != nil {
		return nil, err
	}

	derived := ReduceToBestMarket(Derive(raw))

	// A failed put must not abort presentation of freshly fetched data.
	if err := s.cache.Put(ctx, day, derived); err != nil {
		logging.Errorf("[matches] cache put for %s failed: %v", day, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishPicks(ctx, day, derived); err != nil {
			logging.Errorf("[matches] publish picks for %s failed: %v", day, err)
		}
	}

	logging.Infof("[matches] derived %d value matches for %s", len(derived), day)
	return derived, nil
}

// Analyze returns the source's narrative text for a match.
func (s *Service) Analyze(ctx context.Context, match models.Match, lang source.Language) (string, error) {
	return s.source.FetchAnalysis(ctx, match, lang)
}

// FindByID locates a match in a derived list.
func FindByID(in []models.Match, id string) (models.Match, bool) {
	for _, m := range in {
		if m.ID == id {
			return m, true
		}
	}
	return models.Match{}, false
}
