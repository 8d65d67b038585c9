package matches

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hetulpatel/valorfinder/internal/cache"
	"github.com/hetulpatel/valorfinder/internal/models"
	"github.com/hetulpatel/valorfinder/internal/source"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	raw   []models.Match
	err   error
	block chan struct{}
}

func (f *fakeSource) FetchRawMatches(ctx context.Context, date time.Time, lang source.Language) ([]models.Match, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func (f *fakeSource) FetchAnalysis(ctx context.Context, match models.Match, lang source.Language) (string, error) {
	return "analysis of " + match.HomeTeam, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type failingSetStore struct {
	cache.Store
}

func (s failingSetStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return fmt.Errorf("quota exceeded")
}

var testDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func newTestService(src Source) *Service {
	return NewService(src, cache.NewFreshness(cache.NewMemoryStore(), time.Hour), nil)
}

func TestService_CachesAcrossLoads(t *testing.T) {
	src := &fakeSource{raw: []models.Match{rawMatch("Liverpool", "Chelsea", models.Market{
		RealProbability: 0.60, BookmakerOdds: 1.75, ConfidenceScore: 80,
	})}}
	svc := newTestService(src)

	first, err := svc.Load(context.Background(), testDate, source.LanguageEN, false)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := svc.Load(context.Background(), testDate, source.LanguageEN, false)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if src.callCount() != 1 {
		t.Errorf("expected 1 source fetch, got %d", src.callCount())
	}
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Errorf("cached result differs from fetched result")
	}
	if len(second[0].Markets) != 1 {
		t.Errorf("cached matches must carry the single best market")
	}
}

func TestService_ForceRefreshBypassesCache(t *testing.T) {
	src := &fakeSource{raw: []models.Match{rawMatch("Liverpool", "Chelsea", models.Market{
		RealProbability: 0.60, BookmakerOdds: 1.75,
	})}}
	svc := newTestService(src)

	if _, err := svc.Load(context.Background(), testDate, source.LanguageEN, false); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := svc.Load(context.Background(), testDate, source.LanguageEN, true); err != nil {
		t.Fatalf("forced load: %v", err)
	}
	if src.callCount() != 2 {
		t.Errorf("expected forced refresh to fetch again, got %d fetches", src.callCount())
	}
}

func TestService_CachePutFailureStillReturnsData(t *testing.T) {
	src := &fakeSource{raw: []models.Match{rawMatch("Liverpool", "Chelsea", models.Market{
		RealProbability: 0.60, BookmakerOdds: 1.75,
	})}}
	fresh := cache.NewFreshness(failingSetStore{cache.NewMemoryStore()}, time.Hour)
	svc := NewService(src, fresh, nil)

	got, err := svc.Load(context.Background(), testDate, source.LanguageEN, false)
	if err != nil {
		t.Fatalf("load must succeed despite cache put failure: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected fetched data returned, got %d matches", len(got))
	}
}

func TestService_SourceErrorsPropagateDistinctly(t *testing.T) {
	for _, sentinel := range []error{source.ErrSourceUnavailable, source.ErrMalformedSourceData} {
		src := &fakeSource{err: fmt.Errorf("%w: boom", sentinel)}
		svc := newTestService(src)

		_, err := svc.Load(context.Background(), testDate, source.LanguageEN, false)
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v to propagate, got %v", sentinel, err)
		}
	}
}

func TestService_CoalescesConcurrentLoadsForSameDate(t *testing.T) {
	src := &fakeSource{
		raw: []models.Match{rawMatch("Liverpool", "Chelsea", models.Market{
			RealProbability: 0.60, BookmakerOdds: 1.75,
		})},
		block: make(chan struct{}),
	}
	svc := newTestService(src)

	var wg sync.WaitGroup
	results := make([][]models.Match, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := svc.Load(context.Background(), testDate, source.LanguageEN, false)
			if err != nil {
				t.Errorf("load %d: %v", i, err)
			}
			results[i] = got
		}(i)
	}

	// Let both goroutines reach the service before releasing the fetch.
	time.Sleep(50 * time.Millisecond)
	close(src.block)
	wg.Wait()

	if src.callCount() != 1 {
		t.Errorf("expected concurrent loads to share one fetch, got %d", src.callCount())
	}
	if len(results[0]) != len(results[1]) {
		t.Errorf("coalesced loads returned different results")
	}
}

func TestDateKey_NormalizesToUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	at := time.Date(2025, 3, 15, 2, 0, 0, 0, loc) // 2025-03-14 21:00 UTC
	if got := DateKey(at); got != "2025-03-14" {
		t.Errorf("DateKey = %q, want 2025-03-14", got)
	}
}
