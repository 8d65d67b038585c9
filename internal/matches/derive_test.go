package matches

import (
	"math"
	"testing"
	"time"

	"github.com/hetulpatel/valorfinder/internal/models"
)

func kickoff(hour int) time.Time {
	return time.Date(2025, 3, 15, hour, 30, 0, 0, time.UTC)
}

func rawMatch(home, away string, markets ...models.Market) models.Match {
	return models.Match{
		HomeTeam:  home,
		AwayTeam:  away,
		League:    "Premier League",
		MatchTime: kickoff(15),
		Location:  "Anfield, Liverpool",
		Markets:   markets,
	}
}

func TestDerive_ComputesEVPercentage(t *testing.T) {
	raw := []models.Match{rawMatch("Liverpool", "Chelsea", models.Market{
		Market:          "Over 2.5",
		RealProbability: 0.60,
		BookmakerOdds:   1.90,
		ConfidenceScore: 80,
	})}

	derived := Derive(raw)
	if len(derived) != 1 || len(derived[0].Markets) != 1 {
		t.Fatalf("expected 1 match with 1 market, got %+v", derived)
	}

	want := (0.60*1.90 - 1) * 100
	got := derived[0].Markets[0].EVPercentage
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("EVPercentage = %v, want %v", got, want)
	}
}

func TestDerive_DiscardsNonPositiveMarketsAndEmptyMatches(t *testing.T) {
	raw := []models.Match{
		rawMatch("Liverpool", "Chelsea",
			models.Market{Market: "Over 2.5", RealProbability: 0.60, BookmakerOdds: 1.75}, // +5%
			models.Market{Market: "BTTS", RealProbability: 0.49, BookmakerOdds: 2.00},     // -2%
		),
		rawMatch("Arsenal", "Spurs",
			models.Market{Market: "Home Win", RealProbability: 0.40, BookmakerOdds: 2.00}, // -20%
		),
	}

	derived := Derive(raw)
	if len(derived) != 1 {
		t.Fatalf("expected only the match with a valuable market, got %d", len(derived))
	}
	if len(derived[0].Markets) != 1 || derived[0].Markets[0].Market != "Over 2.5" {
		t.Fatalf("expected only the +5%% market to survive, got %+v", derived[0].Markets)
	}
	for _, m := range derived {
		for _, mk := range m.Markets {
			if mk.EVPercentage <= 0 {
				t.Errorf("derived list contains non-positive EV market: %+v", mk)
			}
		}
	}
}

func TestDerive_SortsDescendingByBestMarketEV(t *testing.T) {
	raw := []models.Match{
		rawMatch("Arsenal", "Spurs", models.Market{RealProbability: 0.55, BookmakerOdds: 1.95}),     // +7.25%
		rawMatch("Liverpool", "Chelsea", models.Market{RealProbability: 0.70, BookmakerOdds: 1.70}), // +19%
		rawMatch("Porto", "Benfica", models.Market{RealProbability: 0.52, BookmakerOdds: 2.00}),     // +4%
	}

	derived := Derive(raw)
	if len(derived) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(derived))
	}
	for i := 1; i < len(derived); i++ {
		if derived[i].Markets[0].EVPercentage > derived[i-1].Markets[0].EVPercentage {
			t.Errorf("list not sorted descending at index %d", i)
		}
	}
	if derived[0].HomeTeam != "Liverpool" {
		t.Errorf("expected highest-EV match first, got %s", derived[0].HomeTeam)
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	raw := []models.Match{rawMatch("Liverpool", "Chelsea", models.Market{
		RealProbability: 0.60, BookmakerOdds: 1.75,
	})}

	Derive(raw)
	if raw[0].ID != "" {
		t.Errorf("input match ID was mutated")
	}
	if raw[0].Markets[0].EVPercentage != 0 {
		t.Errorf("input market EV was mutated")
	}
}

func TestMatchID_DeterministicAcrossFetches(t *testing.T) {
	at := kickoff(20)
	a := MatchID("Liverpool", "Chelsea", at)
	b := MatchID("Liverpool", "Chelsea", at)
	if a == "" || a != b {
		t.Errorf("expected stable ID, got %q and %q", a, b)
	}
	if MatchID("Chelsea", "Liverpool", at) == a {
		t.Errorf("swapped teams must produce a different ID")
	}
	if MatchID("Liverpool", "Chelsea", at.Add(time.Hour)) == a {
		t.Errorf("different kickoff must produce a different ID")
	}
}

func TestReduceToBestMarket_SingletonWithMaxEV(t *testing.T) {
	in := Derive([]models.Match{rawMatch("Liverpool", "Chelsea",
		models.Market{Market: "Over 2.5", RealProbability: 0.60, BookmakerOdds: 1.75}, // +5%
		models.Market{Market: "Home Win", RealProbability: 0.70, BookmakerOdds: 1.70}, // +19%
		models.Market{Market: "BTTS", RealProbability: 0.55, BookmakerOdds: 1.90},     // +4.5%
	)})

	out := ReduceToBestMarket(in)
	if len(out) != 1 || len(out[0].Markets) != 1 {
		t.Fatalf("expected singleton market list, got %+v", out)
	}
	best := out[0].Markets[0]
	if best.Market != "Home Win" {
		t.Errorf("expected highest-EV market retained, got %q", best.Market)
	}
	for _, mk := range in[0].Markets {
		if mk.EVPercentage > best.EVPercentage {
			t.Errorf("retained market EV %v below input market %v", best.EVPercentage, mk.EVPercentage)
		}
	}
}

func TestReduceToBestMarket_TieKeepsFirstEncountered(t *testing.T) {
	in := []models.Match{{Markets: []models.Market{
		{Market: "first", EVPercentage: 5},
		{Market: "second", EVPercentage: 5},
	}}}

	out := ReduceToBestMarket(in)
	if got := out[0].Markets[0].Market; got != "first" {
		t.Errorf("exact EV tie must keep first-encountered market, got %q", got)
	}
}

func TestReduceToBestMarket_EmptyListPassesThrough(t *testing.T) {
	out := ReduceToBestMarket([]models.Match{{HomeTeam: "Liverpool"}})
	if len(out) != 1 {
		t.Fatalf("expected match passed through, got %d", len(out))
	}
	if out[0].Markets == nil || len(out[0].Markets) != 0 {
		t.Errorf("expected empty markets list preserved, got %+v", out[0].Markets)
	}
}
