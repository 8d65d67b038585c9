package matches

import (
	"sort"
	"time"

	"github.com/hetulpatel/valorfinder/internal/hashutil"
	"github.com/hetulpatel/valorfinder/internal/models"
)

// MatchID builds the deterministic fixture identifier from home team, away
// team, and kickoff time, so the same real-world fixture maps to the same ID
// across fetches.
func MatchID(homeTeam, awayTeam string, matchTime time.Time) string {
	return hashutil.ShortHash(homeTeam, awayTeam, matchTime.UTC().Format(time.RFC3339))
}

// Derive turns raw source records into the value-match list: computes each
// market's EV percentage, keeps only EV-positive markets, drops matches left
// without any, assigns IDs, and sorts descending by the best market EV. The
// input is never mutated.
func Derive(raw []models.Match) []models.Match {
	out := make([]models.Match, 0, len(raw))
	for _, m := range raw {
		valuable := make([]models.Market, 0, len(m.Markets))
		for _, mk := range m.Markets {
			mk.EVPercentage = (mk.RealProbability*mk.BookmakerOdds - 1) * 100
			if mk.Valuable() {
				valuable = append(valuable, mk)
			}
		}
		if len(valuable) == 0 {
			continue
		}
		derived := m
		derived.ID = MatchID(m.HomeTeam, m.AwayTeam, m.MatchTime)
		derived.Markets = valuable
		out = append(out, derived)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return maxEV(out[i]) > maxEV(out[j])
	})
	return out
}

// ReduceToBestMarket collapses each match's market list to the single highest
// EV market. Exact EV ties keep the first-encountered market. Matches with an
// empty list pass through unchanged.
func ReduceToBestMarket(in []models.Match) []models.Match {
	out := make([]models.Match, 0, len(in))
	for _, m := range in {
		reduced := m
		if len(m.Markets) > 0 {
			best := m.Markets[0]
			for _, mk := range m.Markets[1:] {
				if mk.EVPercentage > best.EVPercentage {
					best = mk
				}
			}
			reduced.Markets = []models.Market{best}
		} else {
			reduced.Markets = []models.Market{}
		}
		out = append(out, reduced)
	}
	return out
}

func maxEV(m models.Match) float64 {
	best := 0.0
	for i, mk := range m.Markets {
		if i == 0 || mk.EVPercentage > best {
			best = mk.EVPercentage
		}
	}
	return best
}
