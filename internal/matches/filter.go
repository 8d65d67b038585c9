package matches

import (
	"sort"

	"github.com/hetulpatel/valorfinder/internal/models"
)

// TimeBucket classifies a kickoff by its hour.
type TimeBucket string

const (
	TimeAll       TimeBucket = "all"
	TimeMorning   TimeBucket = "morning"   // 06:00-11:59
	TimeAfternoon TimeBucket = "afternoon" // 12:00-17:59
	TimeNight     TimeBucket = "night"     // 18:00-05:59, wraps midnight
)

// LeagueAll disables league filtering.
const LeagueAll = "all"

// Filters is the user-selected predicate set applied over a derived list.
type Filters struct {
	League        string
	Time          TimeBucket
	MinConfidence int
}

// Filter applies the predicates per match: confidence first against the
// market list (an emptied list drops the match), then league, then the
// kickoff-hour bucket. Pure function; input order is preserved and the input
// slices are never mutated.
func Filter(in []models.Match, f Filters) []models.Match {
	out := make([]models.Match, 0, len(in))
	for _, m := range in {
		kept := make([]models.Market, 0, len(m.Markets))
		for _, mk := range m.Markets {
			if mk.ConfidenceScore >= f.MinConfidence {
				kept = append(kept, mk)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if f.League != "" && f.League != LeagueAll && m.League != f.League {
			continue
		}
		if !inBucket(m.MatchTime.Hour(), f.Time) {
			continue
		}
		filtered := m
		filtered.Markets = kept
		out = append(out, filtered)
	}
	return out
}

func inBucket(hour int, bucket TimeBucket) bool {
	switch bucket {
	case TimeMorning:
		return hour >= 6 && hour < 12
	case TimeAfternoon:
		return hour >= 12 && hour < 18
	case TimeNight:
		return hour >= 18 || hour < 6
	default:
		return true
	}
}

// Leagues returns the sorted distinct league names present in the list. It is
// a derived view, recomputed from the current list rather than stored.
func Leagues(in []models.Match) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, m := range in {
		if _, ok := seen[m.League]; ok {
			continue
		}
		seen[m.League] = struct{}{}
		out = append(out, m.League)
	}
	sort.Strings(out)
	return out
}
