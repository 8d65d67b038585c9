package matches

import (
	"reflect"
	"testing"
	"time"

	"github.com/hetulpatel/valorfinder/internal/models"
)

func fixture(home, league string, hour, confidence int) models.Match {
	return models.Match{
		ID:        home,
		HomeTeam:  home,
		League:    league,
		MatchTime: time.Date(2025, 3, 15, hour, 15, 0, 0, time.UTC),
		Markets:   []models.Market{{Market: "Over 2.5", EVPercentage: 5, ConfidenceScore: confidence}},
	}
}

func TestFilter_MinConfidenceDropsMatch(t *testing.T) {
	in := []models.Match{
		fixture("Liverpool", "Premier League", 15, 80),
		fixture("Porto", "Primeira Liga", 15, 40),
	}

	out := Filter(in, Filters{MinConfidence: 60})
	if len(out) != 1 || out[0].HomeTeam != "Liverpool" {
		t.Fatalf("expected only the high-confidence match, got %+v", out)
	}
}

func TestFilter_League(t *testing.T) {
	in := []models.Match{
		fixture("Liverpool", "Premier League", 15, 80),
		fixture("Porto", "Primeira Liga", 15, 80),
	}

	if out := Filter(in, Filters{League: "Primeira Liga"}); len(out) != 1 || out[0].HomeTeam != "Porto" {
		t.Fatalf("league filter failed: %+v", out)
	}
	if out := Filter(in, Filters{League: LeagueAll}); len(out) != 2 {
		t.Fatalf("league=all must keep everything, got %d", len(out))
	}
	if out := Filter(in, Filters{}); len(out) != 2 {
		t.Fatalf("empty league must keep everything, got %d", len(out))
	}
}

func TestFilter_TimeBuckets(t *testing.T) {
	cases := []struct {
		hour   int
		bucket TimeBucket
		want   bool
	}{
		{6, TimeMorning, true},
		{11, TimeMorning, true},
		{12, TimeMorning, false},
		{12, TimeAfternoon, true},
		{17, TimeAfternoon, true},
		{18, TimeAfternoon, false},
		{18, TimeNight, true},
		{23, TimeNight, true},
		{0, TimeNight, true},
		{5, TimeNight, true},
		{6, TimeNight, false},
		{3, TimeAll, true},
		{3, "", true},
	}

	for _, tc := range cases {
		in := []models.Match{fixture("Liverpool", "Premier League", tc.hour, 80)}
		out := Filter(in, Filters{Time: tc.bucket})
		if got := len(out) == 1; got != tc.want {
			t.Errorf("hour=%d bucket=%q: kept=%v, want %v", tc.hour, tc.bucket, got, tc.want)
		}
	}
}

func TestFilter_PureAndOrderPreserving(t *testing.T) {
	in := []models.Match{
		fixture("Liverpool", "Premier League", 15, 80),
		fixture("Arsenal", "Premier League", 16, 70),
		fixture("Porto", "Primeira Liga", 20, 90),
	}
	f := Filters{League: "Premier League", Time: TimeAfternoon, MinConfidence: 50}

	first := Filter(in, f)
	second := Filter(in, f)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input must yield same output")
	}
	if len(first) != 2 || first[0].HomeTeam != "Liverpool" || first[1].HomeTeam != "Arsenal" {
		t.Errorf("relative order not preserved: %+v", first)
	}
	if in[0].Markets[0].ConfidenceScore != 80 {
		t.Errorf("input was mutated")
	}
}

func TestLeagues_SortedDistinct(t *testing.T) {
	in := []models.Match{
		fixture("Porto", "Primeira Liga", 15, 80),
		fixture("Liverpool", "Premier League", 15, 80),
		fixture("Arsenal", "Premier League", 16, 80),
	}

	got := Leagues(in)
	want := []string{"Premier League", "Primeira Liga"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Leagues = %v, want %v", got, want)
	}
}
