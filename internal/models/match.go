package models

import "time"

// Market is a single wagering opportunity on a match. EVPercentage is derived
// during ingestion; raw source payloads carry it as zero.
type Market struct {
	Market          string  `json:"market"`
	RealProbability float64 `json:"realProbability"`
	BookmakerOdds   float64 `json:"bookmakerOdds"`
	BookmakerName   string  `json:"bookmakerName"`
	BookmakerURL    string  `json:"bookmakerUrl"`
	ConfidenceScore int     `json:"confidenceScore"`
	EVPercentage    float64 `json:"evPercentage"`
}

// Valuable reports whether the market carries positive expected value.
func (m Market) Valuable() bool {
	return m.EVPercentage > 0
}

// Match is a single real-world fixture with its value markets. After the
// best-market pass the Markets slice holds at most one entry.
type Match struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	League    string    `json:"league"`
	MatchTime time.Time `json:"matchTime"`
	Location  string    `json:"location"`
	Markets   []Market  `json:"markets"`
}
