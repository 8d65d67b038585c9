package models

import "time"

// Outcome is the settlement state of a bet.
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

// Settled reports whether the bet no longer counts as pending.
func (o Outcome) Settled() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// Bet records a wager against a specific market. Match and Market are full
// snapshots copied at placement time, so a bet survives cache expiry of the
// fixture it was placed on.
type Bet struct {
	ID       string    `json:"id"`
	Match    Match     `json:"match"`
	Market   Market    `json:"market"`
	Stake    float64   `json:"stake"`
	Outcome  Outcome   `json:"outcome"`
	Profit   float64   `json:"profit"`
	PlacedAt time.Time `json:"placedAt"`
}
