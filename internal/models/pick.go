package models

import "time"

// Pick is the payload placed on the picks topic: one match with its single
// best market, for the date it was derived.
type Pick struct {
	Date       string    `json:"date"`
	Match      Match     `json:"match"`
	CapturedAt time.Time `json:"captured_at"`
}
