package entities

import "time"

// RoundResult is the persisted outcome of a single resolved round:
// which hand category the player ended on and what it scored.
type RoundResult struct {
	ID          string
	Username    string
	Category    string
	Score       int
	Cards       []string
	CompletedAt time.Time
}
