package poker

import (
	"math/rand"
	"time"

	"github.com/pipsbluff/pipsbluff/pkg/cards"
)

// State is the engine's position in the round lifecycle.
type State string

const (
	StateUninitialized State = "UNINITIALIZED"
	StateReady         State = "READY"
	StateHandDealt     State = "HAND_DEALT"
	StateResolved      State = "RESOLVED"
)

// DefaultHandSize is the number of cards in a draw-poker hand.
const DefaultHandSize = 5

// Engine orchestrates a round: it owns the deck and the active hand,
// tracks the cards discarded during the current round, and accumulates
// scores. All operations are synchronous; the engine is owned by a
// single game session and is not safe for concurrent use.
type Engine struct {
	deck          *cards.Deck
	hand          *Hand
	roundDiscards []cards.Card
	state         State
	score         int // cumulative across rounds
	roundScore    int
	lastResult    Result
	rng           *rand.Rand
}

// NewEngine creates an engine with a time-seeded random source.
func NewEngine() *Engine {
	return NewEngineWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithRand creates an engine using the given random source,
// so tests can deal deterministically.
func NewEngineWithRand(r *rand.Rand) *Engine {
	return &Engine{
		state: StateUninitialized,
		rng:   r,
	}
}

// InitializeGame builds and shuffles a fresh deck and clears all
// per-round state. The cumulative score is kept; only ResetScore
// clears it.
func (e *Engine) InitializeGame(assetRoot string) {
	e.deck = cards.NewStandardDeck(assetRoot)
	e.deck.Shuffle(e.rng)
	e.hand = nil
	e.roundDiscards = nil
	e.roundScore = 0
	e.state = StateReady
}

// DealHand deals n cards into a fresh hand. Cards still held from the
// previous round go to the discard pile first, so nothing ever leaves
// the 52-card set. If the draw pile is short the discard pile is
// recycled into it, transparently to the caller. Returns nil until
// InitializeGame has been called.
func (e *Engine) DealHand(n int) *Hand {
	if e.deck == nil {
		return nil
	}
	if e.hand != nil {
		for _, c := range e.hand.Cards {
			e.deck.Discard(c)
		}
	}
	if e.deck.Remaining() < n {
		e.deck.Recycle(e.rng)
	}

	e.hand = NewHand(e.deck.Deal(n))
	e.roundDiscards = nil
	e.roundScore = 0
	e.state = StateHandDealt
	return e.hand
}

// Hand returns the active hand, or nil between rounds.
func (e *Engine) Hand() *Hand {
	return e.hand
}

// DiscardCards removes the cards at the given indices from the active
// hand and moves them to the discard pile. Indices outside the current
// bounds are ignored; with no active hand it returns nothing. Drawing
// replacements is the caller's separate step, so the replacement count
// stays caller-controlled.
func (e *Engine) DiscardCards(indices []int) []cards.Card {
	if e.hand == nil {
		return nil
	}

	for _, i := range indices {
		e.hand.ToggleSelect(i)
	}
	removed := e.hand.RemoveSelected()
	for _, c := range removed {
		e.deck.Discard(c)
	}
	e.roundDiscards = append(e.roundDiscards, removed...)
	return removed
}

// DrawCards deals n replacement cards straight from the deck,
// recycling the discard pile under the same short-deck rule as
// DealHand. The cards are not added to the hand; the caller appends
// them.
func (e *Engine) DrawCards(n int) []cards.Card {
	if e.deck == nil {
		return nil
	}
	if e.deck.Remaining() < n {
		e.deck.Recycle(e.rng)
	}
	return e.deck.Deal(n)
}

// RoundDiscards returns the cards discarded during the current round.
func (e *Engine) RoundDiscards() []cards.Card {
	return e.roundDiscards
}

// EvaluateHand classifies the active hand and commits its score to the
// round and cumulative totals. A hand that is missing or does not hold
// exactly five cards yields the Invalid sentinel and commits nothing.
// A hand is scored at most once: evaluating an already resolved hand
// returns the committed result without counting it again.
func (e *Engine) EvaluateHand() Result {
	if e.hand == nil || e.hand.Size() != DefaultHandSize {
		return InvalidResult
	}
	if e.hand.resolved {
		return e.lastResult
	}

	result := Evaluate(e.hand.Cards)
	e.roundScore = result.Score
	e.score += result.Score
	e.hand.resolved = true
	e.lastResult = result
	e.state = StateResolved
	return result
}

// Score returns the cumulative score across rounds.
func (e *Engine) Score() int {
	return e.score
}

// RoundScore returns the score committed for the current round.
func (e *Engine) RoundScore() int {
	return e.roundScore
}

// ResetScore zeroes the cumulative score. Independent of round state.
func (e *Engine) ResetScore() {
	e.score = 0
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Remaining returns the number of undealt cards, for display.
func (e *Engine) Remaining() int {
	if e.deck == nil {
		return 0
	}
	return e.deck.Remaining()
}
