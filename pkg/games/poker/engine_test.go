package poker

import (
	"math/rand"
	"testing"

	"github.com/pipsbluff/pipsbluff/pkg/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngineWithRand(rand.New(rand.NewSource(42)))
}

func TestEngineLifecycle(t *testing.T) {
	engine := newTestEngine()
	assert.Equal(t, StateUninitialized, engine.State())
	assert.Nil(t, engine.DealHand(DefaultHandSize), "dealing before initialization yields no hand")

	engine.InitializeGame("assets")
	assert.Equal(t, StateReady, engine.State())
	assert.Nil(t, engine.Hand())
	assert.Equal(t, 52, engine.Remaining())

	hand := engine.DealHand(DefaultHandSize)
	require.NotNil(t, hand)
	assert.Equal(t, StateHandDealt, engine.State())
	assert.Equal(t, DefaultHandSize, hand.Size())
	assert.Equal(t, 47, engine.Remaining())

	result := engine.EvaluateHand()
	assert.Equal(t, StateResolved, engine.State())
	assert.NotEqual(t, Invalid, result.Category)
	assert.Equal(t, result.Score, engine.Score())
	assert.Equal(t, result.Score, engine.RoundScore())
}

func TestInitializeGameKeepsCumulativeScore(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")
	engine.DealHand(DefaultHandSize)
	first := engine.EvaluateHand()
	require.Greater(t, first.Score, 0)

	engine.InitializeGame("assets")

	assert.Equal(t, first.Score, engine.Score(), "cumulative score survives re-initialization")
	assert.Equal(t, 0, engine.RoundScore(), "round score is cleared")
	assert.Nil(t, engine.Hand())
}

func TestResetScore(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")
	engine.DealHand(DefaultHandSize)
	engine.EvaluateHand()
	require.Greater(t, engine.Score(), 0)

	engine.ResetScore()

	assert.Equal(t, 0, engine.Score())
}

func TestEvaluateHandCommitsOnce(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")
	engine.DealHand(DefaultHandSize)

	first := engine.EvaluateHand()
	total := engine.Score()

	second := engine.EvaluateHand()

	assert.Equal(t, first, second, "re-evaluating a resolved hand returns the committed result")
	assert.Equal(t, total, engine.Score(), "re-evaluation must not double-count")
	assert.True(t, engine.Hand().Resolved())
}

func TestEvaluateHandWrongCardCount(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")

	// No hand at all
	assert.Equal(t, InvalidResult, engine.EvaluateHand())

	// Four cards after a discard without a redraw
	engine.DealHand(DefaultHandSize)
	engine.DiscardCards([]int{0})
	assert.Equal(t, InvalidResult, engine.EvaluateHand())
	assert.Equal(t, 0, engine.Score(), "invalid hands commit nothing")

	// Six cards after an extra draw
	engine.Hand().Add(engine.DrawCards(2)...)
	assert.Equal(t, InvalidResult, engine.EvaluateHand())
	assert.Equal(t, 0, engine.Score())
}

func TestDiscardCards(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")
	hand := engine.DealHand(DefaultHandSize)
	held := append([]cards.Card{}, hand.Cards...)

	removed := engine.DiscardCards([]int{0, 2, 4})

	assert.ElementsMatch(t, []cards.Card{held[0], held[2], held[4]}, removed)
	assert.Equal(t, []cards.Card{held[1], held[3]}, hand.Cards)
	assert.ElementsMatch(t, removed, engine.RoundDiscards())

	// Indices out of current bounds are ignored
	removed = engine.DiscardCards([]int{7, -1})
	assert.Empty(t, removed)
}

func TestDiscardCardsNoActiveHand(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")

	assert.Empty(t, engine.DiscardCards([]int{0, 1}))
}

func TestDiscardThenDrawRebuildsHand(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")
	hand := engine.DealHand(DefaultHandSize)

	removed := engine.DiscardCards([]int{1, 3})
	replacements := engine.DrawCards(len(removed))
	hand.Add(replacements...)

	assert.Equal(t, DefaultHandSize, hand.Size())
	result := engine.EvaluateHand()
	assert.NotEqual(t, Invalid, result.Category)
}

func TestDealHandRecyclesWhenShort(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")

	// Burn through the deck, discarding every hand. Each round moves
	// five cards from the draw pile to the discard pile, so the
	// eleventh deal must recycle.
	for i := 0; i < 20; i++ {
		hand := engine.DealHand(DefaultHandSize)
		require.NotNil(t, hand)
		require.Equal(t, DefaultHandSize, hand.Size(), "deal %d should always fill the hand", i)
		engine.DiscardCards([]int{0, 1, 2, 3, 4})
	}
}

func TestConsecutiveRoundsReturnResolvedHands(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")

	// Play well past ten rounds without ever discarding. Each new deal
	// must put the previous hand's cards back into circulation, so
	// every round gets a full, scorable hand.
	for i := 0; i < 30; i++ {
		hand := engine.DealHand(DefaultHandSize)
		require.NotNil(t, hand)
		require.Equal(t, DefaultHandSize, hand.Size(), "round %d should deal a full hand", i)
		require.Equal(t, 52, engine.Remaining()+hand.Size()+len(engine.deck.Discards),
			"round %d should keep every card in circulation", i)

		result := engine.EvaluateHand()
		require.NotEqual(t, Invalid, result.Category, "round %d should resolve", i)
	}
}

func TestDrawCardsRecyclesWhenShort(t *testing.T) {
	engine := newTestEngine()
	engine.InitializeGame("assets")

	engine.DealHand(DefaultHandSize)
	engine.DiscardCards([]int{0, 1, 2, 3, 4})

	// 47 cards remain in the draw pile, 5 in the discard pile
	drawn := engine.DrawCards(50)

	assert.Len(t, drawn, 50, "draw should recycle the discard pile to satisfy the request")
}
