package cards

import "math/rand"

// Deck holds a draw pile and a discard pile. While a round's cards are
// in circulation the draw pile, discard pile and cards in hand always
// add up to the full 52-card set.
type Deck struct {
	Cards    []Card // draw pile; dealing takes from the end
	Discards []Card
}

// NewStandardDeck creates a deck of 52 cards, one of each rank and
// suit, in deterministic suit-major, rank-minor order. Each card
// carries the image path derived from the asset root.
func NewStandardDeck(assetRoot string) *Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{
				Suit:      suit,
				Rank:      rank,
				ImagePath: ImagePathFor(assetRoot, suit, rank),
			})
		}
	}
	return &Deck{Cards: cards}
}

// Shuffle randomly permutes the draw pile in place. The random source
// is supplied by the caller so tests can seed it.
func (d *Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal removes and returns up to n cards from the top of the draw
// pile (the end of the slice). A short pile yields fewer cards, never
// an error; callers must check the returned count.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.Cards) {
		n = len(d.Cards)
	}

	dealt := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card := d.Cards[len(d.Cards)-1]
		d.Cards = d.Cards[:len(d.Cards)-1]
		dealt = append(dealt, card)
	}
	return dealt
}

// Discard appends a card to the discard pile. The card is not
// validated against the deck's contents; callers are trusted.
func (d *Deck) Discard(c Card) {
	d.Discards = append(d.Discards, c)
}

// Recycle moves every discarded card back into the draw pile, empties
// the discard pile and reshuffles.
func (d *Deck) Recycle(r *rand.Rand) {
	d.Cards = append(d.Cards, d.Discards...)
	d.Discards = nil
	d.Shuffle(r)
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
