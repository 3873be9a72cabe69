package cards

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists the four suits in deck-building order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank represents a card rank
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists the thirteen ranks in deck-building order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card represents a playing card. Identity is value-based: two cards
// with the same suit and rank are interchangeable.
type Card struct {
	Suit      Suit
	Rank      Rank
	ImagePath string
}

// String returns a string representation of the card
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// fileRank returns the rank token used in card image filenames.
// Numeric ranks are zero-padded to two digits, face cards and the
// ace keep their letter.
func fileRank(r Rank) string {
	switch r {
	case Two, Three, Four, Five, Six, Seven, Eight, Nine:
		return "0" + string(r)
	default:
		return string(r)
	}
}

// ImagePathFor derives the image path for a suit/rank pair under the
// given asset root. Only the path string is constructed; no file IO
// happens here.
func ImagePathFor(assetRoot string, s Suit, r Rank) string {
	return fmt.Sprintf("%s/cards_large/card_%s_%s.png", assetRoot, s, fileRank(r))
}
