package poker

import (
	"sort"
	"strings"

	"github.com/pipsbluff/pipsbluff/pkg/cards"
)

// rankOrder is the 13-symbol rank alphabet in ascending order. Ten is
// normalized to 'T' so every rank is a single symbol.
const rankOrder = "23456789TJQKA"

// Category is one of the ten canonical poker hand categories, plus the
// Invalid sentinel for malformed input.
type Category string

const (
	Invalid       Category = "Invalid Hand"
	HighCard      Category = "High Card"
	OnePair       Category = "One Pair"
	TwoPair       Category = "Two Pair"
	ThreeOfAKind  Category = "Three of a Kind"
	Straight      Category = "Straight"
	Flush         Category = "Flush"
	FullHouse     Category = "Full House"
	FourOfAKind   Category = "Four of a Kind"
	StraightFlush Category = "Straight Flush"
	RoyalFlush    Category = "Royal Flush"
)

// Score returns the fixed score for the category.
func (c Category) Score() int {
	switch c {
	case HighCard:
		return 10
	case OnePair:
		return 20
	case TwoPair:
		return 30
	case ThreeOfAKind:
		return 40
	case Straight:
		return 50
	case Flush:
		return 60
	case FullHouse:
		return 70
	case FourOfAKind:
		return 80
	case StraightFlush:
		return 90
	case RoyalFlush:
		return 100
	default:
		return 0
	}
}

// Result is the outcome of classifying a five-card hand.
type Result struct {
	Category Category
	Score    int
}

// InvalidResult is returned for hands that cannot be classified.
var InvalidResult = Result{Category: Invalid, Score: 0}

// normalizeRank maps a card rank to its single symbol in rankOrder.
func normalizeRank(r cards.Rank) byte {
	if r == cards.Ten {
		return 'T'
	}
	return r[0]
}

// Evaluate classifies exactly five cards into a poker hand category.
// Any other card count yields the Invalid sentinel.
func Evaluate(hand []cards.Card) Result {
	if len(hand) != 5 {
		return InvalidResult
	}

	rankCounts := make(map[byte]int, 5)
	suitCounts := make(map[cards.Suit]int, 4)
	for _, c := range hand {
		rankCounts[normalizeRank(c.Rank)]++
		suitCounts[c.Suit]++
	}

	// Multiplicities of each rank, highest first ([3 2] for a full
	// house, [2 2 1] for two pair, ...).
	counts := make([]int, 0, len(rankCounts))
	for _, n := range rankCounts {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	isFlush := len(suitCounts) == 1

	// A straight needs five distinct ranks spanning exactly four
	// positions of the rank alphabet.
	positions := make([]int, 0, len(rankCounts))
	for r := range rankCounts {
		positions = append(positions, strings.IndexByte(rankOrder, r))
	}
	sort.Ints(positions)
	isStraight := len(positions) == 5 && positions[4]-positions[0] == 4

	// The wheel (A-2-3-4-5) is a straight even though the ace sits at
	// the high end of the alphabet.
	if hasExactRanks(rankCounts, "A2345") {
		isStraight = true
	}

	var category Category
	switch {
	case isFlush && hasExactRanks(rankCounts, "TJQKA"):
		category = RoyalFlush
	case isFlush && isStraight:
		category = StraightFlush
	case counts[0] == 4:
		category = FourOfAKind
	case counts[0] == 3 && counts[1] == 2:
		category = FullHouse
	case isFlush:
		category = Flush
	case isStraight:
		category = Straight
	case counts[0] == 3:
		category = ThreeOfAKind
	case counts[0] == 2 && counts[1] == 2:
		category = TwoPair
	case counts[0] == 2:
		category = OnePair
	default:
		category = HighCard
	}

	return Result{Category: category, Score: category.Score()}
}

// hasExactRanks reports whether the hand's distinct ranks are exactly
// the given symbols.
func hasExactRanks(rankCounts map[byte]int, symbols string) bool {
	if len(rankCounts) != len(symbols) {
		return false
	}
	for i := 0; i < len(symbols); i++ {
		if _, ok := rankCounts[symbols[i]]; !ok {
			return false
		}
	}
	return true
}
