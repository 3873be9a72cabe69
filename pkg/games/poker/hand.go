package poker

import (
	"sort"

	"github.com/pipsbluff/pipsbluff/pkg/cards"
)

// Hand is the player's currently held cards plus the set of indices
// marked for discard. Selection indices reference current positions,
// so any removal clears the selection.
type Hand struct {
	Cards    []cards.Card
	selected map[int]struct{}
	resolved bool
}

// NewHand creates a hand from dealt cards.
func NewHand(dealt []cards.Card) *Hand {
	return &Hand{
		Cards:    dealt,
		selected: make(map[int]struct{}),
	}
}

// ToggleSelect flips the selection state of the card at index i.
// Out-of-range indices are ignored.
func (h *Hand) ToggleSelect(i int) {
	if i < 0 || i >= len(h.Cards) {
		return
	}
	if _, ok := h.selected[i]; ok {
		delete(h.selected, i)
	} else {
		h.selected[i] = struct{}{}
	}
}

// Selected returns the selected indices in ascending order.
func (h *Hand) Selected() []int {
	indices := make([]int, 0, len(h.selected))
	for i := range h.selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// IsSelected reports whether the card at index i is marked for discard.
func (h *Hand) IsSelected(i int) bool {
	_, ok := h.selected[i]
	return ok
}

// SelectedCards returns the cards at the selected indices, in index
// order.
func (h *Hand) SelectedCards() []cards.Card {
	selected := make([]cards.Card, 0, len(h.selected))
	for _, i := range h.Selected() {
		if i < len(h.Cards) {
			selected = append(selected, h.Cards[i])
		}
	}
	return selected
}

// RemoveSelected removes every selected card and clears the selection.
// Indices are processed highest to lowest so earlier removals do not
// shift the positions of later ones; stale indices are skipped.
func (h *Hand) RemoveSelected() []cards.Card {
	indices := h.Selected()
	removed := make([]cards.Card, 0, len(indices))
	for i := len(indices) - 1; i >= 0; i-- {
		idx := indices[i]
		if idx < 0 || idx >= len(h.Cards) {
			continue
		}
		removed = append(removed, h.Cards[idx])
		h.Cards = append(h.Cards[:idx], h.Cards[idx+1:]...)
	}
	h.selected = make(map[int]struct{})
	return removed
}

// Add appends replacement cards to the hand.
func (h *Hand) Add(replacement ...cards.Card) {
	h.Cards = append(h.Cards, replacement...)
}

// Size returns the number of cards currently held.
func (h *Hand) Size() int {
	return len(h.Cards)
}

// Resolved reports whether this hand has already been scored.
func (h *Hand) Resolved() bool {
	return h.resolved
}
