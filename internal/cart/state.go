package cart

import (
	"sync"

	"shopkart/pkg/models"
)

// State holds the current reconciled line items. Every mutation takes a
// monotonic sequence number before its network round trip; a response
// that completes after a newer mutation has already been applied is
// discarded, so rapid repeated changes can never roll the visible cart
// backwards.
type State struct {
	mu      sync.Mutex
	seq     uint64
	applied uint64
	items   []models.LineItem
}

func NewState() *State {
	return &State{}
}

// Items returns a snapshot copy of the current line items.
func (s *State) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *State) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// apply replaces the line items wholesale. Returns false when the
// response is stale and was discarded.
func (s *State) apply(seq uint64, items []models.LineItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		return false
	}
	s.applied = seq
	s.items = items
	return true
}
