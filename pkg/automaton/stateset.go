package automaton

import (
	"cmp"
	"maps"
	"slices"

	"github.com/aretw0/fsmsketch/pkg/domain"
)

// StateSet is an unordered set of state handles.
// A nil StateSet is a valid empty set for every read operation.
type StateSet map[domain.StateID]struct{}

// NewStateSet returns a set holding ids.
func NewStateSet(ids ...domain.StateID) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s StateSet) Add(id domain.StateID) {
	s[id] = struct{}{}
}

// Contains reports whether id is in the set.
func (s StateSet) Contains(id domain.StateID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of states in the set.
func (s StateSet) Len() int {
	return len(s)
}

// Union returns a new set holding the states of s and other.
func (s StateSet) Union(other StateSet) StateSet {
	u := make(StateSet, len(s)+len(other))
	maps.Copy(u, s)
	maps.Copy(u, other)
	return u
}

// Equal reports whether both sets hold the same states.
func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and other share at least one state.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if large.Contains(id) {
			return true
		}
	}
	return false
}

// Sorted returns the states ordered by slot index.
func (s StateSet) Sorted() []domain.StateID {
	return slices.SortedFunc(maps.Keys(s), func(a, b domain.StateID) int {
		return cmp.Compare(a.Index(), b.Index())
	})
}
