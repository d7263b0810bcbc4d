package domain

import "fmt"

// StateID is a stable handle for a state in an automaton.
//
// The low 32 bits hold the slot index, the high 32 bits the slot generation.
// Removing a state bumps the generation of its slot, so a stale handle never
// aliases a state created later in the same slot.
type StateID uint64

// NoState is the zero handle. Generations start at 1, so it never names a live state.
const NoState StateID = 0

// NewStateID packs a slot index and generation into a handle.
func NewStateID(index, generation uint32) StateID {
	return StateID(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index of the handle.
func (id StateID) Index() uint32 { return uint32(id) }

// Generation returns the slot generation of the handle.
func (id StateID) Generation() uint32 { return uint32(id >> 32) }

func (id StateID) String() string {
	if id == NoState {
		return "none"
	}
	return fmt.Sprintf("%d#%d", id.Index(), id.Generation())
}
