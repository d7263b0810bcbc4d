// Package alphabet generates and stores the ordered symbol set of an editing session.
package alphabet

import (
	"fmt"
	"slices"

	"github.com/aretw0/fsmsketch/pkg/domain"
)

// Base is the fixed sequence alphabets are cut from.
const Base = "abcdefghijklmnopqrstuvwxyz"

// MaxSize is the largest alphabet Generate accepts.
const MaxSize = len(Base)

// Manager holds the session alphabet.
// The zero value is an empty alphabet in which no symbol is a member.
type Manager struct {
	symbols []rune
	members map[rune]struct{}
}

// New returns a Manager already holding the first size symbols of Base.
func New(size int) (*Manager, error) {
	m := &Manager{}
	if _, err := m.Generate(size); err != nil {
		return nil, err
	}
	return m, nil
}

// Generate stores the first size symbols of Base as the alphabet and returns them.
// A second call replaces the stored alphabet.
func (m *Manager) Generate(size int) ([]rune, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", domain.ErrInvalidAlphabetSize, size, MaxSize)
	}

	symbols := []rune(Base[:size])
	members := make(map[rune]struct{}, size)
	for _, s := range symbols {
		members[s] = struct{}{}
	}
	m.symbols = symbols
	m.members = members

	return slices.Clone(symbols), nil
}

// Symbols returns a copy of the alphabet in order.
func (m *Manager) Symbols() []rune {
	return slices.Clone(m.symbols)
}

// Size returns the number of symbols.
func (m *Manager) Size() int {
	return len(m.symbols)
}

// IsMember reports whether symbol belongs to the generated alphabet.
func (m *Manager) IsMember(symbol rune) bool {
	_, ok := m.members[symbol]
	return ok
}

// ValidateWord reports whether every symbol of word is a member.
// The empty word is valid.
func (m *Manager) ValidateWord(word []rune) bool {
	for _, s := range word {
		if !m.IsMember(s) {
			return false
		}
	}
	return true
}

func (m *Manager) String() string {
	return "{" + string(m.symbols) + "}"
}
