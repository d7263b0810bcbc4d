package automaton

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmsketch/pkg/domain"
)

// SetLabel renames a state. Labels are unique among live states.
func (m *Model) SetLabel(id domain.StateID, label string) error {
	if err := m.check(id); err != nil {
		return err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.ErrEmptyLabel
	}
	if owner, taken := m.labels[label]; taken {
		if owner == id {
			return nil
		}
		return fmt.Errorf("%w: %q", domain.ErrDuplicateLabel, label)
	}

	s := &m.slots[id.Index()]
	delete(m.labels, s.label)
	s.label = label
	m.labels[label] = id
	return nil
}

// Label returns the label of a live state.
func (m *Model) Label(id domain.StateID) (string, error) {
	if err := m.check(id); err != nil {
		return "", err
	}
	return m.slots[id.Index()].label, nil
}

// StateByLabel resolves a label to its state.
func (m *Model) StateByLabel(label string) (domain.StateID, error) {
	id, ok := m.labels[label]
	if !ok {
		return domain.NoState, fmt.Errorf("%w: %q", domain.ErrUnknownLabel, label)
	}
	return id, nil
}
