package session

import (
	"github.com/aretw0/fsmsketch/pkg/domain"
)

// StateSummary describes one state for display.
type StateSummary struct {
	ID      domain.StateID `json:"id"`
	Label   string         `json:"label"`
	Initial bool           `json:"initial"`
	Final   bool           `json:"final"`
}

// EdgeSummary describes one transition by state labels.
type EdgeSummary struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Symbol string `json:"symbol"`
}

// Summary is a point-in-time copy of a session's automaton.
type Summary struct {
	ID          string         `json:"id"`
	Alphabet    string         `json:"alphabet"`
	States      []StateSummary `json:"states"`
	Transitions []EdgeSummary  `json:"transitions"`
}

// Summary copies the current automaton.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	initial, _ := s.model.InitialState()
	sum := Summary{
		ID:          s.id,
		Alphabet:    string(s.alphabet.Symbols()),
		States:      make([]StateSummary, 0, s.model.NumStates()),
		Transitions: make([]EdgeSummary, 0, s.model.NumTransitions()),
	}

	labels := make(map[domain.StateID]string, s.model.NumStates())
	for _, id := range s.model.States() {
		label, _ := s.model.Label(id)
		labels[id] = label
		sum.States = append(sum.States, StateSummary{
			ID:      id,
			Label:   label,
			Initial: id == initial,
			Final:   s.model.IsAcceptState(id),
		})
	}
	for _, e := range s.model.Edges() {
		sum.Transitions = append(sum.Transitions, EdgeSummary{
			From:   labels[e.From],
			To:     labels[e.To],
			Symbol: string(e.Symbol),
		})
	}
	return sum
}
