package domain

// Transition is an outgoing edge stored on its source state.
type Transition struct {
	Symbol rune    `json:"symbol"`
	To     StateID `json:"to"`
}

// Edge is a fully qualified transition, used when listing a whole automaton.
type Edge struct {
	From   StateID `json:"from"`
	Symbol rune    `json:"symbol"`
	To     StateID `json:"to"`
}
