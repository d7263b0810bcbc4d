package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep            EventType = "step"
	EventVerdict         EventType = "verdict"
	EventExpressionCheck EventType = "expression_check"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted after each symbol consumed by a simulation.
type StepEvent struct {
	EventBase
	Position int  `json:"position"`
	Symbol   rune `json:"symbol"`
	Active   int  `json:"active"` // size of the subset after the step
}

// VerdictEvent is emitted once per word decision.
type VerdictEvent struct {
	EventBase
	WordLength int  `json:"word_length"`
	Valid      bool `json:"valid"` // false when the word used symbols outside the alphabet
	Accepted   bool `json:"accepted"`
}

// ExpressionEvent is emitted once per bracket validation.
type ExpressionEvent struct {
	EventBase
	Length int   `json:"length"`
	Valid  bool  `json:"valid"`
	Err    error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the caller's goroutine; nil hooks are skipped.
type LifecycleHooks struct {
	OnStep            func(context.Context, *StepEvent)
	OnVerdict         func(context.Context, *VerdictEvent)
	OnExpressionCheck func(context.Context, *ExpressionEvent)
}
