package fsmsketch

import (
	"log/slog"

	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/aretw0/fsmsketch/pkg/session"
	"github.com/google/uuid"
)

// Option configures a session created through New.
type Option = session.Option

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return session.WithLogger(logger)
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return session.WithLifecycleHooks(hooks)
}

// WithStrictSymbols controls whether transitions on symbols outside the
// alphabet are refused. Defaults to true.
func WithStrictSymbols(strict bool) Option {
	return session.WithStrictSymbols(strict)
}

// New starts an editing session over the first alphabetSize letters of the
// Latin alphabet. The session gets a fresh UUID.
func New(alphabetSize int, opts ...Option) (*session.Session, error) {
	return session.New(uuid.Must(uuid.NewV7()).String(), alphabetSize, opts...)
}
