package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/fsmsketch/internal/config"
	"github.com/aretw0/fsmsketch/internal/logging"
	"github.com/aretw0/fsmsketch/pkg/session"
)

// RunOptions carries what every command needs to build a session.
type RunOptions struct {
	Config config.Config
	Logger *slog.Logger
}

func (o RunOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.NewNop()
	}
	return o.Logger
}

// sessionOptions translates settings into session options. Debug-level loggers
// also receive per-step hooks.
func sessionOptions(opts RunOptions) []session.Option {
	logger := opts.logger()
	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithStrictSymbols(opts.Config.StrictSymbols),
	}
	if debugEnabled(logger) {
		sessionOpts = append(sessionOpts, session.WithLifecycleHooks(createDebugHooks(logger)))
	}
	return sessionOpts
}

func debugEnabled(logger *slog.Logger) bool {
	return logger.Enabled(context.Background(), slog.LevelDebug)
}

// createSession builds a session over the first size symbols. A zero size
// falls back to the configured alphabet.
func createSession(id string, size int, opts RunOptions) (*session.Session, error) {
	if size == 0 {
		size = opts.Config.AlphabetSize
	}
	s, err := session.New(id, size, sessionOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	return s, nil
}
