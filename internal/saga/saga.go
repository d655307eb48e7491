// Package saga keeps the undo actions of a multi-step write so a later
// failure can remove what earlier steps created.
package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

type Compensation func(ctx context.Context) error

type step struct {
	name string
	undo Compensation
}

type Saga struct {
	log   zerolog.Logger
	steps []step
}

func New(log zerolog.Logger) *Saga {
	return &Saga{log: log}
}

// Push records the undo action of a step that has already succeeded.
func (s *Saga) Push(name string, undo Compensation) {
	s.steps = append(s.steps, step{name: name, undo: undo})
}

func (s *Saga) Len() int {
	return len(s.steps)
}

// Rollback runs every undo action in reverse order. It keeps going when an
// undo fails and returns all failures joined.
func (s *Saga) Rollback(ctx context.Context) error {
	var errs []error
	for i := len(s.steps) - 1; i >= 0; i-- {
		st := s.steps[i]
		if err := st.undo(ctx); err != nil {
			s.log.Error().Err(err).Str("step", st.name).Msg("compensation failed")
			errs = append(errs, fmt.Errorf("undo %s: %w", st.name, err))
			continue
		}
		s.log.Debug().Str("step", st.name).Msg("compensation applied")
	}
	s.steps = nil
	return errors.Join(errs...)
}

// Abort rolls back and returns cause, annotated with any compensation error.
func (s *Saga) Abort(ctx context.Context, cause error) error {
	if err := s.Rollback(ctx); err != nil {
		return fmt.Errorf("%w (rollback incomplete: %v)", cause, err)
	}
	return cause
}
