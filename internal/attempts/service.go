// Package attempts tracks failed TAN/login submissions per authorisation so
// the caller can be told how many tries remain before its lockout policy
// kicks in. The counter is advisory bookkeeping for the caller; the backend
// remains the authority on whether a session is still alive.
package attempts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	dErrors "scaflow/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Store persists failure counts keyed by authorisation id.
type Store interface {
	RecordFailure(ctx context.Context, key string) (int, error)
	Count(ctx context.Context, key string) (int, error)
	Clear(ctx context.Context, key string) error
}

type Service struct {
	store  Store
	max    int
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// DefaultMaxAttempts applies when configuration does not set one.
const DefaultMaxAttempts = 3

// DefaultWindow bounds how long recorded failures count against an
// authorisation.
const DefaultWindow = 15 * time.Minute

func New(store Store, maxAttempts int, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("attempts store is required")
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	svc := &Service{
		store:  store,
		max:    maxAttempts,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// RecordFailure registers one failed attempt and returns how many remain.
func (s *Service) RecordFailure(ctx context.Context, authorisationID string) (int, error) {
	count, err := s.store.RecordFailure(ctx, authorisationID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "record failed attempt")
	}
	return s.remaining(count), nil
}

// Remaining reports how many attempts are left without recording anything.
func (s *Service) Remaining(ctx context.Context, authorisationID string) (int, error) {
	count, err := s.store.Count(ctx, authorisationID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "count failed attempts")
	}
	return s.remaining(count), nil
}

// Clear drops the counter after a successful verification. Failure to clear
// is logged, not propagated: a stale counter must never block a completed
// authorisation.
func (s *Service) Clear(ctx context.Context, authorisationID string) {
	if err := s.store.Clear(ctx, authorisationID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear attempt counter",
			"authorisation_id", authorisationID,
			"error", err,
		)
	}
}

func (s *Service) remaining(count int) int {
	remaining := s.max - count
	if remaining < 0 {
		return 0
	}
	return remaining
}
