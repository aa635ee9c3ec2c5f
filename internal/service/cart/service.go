package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	cartrepo "storefront/internal/repository/cart"
)

// Service owns the persisted cart of every scope. Each transition is a
// load, Apply, save sequence executed under one lock.
type Service struct {
	mu     sync.Mutex
	repo   cartRepo
	logger *zap.Logger
}

type cartRepo interface {
	Load(ctx context.Context, scope string) (domain.Cart, error)
	Save(ctx context.Context, scope string, cart domain.Cart) error
	Clear(ctx context.Context, scope string) error
}

func New(repo cartrepo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get hydrates the cart of scope from storage.
func (s *Service) Get(ctx context.Context, scope string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, scope)
}

// Dispatch applies a and persists the result before returning it.
func (s *Service) Dispatch(ctx context.Context, scope string, a Action) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	next := Apply(current, a)
	if err := s.repo.Save(ctx, scope, next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	metrics.CartActions.WithLabelValues(string(a.Type)).Inc()
	s.logger.Debug("cart updated",
		zap.String("scope", scope),
		zap.String("action", string(a.Type)),
		zap.Int("lines", len(next)),
	)
	return next, nil
}

// Checkout hands a snapshot of the cart to fn and clears the cart only when
// fn succeeds. The cart cannot change while fn runs. Once fn has succeeded
// Checkout reports success: a failed clear is logged and leaves the lines in
// place, since returning it would invite the caller to repeat fn.
func (s *Service) Checkout(ctx context.Context, scope string, fn func(domain.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, scope)
	if err != nil {
		return err
	}
	if err := fn(current.Clone()); err != nil {
		return err
	}
	if err := s.repo.Clear(ctx, scope); err != nil {
		s.logger.Warn("clear cart after checkout", zap.String("scope", scope), zap.Error(err))
	}
	return nil
}

func (s *Service) load(ctx context.Context, scope string) (domain.Cart, error) {
	stored, err := s.repo.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return Normalize(stored), nil
}
