// Package checkout turns a scope's cart into a placed order.
package checkout

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

type cartCheckout interface {
	Checkout(ctx context.Context, scope string, fn func(domain.Cart) error) error
}

type orderPlacer interface {
	PlaceOrder(ctx context.Context, scope string, cart domain.Cart, billing *domain.Billing) (*domain.Order, error)
}

type watcher interface {
	Watch(ctx context.Context, scope string) (bool, error)
}

type Service struct {
	carts   cartCheckout
	orders  orderPlacer
	sweeper watcher
	logger  *zap.Logger
}

func New(carts cartCheckout, orders orderPlacer, sweeper watcher, logger *zap.Logger) *Service {
	return &Service{carts: carts, orders: orders, sweeper: sweeper, logger: logger}
}

// Checkout places an order from the current cart and clears the cart. An
// empty cart yields domain.ErrEmptyCart and leaves storage untouched.
func (s *Service) Checkout(ctx context.Context, scope string, billing *domain.Billing) (*domain.Order, error) {
	var placed *domain.Order
	err := s.carts.Checkout(ctx, scope, func(cart domain.Cart) error {
		o, err := s.orders.PlaceOrder(ctx, scope, cart, billing)
		if err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is already persisted; a failed watch only delays progression
	// until the order list is next viewed.
	if s.sweeper != nil {
		if _, err := s.sweeper.Watch(ctx, scope); err != nil {
			s.logger.Warn("watch after checkout", zap.String("scope", scope), zap.Error(err))
		}
	}
	return placed, nil
}
