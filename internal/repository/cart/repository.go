package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

const key = "cart"

type Repository interface {
	Load(ctx context.Context, scope string) (domain.Cart, error)
	Save(ctx context.Context, scope string, cart domain.Cart) error
	Clear(ctx context.Context, scope string) error
}

type kvRepo struct {
	store  kv.Store
	logger *zap.Logger
}

// NewKV returns a Repository persisting the cart as JSON under the "cart" key.
func NewKV(store kv.Store, logger *zap.Logger) Repository {
	return &kvRepo{store: store, logger: logger}
}

// Load returns the stored cart. A missing or malformed entry yields an empty cart.
func (r *kvRepo) Load(ctx context.Context, scope string) (domain.Cart, error) {
	var cart domain.Cart
	err := kv.LoadJSON(ctx, r.store, kv.Key(scope, key), &cart)
	switch {
	case err == nil:
		return cart, nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.Cart{}, nil
	case kv.IsDecodeError(err):
		r.logger.Warn("discarding malformed cart", zap.String("scope", scope), zap.Error(err))
		return domain.Cart{}, nil
	default:
		return nil, err
	}
}

func (r *kvRepo) Save(ctx context.Context, scope string, cart domain.Cart) error {
	if cart == nil {
		cart = domain.Cart{}
	}
	return kv.SaveJSON(ctx, r.store, kv.Key(scope, key), cart)
}

// Clear removes the cart entry entirely.
func (r *kvRepo) Clear(ctx context.Context, scope string) error {
	return r.store.Remove(ctx, kv.Key(scope, key))
}
