package order

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

const key = "orders"

// Repository persists the order history of a scope as one document.
type Repository interface {
	Load(ctx context.Context, scope string) ([]domain.Order, error)
	Save(ctx context.Context, scope string, orders []domain.Order) error
}

type kvRepo struct {
	store  kv.Store
	logger *zap.Logger
}

func NewKV(store kv.Store, logger *zap.Logger) Repository {
	return &kvRepo{store: store, logger: logger}
}

// Load returns the stored history in insertion order. A missing or malformed
// entry yields an empty history.
func (r *kvRepo) Load(ctx context.Context, scope string) ([]domain.Order, error) {
	var orders []domain.Order
	err := kv.LoadJSON(ctx, r.store, kv.Key(scope, key), &orders)
	switch {
	case err == nil:
		return orders, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case kv.IsDecodeError(err):
		r.logger.Warn("discarding malformed order history", zap.String("scope", scope), zap.Error(err))
		return nil, nil
	default:
		return nil, err
	}
}

func (r *kvRepo) Save(ctx context.Context, scope string, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	return kv.SaveJSON(ctx, r.store, kv.Key(scope, key), orders)
}
