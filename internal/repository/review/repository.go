package review

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

type Repository interface {
	List(ctx context.Context, scope string, productID int64) ([]domain.Review, error)
	Save(ctx context.Context, scope string, productID int64, reviews []domain.Review) error
}

type kvRepo struct {
	store  kv.Store
	logger *zap.Logger
}

func NewKV(store kv.Store, logger *zap.Logger) Repository {
	return &kvRepo{store: store, logger: logger}
}

func reviewsKey(scope string, productID int64) string {
	return kv.Key(scope, "reviews-"+strconv.FormatInt(productID, 10))
}

func (r *kvRepo) List(ctx context.Context, scope string, productID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := kv.LoadJSON(ctx, r.store, reviewsKey(scope, productID), &reviews)
	switch {
	case err == nil:
		return reviews, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case kv.IsDecodeError(err):
		r.logger.Warn("discarding malformed reviews",
			zap.String("scope", scope), zap.Int64("product_id", productID), zap.Error(err))
		return nil, nil
	default:
		return nil, err
	}
}

func (r *kvRepo) Save(ctx context.Context, scope string, productID int64, reviews []domain.Review) error {
	return kv.SaveJSON(ctx, r.store, reviewsKey(scope, productID), reviews)
}
