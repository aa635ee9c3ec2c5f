package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewKV(kv.NewMemory(), zap.NewNop())

	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	delivered := placed.Add(time.Hour)
	want := []domain.Order{
		{
			ID:           1,
			Items:        domain.Cart{{ProductID: 9, Title: "Chair", Price: decimal.NewFromInt(100), Quantity: 2}},
			Total:        decimal.NewFromInt(200),
			PlacedAt:     placed,
			DeliveryDate: placed.Add(7 * 24 * time.Hour),
			Status:       domain.StatusDelivered,
			DeliveredAt:  &delivered,
		},
		{ID: 2, PlacedAt: placed, Status: domain.StatusPending, Total: decimal.Zero},
	}
	require.NoError(t, repo.Save(ctx, "s", want))

	got, err := repo.Load(ctx, "s")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.True(t, got[0].Total.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, domain.StatusDelivered, got[0].Status)
	require.NotNil(t, got[0].DeliveredAt)
	assert.True(t, got[0].DeliveredAt.Equal(delivered))
	assert.Nil(t, got[1].DeliveredAt)
}

func TestKV_MissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := NewKV(store, zap.NewNop())

	got, err := repo.Load(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Set(ctx, "s:orders", `[{"id":"nope"`))
	got, err = repo.Load(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKV_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, NewKV(store, zap.NewNop()).Save(ctx, "", nil))

	raw, err := store.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
