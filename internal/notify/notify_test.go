package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"storefront/internal/domain"
)

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLog(zap.New(core))

	n.OrdersAdvanced(context.Background(), "s1", []domain.Order{
		{ID: 1, Status: domain.StatusShipped},
		{ID: 2, Status: domain.StatusDelivered},
	})

	entries := logs.FilterMessage("order status advanced").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[1].ContextMap()["order_id"])
	assert.Equal(t, "Delivered", entries[1].ContextMap()["status"])
}

func TestRedisNotifierPublishes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "orders")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	msgs := sub.Channel()

	delivered := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := NewRedis(client, "orders", zap.NewNop())
	n.OrdersAdvanced(ctx, "s1", []domain.Order{{ID: 7, Status: domain.StatusDelivered, DeliveredAt: &delivered}})

	select {
	case msg := <-msgs:
		var got StatusChange
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "s1", got.Scope)
		assert.Equal(t, int64(7), got.OrderID)
		assert.Equal(t, domain.StatusDelivered, got.Status)
		require.NotNil(t, got.DeliveredAt)
		assert.True(t, got.DeliveredAt.Equal(delivered))
	case <-time.After(time.Second):
		t.Fatal("no message published")
	}
}

type countingNotifier struct{ n int }

func (c *countingNotifier) OrdersAdvanced(context.Context, string, []domain.Order) { c.n++ }

func TestMulti(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	Multi{a, b}.OrdersAdvanced(context.Background(), "s", nil)
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
}
