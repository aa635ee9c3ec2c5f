// Package notify delivers sweep results to whoever renders order state.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

// StatusChange is the payload published for each advanced order.
type StatusChange struct {
	Scope       string             `json:"scope"`
	OrderID     int64              `json:"orderId"`
	Status      domain.OrderStatus `json:"status"`
	DeliveredAt *time.Time         `json:"deliveredAt,omitempty"`
}

func changes(scope string, orders []domain.Order) []StatusChange {
	out := make([]StatusChange, 0, len(orders))
	for _, o := range orders {
		out = append(out, StatusChange{Scope: scope, OrderID: o.ID, Status: o.Status, DeliveredAt: o.DeliveredAt})
	}
	return out
}

// Log writes one info line per advanced order.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) OrdersAdvanced(_ context.Context, scope string, orders []domain.Order) {
	for _, c := range changes(scope, orders) {
		l.logger.Info("order status advanced",
			zap.String("scope", c.Scope),
			zap.Int64("order_id", c.OrderID),
			zap.String("status", string(c.Status)),
		)
	}
}

// Redis publishes each change as JSON on a pub/sub channel.
type Redis struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

func NewRedis(client *redis.Client, channel string, logger *zap.Logger) *Redis {
	return &Redis{client: client, channel: channel, logger: logger}
}

func (r *Redis) OrdersAdvanced(ctx context.Context, scope string, orders []domain.Order) {
	for _, c := range changes(scope, orders) {
		payload, err := json.Marshal(c)
		if err != nil {
			r.logger.Error("encode status change", zap.Error(err))
			continue
		}
		if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
			r.logger.Warn("publish status change",
				zap.String("channel", r.channel), zap.Int64("order_id", c.OrderID), zap.Error(err))
		}
	}
}

// Notifier receives the orders a sweep advanced.
type Notifier interface {
	OrdersAdvanced(ctx context.Context, scope string, orders []domain.Order)
}

// Multi fans out to every notifier in order.
type Multi []Notifier

func (m Multi) OrdersAdvanced(ctx context.Context, scope string, orders []domain.Order) {
	for _, n := range m {
		n.OrdersAdvanced(ctx, scope, orders)
	}
}
