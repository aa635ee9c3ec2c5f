package order

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/metrics"
	orderrepo "storefront/internal/repository/order"
)

// Policy settles behaviour the original storefront left open.
type Policy struct {
	// PendingAutoAdvances lets the sweep move Pending orders to Processing.
	PendingAutoAdvances bool
	// AllowCancelAfterDelivery permits cancelling Delivered orders.
	AllowCancelAfterDelivery bool
	// DeliveryWindow is added to PlacedAt to compute DeliveryDate.
	DeliveryWindow time.Duration
}

// PolicyFromConfig maps the orders config section onto a Policy.
func PolicyFromConfig(cfg config.Orders) Policy {
	return Policy{
		PendingAutoAdvances:      cfg.PendingAutoAdvances,
		AllowCancelAfterDelivery: cfg.AllowCancelAfterDelivery,
		DeliveryWindow:           cfg.DeliveryWindow,
	}
}

// Notifier is told about orders whose status a sweep changed.
type Notifier interface {
	OrdersAdvanced(ctx context.Context, scope string, changed []domain.Order)
}

type orderRepo interface {
	Load(ctx context.Context, scope string) ([]domain.Order, error)
	Save(ctx context.Context, scope string, orders []domain.Order) error
}

// Service is the order lifecycle engine. Every read-modify-write of a
// scope's history runs under mu, so a sweep never interleaves with a
// placement or a cancellation.
type Service struct {
	mu       sync.Mutex
	repo     orderRepo
	policy   Policy
	ids      *IDGenerator
	now      func() time.Time
	notifier Notifier
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier reports orders changed by AdvanceStatuses to n.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// New builds the order engine. A zero DeliveryWindow defaults to seven days.
func New(repo orderrepo.Repository, policy Policy, logger *zap.Logger, opts ...Option) *Service {
	if policy.DeliveryWindow <= 0 {
		policy.DeliveryWindow = 7 * 24 * time.Hour
	}
	s := &Service{
		repo:   repo,
		policy: policy,
		ids:    &IDGenerator{},
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder records cart as a new Pending order. An empty cart fails with
// domain.ErrEmptyCart and writes nothing.
func (s *Service) PlaceOrder(ctx context.Context, scope string, cart domain.Cart, billing *domain.Billing) (*domain.Order, error) {
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	now := s.now().UTC()
	o := domain.Order{
		ID:           s.ids.Next(now, orders),
		Items:        cart.Clone(),
		Total:        cart.TotalPrice(),
		PlacedAt:     now,
		DeliveryDate: now.Add(s.policy.DeliveryWindow),
		Status:       domain.StatusPending,
	}
	if billing != nil {
		b := *billing
		o.Billing = &b
	}

	if err := s.repo.Save(ctx, scope, append(orders, o)); err != nil {
		return nil, fmt.Errorf("save orders: %w", err)
	}
	metrics.OrdersPlaced.Inc()
	s.logger.Info("order placed",
		zap.String("scope", scope),
		zap.Int64("order_id", o.ID),
		zap.String("total", o.Total.String()),
		zap.Int("lines", len(o.Items)),
	)
	return &o, nil
}

// ListOrders returns the history newest first. Stored order is untouched.
func (s *Service) ListOrders(ctx context.Context, scope string) ([]domain.Order, error) {
	s.mu.Lock()
	orders, err := s.repo.Load(ctx, scope)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PlacedAt.Equal(sorted[j].PlacedAt) {
			return sorted[i].PlacedAt.After(sorted[j].PlacedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted, nil
}

// GetOrder returns one order or domain.ErrNotFound.
func (s *Service) GetOrder(ctx context.Context, scope string, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	for i := range orders {
		if orders[i].ID == id {
			o := orders[i]
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// AdvanceStatuses moves every eligible order of scope forward by exactly one
// stage and returns the resulting history. Nothing is written when no order
// changed.
func (s *Service) AdvanceStatuses(ctx context.Context, scope string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	metrics.Sweeps.Inc()

	now := s.now().UTC()
	var changed []domain.Order
	for i := range orders {
		from := orders[i].Status
		if !s.eligible(from) {
			continue
		}
		to, _ := from.Next()
		orders[i].Status = to
		if to == domain.StatusDelivered {
			at := now
			orders[i].DeliveredAt = &at
		}
		metrics.OrderTransitions.WithLabelValues(string(from), string(to)).Inc()
		changed = append(changed, orders[i])
	}
	if len(changed) == 0 {
		return orders, nil
	}

	if err := s.repo.Save(ctx, scope, orders); err != nil {
		return nil, fmt.Errorf("save orders: %w", err)
	}
	s.logger.Debug("order statuses advanced", zap.String("scope", scope), zap.Int("changed", len(changed)))
	if s.notifier != nil {
		s.notifier.OrdersAdvanced(ctx, scope, changed)
	}
	return orders, nil
}

func (s *Service) eligible(status domain.OrderStatus) bool {
	switch status {
	case domain.StatusPending:
		return s.policy.PendingAutoAdvances
	case domain.StatusProcessing, domain.StatusShipped:
		return true
	default:
		return false
	}
}

// CancelOrder deletes the order from history. It returns domain.ErrNotFound
// for unknown ids and domain.ErrCancelNotAllowed for delivered orders when the
// policy forbids it.
func (s *Service) CancelOrder(ctx context.Context, scope string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.Load(ctx, scope)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	if orders[idx].Status == domain.StatusDelivered && !s.policy.AllowCancelAfterDelivery {
		return domain.ErrCancelNotAllowed
	}

	remaining := make([]domain.Order, 0, len(orders)-1)
	remaining = append(remaining, orders[:idx]...)
	remaining = append(remaining, orders[idx+1:]...)
	if err := s.repo.Save(ctx, scope, remaining); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	metrics.OrdersCancelled.Inc()
	s.logger.Info("order cancelled", zap.String("scope", scope), zap.Int64("order_id", id))
	return nil
}
