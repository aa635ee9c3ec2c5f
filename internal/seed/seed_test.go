package seed

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	"storefront/internal/repository/kv"
	orderrepo "storefront/internal/repository/order"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
)

func newServices() (*cartsvc.Service, *ordersvc.Service, *checkoutsvc.Service) {
	log := zap.NewNop()
	store := kv.NewMemory()
	carts := cartsvc.New(cartrepo.NewKV(store, log), log)
	orders := ordersvc.New(orderrepo.NewKV(store, log), ordersvc.Policy{}, log)
	return carts, orders, checkoutsvc.New(carts, orders, nil, log)
}

func TestApplyCartOnly(t *testing.T) {
	carts, _, _ := newServices()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := Apply(ctx, carts, nil, "demo"); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	cart, err := carts.Get(ctx, "demo")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart) != len(demoItems) || cart.TotalItems() != 4 {
		t.Fatalf("expected seeding to be repeatable, got %+v", cart)
	}
}

func TestApplyWithCheckout(t *testing.T) {
	carts, orders, checkout := newServices()
	ctx := context.Background()

	order, err := Apply(ctx, carts, checkout, "demo")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if order == nil || order.Status != domain.StatusPending || order.Total.String() != "1969.96" {
		t.Fatalf("unexpected order %+v", order)
	}
	cart, _ := carts.Get(ctx, "demo")
	if len(cart) != 0 {
		t.Fatalf("expected empty cart after checkout")
	}
	list, _ := orders.ListOrders(ctx, "demo")
	if len(list) != 1 {
		t.Fatalf("expected one order, got %d", len(list))
	}
}
