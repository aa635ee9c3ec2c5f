package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type cartDispatcher interface {
	Dispatch(ctx context.Context, scope string, a cartsvc.Action) (domain.Cart, error)
}

// CheckoutService places an order from the current cart.
type CheckoutService interface {
	Checkout(ctx context.Context, scope string, billing *domain.Billing) (*domain.Order, error)
}

var demoItems = []struct {
	item domain.LineItem
	qty  int
}{
	{domain.LineItem{ProductID: 1, Title: "Essence Mascara Lash Princess", Price: decimal.RequireFromString("9.99"), Thumbnail: "https://cdn.dummyjson.com/products/images/beauty/Essence%20Mascara%20Lash%20Princess/thumbnail.png"}, 2},
	{domain.LineItem{ProductID: 6, Title: "Calvin Klein CK One", Price: decimal.RequireFromString("49.99"), Thumbnail: "https://cdn.dummyjson.com/products/images/fragrances/Calvin%20Klein%20CK%20One/thumbnail.png"}, 1},
	{domain.LineItem{ProductID: 11, Title: "Annibale Colombo Bed", Price: decimal.RequireFromString("1899.99")}, 1},
}

var demoBilling = domain.Billing{
	Name:    "Demo Shopper",
	Email:   "demo@example.com",
	Phone:   "+1 555 0100",
	Address: "1 Demo Street",
	Payment: domain.PaymentCOD,
}

// Apply replaces the cart of scope with the demo lines. When checkout is
// non-nil the cart is then checked out, leaving one Pending order and an
// empty cart.
func Apply(ctx context.Context, carts cartDispatcher, checkout CheckoutService, scope string) (*domain.Order, error) {
	if _, err := carts.Dispatch(ctx, scope, cartsvc.Clear()); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	for _, d := range demoItems {
		if _, err := carts.Dispatch(ctx, scope, cartsvc.AddToCart(d.item, d.qty)); err != nil {
			return nil, fmt.Errorf("add product %d: %w", d.item.ProductID, err)
		}
	}
	if checkout == nil {
		return nil, nil
	}
	billing := demoBilling
	order, err := checkout.Checkout(ctx, scope, &billing)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return order, nil
}
