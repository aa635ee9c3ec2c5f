package httpserver

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type cartView struct {
	Items      []domain.LineItem `json:"items"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	TotalItems int               `json:"totalItems"`
}

func toCartView(c domain.Cart) cartView {
	items := []domain.LineItem(c)
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartView{Items: items, TotalPrice: c.TotalPrice(), TotalItems: c.TotalItems()}
}

type ordersView struct {
	Orders []domain.Order `json:"orders"`
	// Watching reports whether the status sweep is running for the session.
	Watching bool `json:"watching"`
}

type checkoutRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	Payment string `json:"payment" binding:"required,oneof=cod upi card"`
}

func (r checkoutRequest) billing() *domain.Billing {
	return &domain.Billing{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Payment: r.Payment,
	}
}
