package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "storefront/internal/service/cart"
)

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.Carts.Get(c.Request.Context(), scopeFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *handlers) dispatchCart(c *gin.Context) {
	var a cartsvc.Action
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, "invalid action: "+err.Error())
		return
	}
	if a.Type == "" {
		badRequest(c, "action type required")
		return
	}
	if a.Type == cartsvc.ActionAdd && a.Item == nil {
		badRequest(c, "item required")
		return
	}
	cart, err := h.deps.Carts.Dispatch(c.Request.Context(), scopeFrom(c), a)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *handlers) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "please fill all required fields")
		return
	}
	order, err := h.deps.Checkout.Checkout(c.Request.Context(), scopeFrom(c), req.billing())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
