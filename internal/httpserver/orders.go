package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

// listOrders also starts the status sweep for the session, the way opening
// the orders page did.
func (h *handlers) listOrders(c *gin.Context) {
	ctx := c.Request.Context()
	scope := scopeFrom(c)
	orders, err := h.deps.Orders.ListOrders(ctx, scope)
	if err != nil {
		h.writeError(c, err)
		return
	}
	watching := false
	if h.deps.Sweeper != nil {
		watching, err = h.deps.Sweeper.Watch(ctx, scope)
		if err != nil {
			h.logger.Warn("watch orders", zap.String("scope", scope), zap.Error(err))
		}
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, ordersView{Orders: orders, Watching: watching})
}

func (h *handlers) unwatchOrders(c *gin.Context) {
	if h.deps.Sweeper != nil {
		h.deps.Sweeper.Unwatch(scopeFrom(c))
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) getOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := h.deps.Orders.GetOrder(c.Request.Context(), scopeFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) cancelOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.deps.Orders.CancelOrder(c.Request.Context(), scopeFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return 0, false
	}
	return id, true
}
