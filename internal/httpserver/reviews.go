package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reviewsvc "storefront/internal/service/review"
)

func (h *handlers) listReviews(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	reviews, err := h.deps.Reviews.List(c.Request.Context(), scopeFrom(c), productID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *handlers) addReview(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	var in reviewsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid review: "+err.Error())
		return
	}
	r, err := h.deps.Reviews.Add(c.Request.Context(), scopeFrom(c), productID, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid product id")
		return 0, false
	}
	return id, true
}
