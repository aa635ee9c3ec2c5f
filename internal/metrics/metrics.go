// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_actions_total",
			Help: "Cart transitions applied, by action type",
		},
		[]string{"action"},
	)

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Orders created at checkout",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_cancelled_total",
		Help: "Orders removed by cancellation",
	})

	OrderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_transitions_total",
			Help: "Order status changes made by the sweep",
		},
		[]string{"from", "to"},
	)

	Sweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_sweeps_total",
		Help: "Status sweeps executed",
	})

	ActiveSweepers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_active_sweepers",
		Help: "Scopes with a running status sweep",
	})

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)
)

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}
