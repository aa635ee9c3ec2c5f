package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/repository/kv"
	cartsvc "storefront/internal/service/cart"
	reviewsvc "storefront/internal/service/review"
)

type cartService interface {
	Get(ctx context.Context, scope string) (domain.Cart, error)
	Dispatch(ctx context.Context, scope string, a cartsvc.Action) (domain.Cart, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, scope string, billing *domain.Billing) (*domain.Order, error)
}

type orderService interface {
	ListOrders(ctx context.Context, scope string) ([]domain.Order, error)
	GetOrder(ctx context.Context, scope string, id int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, scope string, id int64) error
}

type sweepWatcher interface {
	Watch(ctx context.Context, scope string) (bool, error)
	Unwatch(scope string)
}

type reviewService interface {
	List(ctx context.Context, scope string, productID int64) ([]domain.Review, error)
	Add(ctx context.Context, scope string, productID int64, in reviewsvc.Input) (*domain.Review, error)
}

// Deps holds the services the handlers call into.
type Deps struct {
	Store          kv.Store
	Carts          cartService
	Checkout       checkoutService
	Orders         orderService
	Sweeper        sweepWatcher
	Reviews        reviewService
	AllowedOrigins []string
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.LoggerWithWriter(zap.NewStdLog(logger).Writer()),
		gin.Recovery(),
		metrics.Middleware(),
	)
	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{deps: deps, logger: logger}
	api := router.Group("/", sessionMiddleware())
	api.GET("/cart", h.getCart)
	api.POST("/cart/actions", h.dispatchCart)
	api.POST("/checkout", h.checkout)
	api.GET("/orders", h.listOrders)
	api.DELETE("/orders/watch", h.unwatchOrders)
	api.GET("/orders/:id", h.getOrder)
	api.DELETE("/orders/:id", h.cancelOrder)
	api.GET("/products/:productId/reviews", h.listReviews)
	api.POST("/products/:productId/reviews", h.addReview)

	return router
}
