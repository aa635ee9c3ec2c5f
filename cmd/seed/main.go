package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logging"
	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	"storefront/internal/seed"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
)

func main() {
	var (
		configPath string
		scope      string
		placeOrder bool
	)
	flag.StringVar(&configPath, "config", os.Getenv("STOREFRONT_CONFIG"), "Path to YAML config file")
	flag.StringVar(&scope, "session", "demo", "Session id to seed")
	flag.BoolVar(&placeOrder, "order", false, "Check the demo cart out into a Pending order")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New("seed", cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	res, err := db.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer res.Close()

	carts := cartsvc.New(cartrepo.NewKV(res.Store, logger), logger)
	var checkout *checkoutsvc.Service
	if placeOrder {
		orders := ordersvc.New(orderrepo.NewKV(res.Store, logger), ordersvc.PolicyFromConfig(cfg.Orders), logger)
		checkout = checkoutsvc.New(carts, orders, nil, logger)
	}

	order, err := seed.Apply(ctx, carts, checkoutOrNil(checkout), scope)
	if err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
	if order != nil {
		logger.Info("seed applied", zap.String("session", scope), zap.Int64("order_id", order.ID))
		return
	}
	logger.Info("seed applied", zap.String("session", scope))
}

// checkoutOrNil keeps a nil *Service from becoming a non-nil interface.
func checkoutOrNil(s *checkoutsvc.Service) seed.CheckoutService {
	if s == nil {
		return nil
	}
	return s
}
