package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	"storefront/internal/notify"
	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	reviewrepo "storefront/internal/repository/review"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
	reviewsvc "storefront/internal/service/review"
)

func main() {
	configPath := flag.String("config", os.Getenv("STOREFRONT_CONFIG"), "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New("api", cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	res, err := db.Open(ctx, cfg.Store, logger.Named("store"))
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer res.Close()

	notifiers := notify.Multi{notify.NewLog(logger.Named("orders"))}
	if cfg.Notify.RedisChannel != "" {
		client, err := res.Redis(ctx)
		if err != nil {
			logger.Fatal("connect redis notifier", zap.Error(err))
		}
		notifiers = append(notifiers, notify.NewRedis(client, cfg.Notify.RedisChannel, logger.Named("notify")))
	}

	cartService := cartsvc.New(cartrepo.NewKV(res.Store, logger), logger.Named("cart"))
	orderService := ordersvc.New(
		orderrepo.NewKV(res.Store, logger),
		ordersvc.PolicyFromConfig(cfg.Orders),
		logger.Named("orders"),
		ordersvc.WithNotifier(notifiers),
	)
	sweeper := ordersvc.NewSweeper(orderService, cfg.Orders.SweepInterval, logger.Named("sweeper"),
		ordersvc.WithIdleTimeout(cfg.Orders.WatchIdle))
	defer sweeper.Close()
	checkoutService := checkoutsvc.New(cartService, orderService, sweeper, logger.Named("checkout"))
	reviewService := reviewsvc.New(reviewrepo.NewKV(res.Store, logger), logger.Named("reviews"))

	srv := httpserver.New(cfg.HTTPAddr, logger.Named("http"), httpserver.Deps{
		Store:          res.Store,
		Carts:          cartService,
		Checkout:       checkoutService,
		Orders:         orderService,
		Sweeper:        sweeper,
		Reviews:        reviewService,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
