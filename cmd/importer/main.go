package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/importer"
	"storefront/internal/logging"
	cartrepo "storefront/internal/repository/cart"
	cartsvc "storefront/internal/service/cart"
)

func main() {
	var (
		configPath string
		filePath   string
		scope      string
	)
	flag.StringVar(&configPath, "config", os.Getenv("STOREFRONT_CONFIG"), "Path to YAML config file")
	flag.StringVar(&filePath, "file", "", "Path to cart CSV (id,title,price,thumbnail,quantity)")
	flag.StringVar(&scope, "session", "", "Session id whose cart receives the lines")
	flag.Parse()

	if filePath == "" || scope == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New("importer", cfg.Log)
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

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	carts := cartsvc.New(cartrepo.NewKV(res.Store, logger), logger)
	imp := importer.NewCSVImporter(f, carts, scope)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	fmt.Printf("Imported %d cart lines into session %s in %s\n", count, scope, time.Since(start).Truncate(time.Millisecond))
}
