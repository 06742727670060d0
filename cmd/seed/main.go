package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	productspostgres "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-order-service/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-order-service/internal/platform/postgres"
	"github.com/Apurer/go-gin-order-service/internal/platform/seed"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup, err := platformpostgres.Connect(ctx, os.Getenv("POSTGRES_DSN"), platformpostgres.WithLogger(logger))
	if err != nil {
		log.Fatalf("cannot seed products: %v", err)
	}
	defer cleanup()
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	path := seedFileFromEnv()
	products, err := seed.LoadFile(path)
	if err != nil {
		log.Fatalf("failed to load %s: %v", path, err)
	}
	written, err := seed.Apply(ctx, productspostgres.NewRepository(db), products)
	if err != nil {
		log.Fatalf("failed to seed products: %v", err)
	}
	log.Printf("seeded %d products from %s", written, path)
}

func seedFileFromEnv() string {
	if raw := strings.TrimSpace(os.Getenv("SEED_FILE")); raw != "" {
		return raw
	}
	return seed.DefaultFile
}
