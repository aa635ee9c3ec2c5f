package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

func TestKV_SaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewKV(kv.NewMemory(), zap.NewNop())

	want := domain.Cart{
		{ProductID: 3, Title: "Lamp", Price: decimal.RequireFromString("19.99"), Thumbnail: "https://cdn/lamp.png", Quantity: 2},
		{ProductID: 1, Title: "Mug", Price: decimal.NewFromInt(5), Quantity: 1},
	}
	if err := repo.Save(ctx, "s1", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ProductID != want[i].ProductID || got[i].Quantity != want[i].Quantity ||
			got[i].Title != want[i].Title || got[i].Thumbnail != want[i].Thumbnail || !got[i].Price.Equal(want[i].Price) {
			t.Fatalf("line %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestKV_LoadMissingIsEmpty(t *testing.T) {
	repo := NewKV(kv.NewMemory(), zap.NewNop())
	got, err := repo.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestKV_LoadMalformedFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, "s1:cart", "{oops"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo := NewKV(store, zap.NewNop())
	got, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("expected malformed cart to be recovered, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestKV_ClearRemovesKey(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := NewKV(store, zap.NewNop())
	if err := repo.Save(ctx, "", domain.Cart{{ProductID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Clear(ctx, ""); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Get(ctx, "cart"); err != domain.ErrNotFound {
		t.Fatalf("expected cart key removed, got %v", err)
	}
}
