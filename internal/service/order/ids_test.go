package order

import (
	"testing"
	"time"

	"storefront/internal/domain"
)

func TestIDGeneratorTracksClock(t *testing.T) {
	g := &IDGenerator{}
	now := time.UnixMilli(1_700_000_000_000)
	if got := g.Next(now, nil); got != now.UnixMilli() {
		t.Fatalf("expected %d, got %d", now.UnixMilli(), got)
	}
	later := now.Add(time.Second)
	if got := g.Next(later, nil); got != later.UnixMilli() {
		t.Fatalf("expected %d, got %d", later.UnixMilli(), got)
	}
}

func TestIDGeneratorSameTick(t *testing.T) {
	g := &IDGenerator{}
	now := time.UnixMilli(1_700_000_000_000)
	a := g.Next(now, nil)
	b := g.Next(now, nil)
	if b != a+1 {
		t.Fatalf("expected %d, got %d", a+1, b)
	}
}

func TestIDGeneratorSeedsFromStoredOrders(t *testing.T) {
	g := &IDGenerator{}
	now := time.UnixMilli(1_000)
	existing := []domain.Order{{ID: 5_000}, {ID: 4_000}}
	if got := g.Next(now, existing); got != 5_001 {
		t.Fatalf("expected id after stored max, got %d", got)
	}
}

func TestIDGeneratorClockGoingBackwards(t *testing.T) {
	g := &IDGenerator{}
	now := time.UnixMilli(2_000)
	first := g.Next(now, nil)
	second := g.Next(now.Add(-time.Second), nil)
	if second <= first {
		t.Fatalf("ids must increase: %d then %d", first, second)
	}
}
