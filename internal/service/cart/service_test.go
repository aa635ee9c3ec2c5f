package cart

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

type stubRepo struct {
	stored    domain.Cart
	loadErr   error
	saveErr   error
	clearErr  error
	saves     int
	clears    int
	lastScope string
}

func (s *stubRepo) Load(_ context.Context, scope string) (domain.Cart, error) {
	s.lastScope = scope
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.stored.Clone(), nil
}

func (s *stubRepo) Save(_ context.Context, scope string, cart domain.Cart) error {
	s.lastScope = scope
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.stored = cart.Clone()
	return nil
}

func (s *stubRepo) Clear(_ context.Context, scope string) error {
	s.lastScope = scope
	if s.clearErr != nil {
		return s.clearErr
	}
	s.clears++
	s.stored = nil
	return nil
}

func newTestService(repo *stubRepo) *Service {
	return &Service{repo: repo, logger: zap.NewNop()}
}

func TestServiceDispatchPersistsEveryTransition(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Dispatch(ctx, "s1", AddToCart(item(1, 10), 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := svc.Dispatch(ctx, "s1", AddToCart(item(1, 10), 1))
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if repo.saves != 2 {
		t.Fatalf("expected 2 saves, got %d", repo.saves)
	}
	if len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.stored[0].Quantity != 2 || repo.lastScope != "s1" {
		t.Fatalf("stored cart out of sync: %+v scope=%s", repo.stored, repo.lastScope)
	}
}

func TestServiceDispatchLoadError(t *testing.T) {
	svc := newTestService(&stubRepo{loadErr: errors.New("boom")})
	_, err := svc.Dispatch(context.Background(), "s1", Clear())
	if err == nil || err.Error() != "load cart: boom" {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestServiceDispatchSaveError(t *testing.T) {
	svc := newTestService(&stubRepo{saveErr: errors.New("disk full")})
	_, err := svc.Dispatch(context.Background(), "s1", AddToCart(item(1, 1), 1))
	if err == nil || err.Error() != "save cart: disk full" {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestServiceGetNormalizesHydratedCart(t *testing.T) {
	repo := &stubRepo{stored: domain.Cart{line(1, 1, 0), line(2, 1, 1), line(2, 1, 1)}}
	got, err := newTestService(repo).Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 2 || got[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", got)
	}
}

func TestServiceCheckoutClearsOnSuccess(t *testing.T) {
	repo := &stubRepo{stored: domain.Cart{line(1, 100, 2)}}
	svc := newTestService(repo)

	var seen domain.Cart
	err := svc.Checkout(context.Background(), "s1", func(c domain.Cart) error {
		seen = c
		return nil
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(seen) != 1 || seen[0].Quantity != 2 {
		t.Fatalf("unexpected snapshot: %+v", seen)
	}
	if repo.clears != 1 || repo.stored != nil {
		t.Fatalf("expected cart cleared, clears=%d stored=%+v", repo.clears, repo.stored)
	}
}

func TestServiceCheckoutKeepsCartOnFailure(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)

	err := svc.Checkout(context.Background(), "s1", func(domain.Cart) error {
		return domain.ErrEmptyCart
	})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if repo.clears != 0 || repo.saves != 0 {
		t.Fatalf("expected no writes, clears=%d saves=%d", repo.clears, repo.saves)
	}
}

func TestServiceCheckoutSucceedsWhenClearFails(t *testing.T) {
	repo := &stubRepo{stored: domain.Cart{line(1, 100, 2)}, clearErr: errors.New("store offline")}
	svc := newTestService(repo)

	calls := 0
	err := svc.Checkout(context.Background(), "s1", func(domain.Cart) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected checkout to succeed once fn succeeded, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected fn to run once, got %d", calls)
	}
	if len(repo.stored) != 1 {
		t.Fatalf("expected lines left in place, got %+v", repo.stored)
	}
}

func TestServiceCheckoutSnapshotIsDetached(t *testing.T) {
	repo := &stubRepo{stored: domain.Cart{line(1, 100, 2)}}
	svc := newTestService(repo)

	var seen domain.Cart
	_ = svc.Checkout(context.Background(), "s1", func(c domain.Cart) error {
		seen = c
		return errors.New("payment declined")
	})
	if _, err := svc.Dispatch(context.Background(), "s1", Increment(1)); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if seen[0].Quantity != 2 {
		t.Fatalf("snapshot changed after cart mutation: %+v", seen)
	}
}
