package review

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
	reviewrepo "storefront/internal/repository/review"
)

// Input is what a shopper submits for a product.
type Input struct {
	Text   string `json:"text"`
	Image  string `json:"image"`
	Rating int    `json:"rating"`
}

// Service keeps product reviews, newest first.
type Service struct {
	mu     sync.Mutex
	repo   reviewrepo.Repository
	now    func() time.Time
	logger *zap.Logger
}

func New(repo reviewrepo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, now: time.Now, logger: logger}
}

func (s *Service) List(ctx context.Context, scope string, productID int64) ([]domain.Review, error) {
	reviews, err := s.repo.List(ctx, scope, productID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// Add validates in and stores it ahead of the existing reviews.
func (s *Service) Add(ctx context.Context, scope string, productID int64, in Input) (*domain.Review, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text required", domain.ErrInvalidReview)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidReview)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx, scope, productID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	r := domain.Review{
		ID:        uuid.NewString(),
		Text:      text,
		Image:     in.Image,
		Rating:    in.Rating,
		CreatedAt: s.now().UTC(),
	}
	next := make([]domain.Review, 0, len(existing)+1)
	next = append(next, r)
	next = append(next, existing...)
	if err := s.repo.Save(ctx, scope, productID, next); err != nil {
		return nil, fmt.Errorf("save reviews: %w", err)
	}
	s.logger.Debug("review added", zap.String("scope", scope), zap.Int64("product_id", productID), zap.Int("rating", r.Rating))
	return &r, nil
}
