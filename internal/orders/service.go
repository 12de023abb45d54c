package orders

import (
	"context"

	"github.com/marketbay/storefront/internal/domain"
)

// Service exposes owner-scoped read and status-update access to past
// purchases.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string, offset, limit int64) ([]*domain.Purchase, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListForUser(ctx, userID, offset, limit)
}

func (s *Service) Get(ctx context.Context, userID, purchaseID string) (*domain.Purchase, error) {
	return s.repo.GetForUser(ctx, userID, purchaseID)
}

// UpdateStatus overwrites the status. Any status is reachable from any other;
// there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, userID, purchaseID string, status domain.PurchaseStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatusForUser(ctx, userID, purchaseID, status)
}
