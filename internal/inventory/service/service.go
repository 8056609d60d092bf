package inventoryservice

import (
	"context"

	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"go.uber.org/zap"
)

type Repository interface {
	StoreInventory(ctx context.Context, storeID int) ([]inventory.Item, error)
	UpsertInventory(ctx context.Context, item inventory.Item) (int, error)
	AddVerification(ctx context.Context, inventoryID int, userIP string) error
}

type service struct {
	repository Repository
	logger     *zap.Logger
}

func New(repository Repository, logger *zap.Logger) *service {
	return &service{
		repository: repository,
		logger:     logger,
	}
}

// GetStoreInventory returns a store's reports newest first. An unknown
// store id yields an empty slice, not an error.
func (s *service) GetStoreInventory(ctx context.Context, storeID int) ([]inventory.Item, error) {
	items, err := s.repository.StoreInventory(ctx, storeID)
	if err != nil {
		s.logger.Error("unexpected error when fetching store inventory", zap.Error(err))

		return nil, err
	}

	return items, nil
}

func (s *service) Report(ctx context.Context, item inventory.Item) (int, error) {
	id, err := s.repository.UpsertInventory(ctx, item)
	if err != nil {
		s.logger.Error("unexpected error when upserting inventory", zap.Error(err))

		return 0, err
	}

	return id, nil
}

func (s *service) Verify(ctx context.Context, inventoryID int, userIP string) error {
	if err := s.repository.AddVerification(ctx, inventoryID, userIP); err != nil {
		s.logger.Error("unexpected error when adding verification", zap.Error(err))

		return err
	}

	return nil
}
