package storeservice

import (
	"context"

	"github.com/sippsearcher/sippsearcher-backend/internal/store"
	"go.uber.org/zap"
)

type Repository interface {
	ListStores(ctx context.Context) ([]store.Store, error)
	FindStoresNear(ctx context.Context, lat, lng, radiusKm float64) ([]store.StoreWithDistance, error)
	AddStore(ctx context.Context, data store.Store) (int, error)
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

func (s *service) GetAll(ctx context.Context) ([]store.Store, error) {
	stores, err := s.repository.ListStores(ctx)
	if err != nil {
		s.logger.Error("unexpected error when fetching all stores", zap.Error(err))

		return nil, err
	}

	return stores, nil
}

func (s *service) GetNear(ctx context.Context, lat, lng, radiusKm float64) ([]store.StoreWithDistance, error) {
	stores, err := s.repository.FindStoresNear(ctx, lat, lng, radiusKm)
	if err != nil {
		s.logger.Error("unexpected error when fetching nearby stores", zap.Error(err))

		return nil, err
	}

	return stores, nil
}

func (s *service) Create(ctx context.Context, data store.Store) (int, error) {
	id, err := s.repository.AddStore(ctx, data)
	if err != nil {
		s.logger.Error("unexpected error when creating store", zap.Error(err))

		return 0, err
	}

	return id, nil
}
