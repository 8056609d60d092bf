package visitorsservice

import (
	"context"

	"go.uber.org/zap"
)

type Repository interface {
	IncrementVisitorCount(ctx context.Context) (int, error)
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

// Visit counts a home-page load and returns the new total.
func (s *service) Visit(ctx context.Context) (int, error) {
	count, err := s.repository.IncrementVisitorCount(ctx)
	if err != nil {
		s.logger.Error("unexpected error when incrementing visitor count", zap.Error(err))

		return 0, err
	}

	return count, nil
}
