package guestbookservice

import (
	"context"

	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook"
	"go.uber.org/zap"
)

type Repository interface {
	GuestbookEntries(ctx context.Context) ([]guestbook.Entry, error)
	AddGuestbookEntry(ctx context.Context, name, message string) (int, error)
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

func (s *service) GetEntries(ctx context.Context) ([]guestbook.Entry, error) {
	entries, err := s.repository.GuestbookEntries(ctx)
	if err != nil {
		s.logger.Error("unexpected error when fetching guestbook entries", zap.Error(err))

		return nil, err
	}

	return entries, nil
}

func (s *service) Sign(ctx context.Context, name, message string) (int, error) {
	id, err := s.repository.AddGuestbookEntry(ctx, name, message)
	if err != nil {
		s.logger.Error("unexpected error when adding guestbook entry", zap.Error(err))

		return 0, err
	}

	return id, nil
}
