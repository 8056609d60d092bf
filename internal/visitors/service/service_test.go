package visitorsservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepository struct {
	count int
	err   error
}

func (r *stubRepository) IncrementVisitorCount(ctx context.Context) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	r.count++

	return r.count, nil
}

func TestService_Visit(t *testing.T) {
	s := New(&stubRepository{count: 1337}, zap.NewNop())

	count, err := s.Visit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1338, count)

	count, err = s.Visit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1339, count)
}

func TestService_VisitError(t *testing.T) {
	repoErr := errors.New("unexpected error")
	s := New(&stubRepository{err: repoErr}, zap.NewNop())

	_, err := s.Visit(context.Background())
	assert.ErrorIs(t, err, repoErr)
}
