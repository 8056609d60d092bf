package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sippsearcher/sippsearcher-backend/internal/store"
	pgclient "github.com/sippsearcher/sippsearcher-backend/pkg/client/postgresql"
)

type stubRow struct {
	value int
}

func (r stubRow) Scan(dest ...any) error {
	if len(dest) == 0 {
		return errors.New("no destination")
	}

	target, ok := dest[0].(*int)
	if !ok {
		return errors.New("unexpected destination type")
	}
	*target = r.value

	return nil
}

// stubClient records the last statement so tests can assert the
// repository talks to storage through the client interface.
type stubClient struct {
	rowValue int
	lastSQL  string
	lastArgs []any
}

func (c *stubClient) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	c.lastSQL = sql
	c.lastArgs = arguments

	return pgconn.CommandTag{}, nil
}

func (c *stubClient) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (c *stubClient) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	c.lastSQL = sql
	c.lastArgs = args

	return stubRow{value: c.rowValue}
}

func (c *stubClient) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("not implemented")
}

var _ pgclient.Client = (*stubClient)(nil)

func TestStorage_AddStore(t *testing.T) {
	client := &stubClient{rowValue: 7}
	s := &Storage{client: client, logger: zap.NewNop()}

	phone := "555-0134"
	id, err := s.AddStore(context.Background(), store.Store{
		Name:      "Quick Mart",
		Address:   "1 Main St",
		Latitude:  40.7128,
		Longitude: -74.006,
		Phone:     &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, id)
	assert.Contains(t, client.lastSQL, "INSERT INTO stores")
	assert.Equal(t, []any{"Quick Mart", "1 Main St", 40.7128, -74.006, &phone}, client.lastArgs)
}

func TestStorage_IncrementVisitorCount(t *testing.T) {
	client := &stubClient{rowValue: 1338}
	s := &Storage{client: client, logger: zap.NewNop()}

	count, err := s.IncrementVisitorCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1338, count)
	assert.Contains(t, client.lastSQL, "UPDATE visitors SET count = count + 1")
}

func TestStorage_AddVerification(t *testing.T) {
	client := &stubClient{}
	s := &Storage{client: client, logger: zap.NewNop()}

	err := s.AddVerification(context.Background(), 3, "203.0.113.9")
	require.NoError(t, err)

	assert.Contains(t, client.lastSQL, "INSERT INTO verifications")
	assert.Equal(t, []any{3, "203.0.113.9"}, client.lastArgs)
}
