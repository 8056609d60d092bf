package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func addStore(t *testing.T, s *Storage, name string, lat, lng float64) int {
	t.Helper()

	id, err := s.AddStore(context.Background(), store.Store{
		Name:      name,
		Address:   "somewhere",
		Latitude:  lat,
		Longitude: lng,
	})
	require.NoError(t, err)

	return id
}

func TestMigrationsSeedVisitorCounter(t *testing.T) {
	s := newTestStorage(t)

	count, err := s.VisitorCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1337, count)
}

func TestVisitorCounterIncrements(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	count, err := s.IncrementVisitorCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1338, count)

	count, err = s.IncrementVisitorCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1339, count)
}

func TestFindStoresNear(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	ownID := addStore(t, s, "7-Eleven", 40.7128, -74.0060)
	otherID := addStore(t, s, "Circle K", 40.7580, -73.9855)
	addStore(t, s, "Far Away Mart", 34.0522, -118.2437)

	near, err := s.FindStoresNear(ctx, 40.7128, -74.0060, 10)
	require.NoError(t, err)
	require.Len(t, near, 2)
	require.Equal(t, ownID, near[0].ID)
	require.InDelta(t, 0, near[0].Distance, 1e-9)
	require.Equal(t, otherID, near[1].ID)
	require.InDelta(t, 5.3145, near[1].Distance, 0.01)
}

func TestUpsertInventoryKeepsOneRowPerKey(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	storeID := addStore(t, s, "7-Eleven", 40.7128, -74.0060)

	price := 2.99
	_, err := s.UpsertInventory(ctx, inventory.Item{
		StoreID: storeID,
		DrinkID: "monster-original",
		Size:    "16oz",
		Price:   &price,
		InStock: true,
	})
	require.NoError(t, err)

	items, err := s.StoreInventory(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	firstUpdated := items[0].LastUpdated

	time.Sleep(50 * time.Millisecond)

	newPrice := 3.49
	_, err = s.UpsertInventory(ctx, inventory.Item{
		StoreID: storeID,
		DrinkID: "monster-original",
		Size:    "16oz",
		Price:   &newPrice,
		InStock: false,
	})
	require.NoError(t, err)

	items, err = s.StoreInventory(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, newPrice, *items[0].Price)
	require.False(t, items[0].InStock)
	require.True(t, items[0].LastUpdated.After(firstUpdated))
}

func TestVerificationCount(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	storeID := addStore(t, s, "7-Eleven", 40.7128, -74.0060)

	id, err := s.UpsertInventory(ctx, inventory.Item{
		StoreID: storeID,
		DrinkID: "monster-original",
		Size:    "16oz",
		InStock: true,
	})
	require.NoError(t, err)

	require.NoError(t, s.AddVerification(ctx, id, "192.168.1.10"))
	require.NoError(t, s.AddVerification(ctx, id, "192.168.1.10"))

	items, err := s.StoreInventory(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].VerificationCount)
}

func TestGuestbookNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.AddGuestbookEntry(ctx, "Alice", "great site")
	require.NoError(t, err)

	secondID, err := s.AddGuestbookEntry(ctx, "Bob", "found my drink")
	require.NoError(t, err)

	entries, err := s.GuestbookEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, secondID, entries[0].ID)
	require.Equal(t, "Bob", entries[0].Name)
}
