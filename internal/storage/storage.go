// Package storage defines the persistence contract shared by the
// postgres, sqlite and memory backends. Exactly one backend is selected
// at startup and kept for the process lifetime.
package storage

import (
	"context"

	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook"
	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
)

type Kind string

const (
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
	KindMemory   Kind = "memory"
)

type Storage interface {
	Kind() Kind
	Close() error

	ListStores(ctx context.Context) ([]store.Store, error)
	FindStoresNear(ctx context.Context, lat, lng, radiusKm float64) ([]store.StoreWithDistance, error)
	AddStore(ctx context.Context, data store.Store) (int, error)
	CountStores(ctx context.Context) (int, error)

	StoreInventory(ctx context.Context, storeID int) ([]inventory.Item, error)
	UpsertInventory(ctx context.Context, item inventory.Item) (int, error)
	AddVerification(ctx context.Context, inventoryID int, userIP string) error

	IncrementVisitorCount(ctx context.Context) (int, error)
	VisitorCount(ctx context.Context) (int, error)

	GuestbookEntries(ctx context.Context) ([]guestbook.Entry, error)
	AddGuestbookEntry(ctx context.Context, name, message string) (int, error)
}
