// Package memory is the ephemeral fallback backend. All state is
// process-local and lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sippsearcher/sippsearcher-backend/internal/geo"
	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook"
	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
)

const initialVisitorCount = 1337

type Storage struct {
	logger *zap.Logger

	mu              sync.Mutex
	stores          []store.Store
	inventory       []inventory.Item
	verifications   map[int]int
	guestbook       []guestbook.Entry
	visitorCount    int
	nextStoreID     int
	nextInventoryID int
	nextGuestbookID int
}

func New(logger *zap.Logger) *Storage {
	return &Storage{
		logger:          logger,
		verifications:   make(map[int]int),
		visitorCount:    initialVisitorCount,
		nextStoreID:     1,
		nextInventoryID: 1,
		nextGuestbookID: 1,
	}
}

// NewSeeded returns a storage pre-populated with the sample stores and
// inventory reports, so a fallback deployment is not an empty map.
func NewSeeded(logger *zap.Logger) *Storage {
	s := New(logger)
	s.seed()

	return s
}

func (s *Storage) Kind() storage.Kind {
	return storage.KindMemory
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) ListStores(ctx context.Context) ([]store.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stores := make([]store.Store, len(s.stores))
	copy(stores, s.stores)

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].Name < stores[j].Name
	})

	return stores, nil
}

func (s *Storage) FindStoresNear(ctx context.Context, lat, lng, radiusKm float64) ([]store.StoreWithDistance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	near := make([]store.StoreWithDistance, 0)
	for _, st := range s.stores {
		distance := geo.Distance(lat, lng, st.Latitude, st.Longitude)
		if distance < radiusKm {
			near = append(near, store.StoreWithDistance{Store: st, Distance: distance})
		}
	}

	sort.Slice(near, func(i, j int) bool {
		return near[i].Distance < near[j].Distance
	})

	return near, nil
}

func (s *Storage) AddStore(ctx context.Context, data store.Store) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = s.nextStoreID
	s.nextStoreID++
	data.CreatedAt = time.Now()

	s.stores = append(s.stores, data)

	return data.ID, nil
}

func (s *Storage) CountStores(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.stores), nil
}

func (s *Storage) StoreInventory(ctx context.Context, storeID int) ([]inventory.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]inventory.Item, 0)
	for _, item := range s.inventory {
		if item.StoreID == storeID {
			item.VerificationCount = s.verifications[item.ID]
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].LastUpdated.Equal(items[j].LastUpdated) {
			return items[i].ID > items[j].ID
		}
		return items[i].LastUpdated.After(items[j].LastUpdated)
	})

	return items, nil
}

func (s *Storage) UpsertInventory(ctx context.Context, item inventory.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.LastUpdated = time.Now()

	for i, existing := range s.inventory {
		if existing.StoreID == item.StoreID && existing.DrinkID == item.DrinkID && existing.Size == item.Size {
			item.ID = existing.ID
			s.inventory[i] = item

			return item.ID, nil
		}
	}

	item.ID = s.nextInventoryID
	s.nextInventoryID++
	s.inventory = append(s.inventory, item)

	return item.ID, nil
}

func (s *Storage) AddVerification(ctx context.Context, inventoryID int, userIP string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Verification rows are only ever read back as a count.
	s.verifications[inventoryID]++

	return nil
}

func (s *Storage) IncrementVisitorCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visitorCount++

	return s.visitorCount, nil
}

func (s *Storage) VisitorCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.visitorCount, nil
}

func (s *Storage) GuestbookEntries(ctx context.Context) ([]guestbook.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]guestbook.Entry, len(s.guestbook))
	copy(entries, s.guestbook)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}

func (s *Storage) AddGuestbookEntry(ctx context.Context, name, message string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := guestbook.Entry{
		ID:        s.nextGuestbookID,
		Name:      name,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.nextGuestbookID++

	s.guestbook = append(s.guestbook, entry)

	return entry.ID, nil
}
