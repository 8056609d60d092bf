package memory

import (
	"time"

	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
)

type seedItem struct {
	storeID   int
	drinkID   string
	size      string
	price     float64
	inStock   bool
	updatedBy string
}

// seed loads the sample data set that the durable deployments get from
// their seeding scripts.
func (s *Storage) seed() {
	now := time.Now()

	sampleStores := []store.Store{
		{Name: "7-Eleven", Address: "123 Main St, Anytown, USA", Latitude: 40.7128, Longitude: -74.0060, Phone: ptr("(555) 123-4567")},
		{Name: "Circle K", Address: "456 Oak Ave, Somewhere, USA", Latitude: 40.7580, Longitude: -73.9855, Phone: ptr("(555) 987-6543")},
		{Name: "Wawa", Address: "789 Pine Rd, Elsewhere, USA", Latitude: 40.7282, Longitude: -74.0776, Phone: ptr("(555) 456-7890")},
		{Name: "QuikTrip", Address: "321 Elm St, Anywhere, USA", Latitude: 40.7505, Longitude: -73.9934, Phone: ptr("(555) 234-5678")},
		{Name: "Speedway", Address: "654 Maple Dr, Nowhere, USA", Latitude: 40.7614, Longitude: -73.9776, Phone: ptr("(555) 345-6789")},
	}

	for _, st := range sampleStores {
		st.ID = s.nextStoreID
		s.nextStoreID++
		st.CreatedAt = now

		s.stores = append(s.stores, st)
	}

	sampleInventory := []seedItem{
		{1, "monster-original", "16oz", 2.99, true, "Store Manager"},
		{1, "monster-ultra-zero", "16oz", 2.99, true, "Store Manager"},
		{1, "monster-ultra-red", "16oz", 2.99, false, "Store Manager"},
		{1, "monster-pipeline-punch", "16oz", 3.29, true, "Store Manager"},
		{2, "monster-original", "16oz", 2.89, true, "Assistant Manager"},
		{2, "monster-ultra-blue", "16oz", 2.89, true, "Assistant Manager"},
		{2, "monster-assault", "16oz", 2.89, true, "Assistant Manager"},
		{2, "monster-mango-loco", "16oz", 3.19, false, "Assistant Manager"},
		{3, "monster-original", "16oz", 3.09, true, "Energy Enthusiast"},
		{3, "monster-ultra-sunrise", "16oz", 3.09, true, "Energy Enthusiast"},
		{3, "monster-ultra-paradise", "16oz", 3.09, true, "Energy Enthusiast"},
		{3, "monster-pacific-punch", "16oz", 3.39, true, "Energy Enthusiast"},
		{4, "monster-original", "24oz", 3.99, true, "QT Employee"},
		{4, "monster-ultra-zero", "24oz", 3.99, true, "QT Employee"},
		{4, "monster-ultra-black", "16oz", 2.99, false, "QT Employee"},
		{4, "monster-rehab-tea-lemonade", "16oz", 3.49, true, "QT Employee"},
		{5, "monster-original", "16oz", 2.95, true, "Night Shift"},
		{5, "monster-ultra-red", "16oz", 2.95, true, "Night Shift"},
		{5, "monster-ultra-blue", "16oz", 2.95, true, "Night Shift"},
		{5, "monster-pipeline-punch", "24oz", 3.79, false, "Night Shift"},
	}

	// Staggered timestamps keep the newest-first inventory ordering
	// deterministic.
	for i, sample := range sampleInventory {
		price := sample.price
		updatedBy := sample.updatedBy

		item := inventory.Item{
			ID:          s.nextInventoryID,
			StoreID:     sample.storeID,
			DrinkID:     sample.drinkID,
			Size:        sample.size,
			Price:       &price,
			InStock:     sample.inStock,
			LastUpdated: now.Add(-time.Duration(len(sampleInventory)-i) * time.Minute),
			UpdatedBy:   &updatedBy,
		}
		s.nextInventoryID++

		s.inventory = append(s.inventory, item)
	}
}

func ptr(v string) *string {
	return &v
}
