package inventory

import "time"

// Item is one inventory report for a (store, drink, size) key. At most
// one row exists per key; resubmitting replaces the mutable fields.
type Item struct {
	ID                int       `json:"id"`
	StoreID           int       `json:"store_id"`
	DrinkID           string    `json:"drink_id"`
	Size              string    `json:"size"`
	Price             *float64  `json:"price"`
	InStock           bool      `json:"in_stock"`
	LastUpdated       time.Time `json:"last_updated"`
	UpdatedBy         *string   `json:"updated_by"`
	PhotoPath         *string   `json:"photo_path"`
	VerificationCount int       `json:"verification_count"`
}
