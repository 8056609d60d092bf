package store

import "time"

type Store struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreWithDistance annotates a store with its distance in kilometers
// from the point of a proximity query.
type StoreWithDistance struct {
	Store
	Distance float64 `json:"distance"`
}
