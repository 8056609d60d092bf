package storehandler

import "github.com/sippsearcher/sippsearcher-backend/internal/store"

type StoreRequest struct {
	Name      string   `json:"name" validate:"required"`
	Address   string   `json:"address" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Phone     *string  `json:"phone"`
}

func (sr *StoreRequest) ToDomain() store.Store {
	return store.Store{
		Name:      sr.Name,
		Address:   sr.Address,
		Latitude:  *sr.Latitude,
		Longitude: *sr.Longitude,
		Phone:     sr.Phone,
	}
}

type IDResponse struct {
	ID int `json:"id"`
}
