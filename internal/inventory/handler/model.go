package inventoryhandler

import "github.com/sippsearcher/sippsearcher-backend/internal/inventory"

type ReportRequest struct {
	StoreID   int      `validate:"required"`
	DrinkID   string   `validate:"required"`
	Size      string   `validate:"required"`
	Price     *float64 `validate:"omitempty,gte=0"`
	InStock   bool
	UpdatedBy *string
	PhotoPath *string
}

func (rr *ReportRequest) ToDomain() inventory.Item {
	return inventory.Item{
		StoreID:   rr.StoreID,
		DrinkID:   rr.DrinkID,
		Size:      rr.Size,
		Price:     rr.Price,
		InStock:   rr.InStock,
		UpdatedBy: rr.UpdatedBy,
		PhotoPath: rr.PhotoPath,
	}
}

type IDResponse struct {
	ID int `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
