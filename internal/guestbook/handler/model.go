package guestbookhandler

type EntryRequest struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type IDResponse struct {
	ID int `json:"id"`
}
