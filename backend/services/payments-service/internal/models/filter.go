package models

// ListFilter narrows invoice and transaction listings. Empty fields are ignored.
type ListFilter struct {
	UserID string
	Status string
}
