package models

// Product represents an item held in stock.
//
// Quantity is validated as >= 1 on create/edit input, but sale activity may
// drive it down to zero (or below, if two sales race) afterwards.
type Product struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(24)"`
	Name     string `json:"name" validate:"required,min=5"`
	Quantity int    `json:"quantity" validate:"min=1"`
}
