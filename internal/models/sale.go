package models

// SaleItem is one line item within a sale. ProductID is an advisory
// reference: nothing stops the referenced product from being deleted later,
// so readers must be prepared for a dangling id.
type SaleItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Sale represents a sale document. ItensSold keeps the insertion order of
// the request and may reference the same product more than once.
type Sale struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(24)"`
	ItensSold []SaleItem `json:"itensSold" gorm:"serializer:json"`
}
