package repositories

import (
	"storemanager/internal/models"
)

// SaleRepository defines the store adapter for the sales collection. The
// same conventions as ProductRepository apply: (nil, nil) for absent
// documents, invalid_data for malformed identifiers.
type SaleRepository interface {
	GetAll() ([]models.Sale, error)
	GetByID(id string) (*models.Sale, error)
	Create(sale *models.Sale) error
	// ReplaceItems overwrites, for each incoming item, every stored entry
	// with a matching productId. Entries without a match are left untouched.
	// A missing sale is a silent no-op; callers detect it by re-fetching.
	ReplaceItems(id string, items []models.SaleItem) error
	Delete(id string) error
}
