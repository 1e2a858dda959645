package repositories

import (
	"storemanager/internal/models"
)

// ProductRepository defines the store adapter for the products collection.
//
// Lookup methods return (nil, nil) when no document matches; deciding what
// an absent product means belongs to the services. Methods taking an id
// reject malformed identifiers with an invalid_data error before touching
// the store.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByName(name string) (*models.Product, error)
	Create(product *models.Product) error
	// Update overwrites name and quantity for the given id and returns the
	// post-update document, or (nil, nil) when no document matched.
	Update(id, name string, quantity int) (*models.Product, error)
	Delete(id string) error
	// AdjustQuantity adds delta (which may be negative) to the product's
	// stock. No floor is applied.
	AdjustQuantity(id string, delta int) error
}
