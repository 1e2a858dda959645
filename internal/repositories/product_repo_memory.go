package repositories

import (
	"sync"

	"storemanager/internal/apperrors"
	"storemanager/internal/models"
	"storemanager/pkg/objectid"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository, used when the process runs without a database and as a
// lightweight store in tests.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	order    []string
	products map[string]models.Product
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetByID returns a product by its ID, or (nil, nil) if absent.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	if !objectid.IsValid(id) {
		return nil, apperrors.InvalidData("Wrong id format")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// GetByName returns a product by exact name match, or (nil, nil) if absent.
func (r *MemoryProductRepository) GetByName(name string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if p := r.products[id]; p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

// Create adds a new product, assigning an identifier when none is set.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = objectid.New()
	}
	if _, ok := r.products[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update overwrites name and quantity for the given id.
func (r *MemoryProductRepository) Update(id, name string, quantity int) (*models.Product, error) {
	if !objectid.IsValid(id) {
		return nil, apperrors.InvalidData("Wrong id format")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return nil, nil
	}
	updated := models.Product{ID: id, Name: name, Quantity: quantity}
	r.products[id] = updated
	return &updated, nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id string) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; ok {
		delete(r.products, id)
		for i, known := range r.order {
			if known == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// AdjustQuantity adds delta to the product's stock.
func (r *MemoryProductRepository) AdjustQuantity(id string, delta int) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil
	}
	product.Quantity += delta
	r.products[id] = product
	return nil
}
