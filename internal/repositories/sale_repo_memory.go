package repositories

import (
	"sync"

	"storemanager/internal/apperrors"
	"storemanager/internal/models"
	"storemanager/pkg/objectid"
)

// MemorySaleRepository is an in-memory implementation of SaleRepository.
type MemorySaleRepository struct {
	mu    sync.RWMutex
	order []string
	sales map[string]models.Sale
}

// NewMemorySaleRepository creates a new instance of MemorySaleRepository.
func NewMemorySaleRepository() *MemorySaleRepository {
	return &MemorySaleRepository{
		sales: make(map[string]models.Sale),
	}
}

// GetAll returns all sales in insertion order.
func (r *MemorySaleRepository) GetAll() ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	saleList := make([]models.Sale, 0, len(r.order))
	for _, id := range r.order {
		saleList = append(saleList, r.sales[id])
	}
	return saleList, nil
}

// GetByID returns a sale by its ID, or (nil, nil) if absent.
func (r *MemorySaleRepository) GetByID(id string) (*models.Sale, error) {
	if !objectid.IsValid(id) {
		return nil, apperrors.InvalidData("Wrong id format")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copied := sale
	copied.ItensSold = append([]models.SaleItem(nil), sale.ItensSold...)
	return &copied, nil
}

// Create adds a new sale, assigning an identifier when none is set.
func (r *MemorySaleRepository) Create(sale *models.Sale) error {
	for _, item := range sale.ItensSold {
		if !objectid.IsValid(item.ProductID) {
			return apperrors.InvalidData("Wrong id format")
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale.ID == "" {
		sale.ID = objectid.New()
	}
	if _, ok := r.sales[sale.ID]; !ok {
		r.order = append(r.order, sale.ID)
	}
	stored := *sale
	stored.ItensSold = append([]models.SaleItem(nil), sale.ItensSold...)
	r.sales[sale.ID] = stored
	return nil
}

// ReplaceItems overwrites stored entries whose productId matches an incoming
// item. A missing sale is a silent no-op.
func (r *MemorySaleRepository) ReplaceItems(id string, items []models.SaleItem) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	sale, ok := r.sales[id]
	if !ok {
		return nil
	}
	for i, existing := range sale.ItensSold {
		for _, item := range items {
			if existing.ProductID == item.ProductID {
				sale.ItensSold[i] = item
			}
		}
	}
	r.sales[id] = sale
	return nil
}

// Delete removes a sale by its ID.
func (r *MemorySaleRepository) Delete(id string) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sales[id]; ok {
		delete(r.sales, id)
		for i, known := range r.order {
			if known == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	return nil
}
