package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storemanager/internal/apperrors"
	"storemanager/internal/models"
	"storemanager/pkg/objectid"
)

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{
		db: db,
	}
}

// GetAll retrieves all sales in store-native order.
func (r *GORMSaleRepository) GetAll() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sales: %w", err)
	}
	return sales, nil
}

// GetByID retrieves a single sale by its ID, or (nil, nil) if absent.
func (r *GORMSaleRepository) GetByID(id string) (*models.Sale, error) {
	if !objectid.IsValid(id) {
		return nil, apperrors.InvalidData("Wrong id format")
	}
	var sale models.Sale
	if err := r.db.First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sale by ID %s: %w", id, err)
	}
	return &sale, nil
}

// Create inserts a new sale, assigning an identifier when none is set.
// Every line item's product reference must be well-formed; the reference
// itself stays advisory and is not checked for existence here.
func (r *GORMSaleRepository) Create(sale *models.Sale) error {
	for _, item := range sale.ItensSold {
		if !objectid.IsValid(item.ProductID) {
			return apperrors.InvalidData("Wrong id format")
		}
	}
	if sale.ID == "" {
		sale.ID = objectid.New()
	}
	if err := r.db.Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// ReplaceItems overwrites every stored entry whose productId matches one of
// the incoming items. A missing sale is a silent no-op.
func (r *GORMSaleRepository) ReplaceItems(id string, items []models.SaleItem) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	var sale models.Sale
	if err := r.db.First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load sale %s for item update: %w", id, err)
	}
	for i, existing := range sale.ItensSold {
		for _, item := range items {
			if existing.ProductID == item.ProductID {
				sale.ItensSold[i] = item
			}
		}
	}
	if err := r.db.Model(&sale).Update("itens_sold", sale.ItensSold).Error; err != nil {
		return fmt.Errorf("failed to update items of sale %s: %w", id, err)
	}
	return nil
}

// Delete removes a sale by its ID.
func (r *GORMSaleRepository) Delete(id string) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	if err := r.db.Delete(&models.Sale{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", id, err)
	}
	return nil
}
