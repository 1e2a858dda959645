package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storemanager/internal/apperrors"
	"storemanager/internal/models"
	"storemanager/pkg/objectid"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products in store-native order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID, or (nil, nil) if absent.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	if !objectid.IsValid(id) {
		return nil, apperrors.InvalidData("Wrong id format")
	}
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByName retrieves a product by exact name match, or (nil, nil) if absent.
func (r *GORMProductRepository) GetByName(name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by name %q: %w", name, err)
	}
	return &product, nil
}

// Create inserts a new product, assigning an identifier when none is set.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = objectid.New()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites name and quantity for the given id and returns the
// post-update document, or (nil, nil) when no row matched.
func (r *GORMProductRepository) Update(id, name string, quantity int) (*models.Product, error) {
	if !objectid.IsValid(id) {
		return nil, apperrors.InvalidData("Wrong id format")
	}
	res := r.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "quantity": quantity})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &models.Product{ID: id, Name: name, Quantity: quantity}, nil
}

// Delete removes a product by its ID. Deleting an absent product is not an
// error at this layer; services fetch before deleting.
func (r *GORMProductRepository) Delete(id string) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	if err := r.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// AdjustQuantity adds delta to the product's stock with a single in-place
// update, mirroring a document store's $inc.
func (r *GORMProductRepository) AdjustQuantity(id string, delta int) error {
	if !objectid.IsValid(id) {
		return apperrors.InvalidData("Wrong id format")
	}
	res := r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust quantity for product %s: %w", id, res.Error)
	}
	return nil
}
