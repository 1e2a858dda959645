package services

import (
	"storemanager/internal/apperrors"
	"storemanager/internal/models"
	"storemanager/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// validateProduct checks the create/edit payload: name at least 5
// characters, quantity at least 1.
func (s *ProductService) validateProduct(name string, quantity int) error {
	product := models.Product{Name: name, Quantity: quantity}
	if err := validate.Struct(&product); err != nil {
		return validationError(err)
	}
	return nil
}

// checkNameDuplicity fails when a product with exactly this name exists.
func (s *ProductService) checkNameDuplicity(name string) error {
	existing, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.InvalidData("Product already exists")
	}
	return nil
}

// CreateProduct validates the payload, enforces name uniqueness and
// persists the new product.
func (s *ProductService) CreateProduct(name string, quantity int) (*models.Product, error) {
	if err := s.validateProduct(name, quantity); err != nil {
		return nil, err
	}
	if err := s.checkNameDuplicity(name); err != nil {
		return nil, err
	}

	product := &models.Product{Name: name, Quantity: quantity}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}
	return product, nil
}

// EditProduct validates the payload and overwrites name and quantity for
// the given id, returning the post-update document.
func (s *ProductService) EditProduct(id, name string, quantity int) (*models.Product, error) {
	if err := s.validateProduct(name, quantity); err != nil {
		return nil, err
	}
	product, err := s.repo.Update(id, name, quantity)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}
	return product, nil
}

// DeleteProduct deletes a product unconditionally on current stock and
// returns the pre-deletion snapshot.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}
	return product, nil
}

// DecreaseStock removes the sold quantities from the referenced products,
// one update per line item.
func (s *ProductService) DecreaseStock(items []models.SaleItem) error {
	for _, item := range items {
		if err := s.repo.AdjustQuantity(item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// IncreaseStock restores quantities previously removed by a sale.
func (s *ProductService) IncreaseStock(items []models.SaleItem) error {
	for _, item := range items {
		if err := s.repo.AdjustQuantity(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
