package services

import (
	"encoding/json"
	"log"

	"storemanager/internal/apperrors"
	"storemanager/internal/models"
	"storemanager/internal/repositories"
	"storemanager/pkg/objectid"
)

// EventPublisher publishes sale activity to the message broker. A nil
// publisher disables messaging.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// SaleService handles business logic related to sales: line-item
// validation, stock sufficiency, and the stock bookkeeping tied to sale
// creation and deletion.
type SaleService struct {
	saleRepo repositories.SaleRepository
	products *ProductService
	events   EventPublisher
}

// NewSaleService creates a new SaleService.
func NewSaleService(saleRepo repositories.SaleRepository, products *ProductService, events EventPublisher) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		products: products,
		events:   events,
	}
}

// validateSaleItems checks every line item in request order; the first
// violation is surfaced and later items are not evaluated.
func (s *SaleService) validateSaleItems(items []models.SaleItem) error {
	for _, item := range items {
		if len(item.ProductID) != objectid.Length || item.Quantity < 1 {
			return apperrors.InvalidData("Wrong product ID or invalid quantity")
		}
	}
	return nil
}

// CheckStock verifies that every line item can be served from current
// stock. All items are checked before the aggregate decision, so a later
// item's lookup still runs after an earlier insufficiency. Read-only.
func (s *SaleService) CheckStock(items []models.SaleItem) error {
	insufficient := false
	for _, item := range items {
		product, err := s.products.GetProductByID(item.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity-item.Quantity < 0 {
			insufficient = true
		}
	}
	if insufficient {
		return apperrors.StockProblem("Such amount is not permitted to sell")
	}
	return nil
}

// CreateSale runs the sale-creation protocol: validate every item, check
// stock sufficiency against live data, persist the sale, then decrement
// product stock. A failure before persistence leaves the store untouched;
// a failure after it leaves a persisted sale with unadjusted stock, which
// is surfaced to the caller and not rolled back.
func (s *SaleService) CreateSale(items []models.SaleItem) (*models.Sale, error) {
	if err := s.validateSaleItems(items); err != nil {
		return nil, err
	}
	if err := s.CheckStock(items); err != nil {
		return nil, err
	}

	sale := &models.Sale{ItensSold: items}
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	if err := s.products.DecreaseStock(items); err != nil {
		return nil, err
	}

	s.publish("sale.created", sale)
	return sale, nil
}

// GetAllSales retrieves all sales.
func (s *SaleService) GetAllSales() ([]models.Sale, error) {
	return s.saleRepo.GetAll()
}

// GetSaleByID retrieves a single sale by its ID.
func (s *SaleService) GetSaleByID(id string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperrors.NotFound("Sale not found")
	}
	return sale, nil
}

// EditSale validates the incoming items and replaces the matching entries
// of the sale's item list. Product stock is deliberately not re-adjusted
// for the quantity delta.
func (s *SaleService) EditSale(id string, items []models.SaleItem) (*models.Sale, error) {
	if err := s.validateSaleItems(items); err != nil {
		return nil, err
	}
	if err := s.saleRepo.ReplaceItems(id, items); err != nil {
		return nil, err
	}
	return s.GetSaleByID(id)
}

// DeleteSale removes the sale and restores stock for every line item it
// held. Deletion and restoration are independent steps; a failure in
// between leaves stock un-restored.
func (s *SaleService) DeleteSale(id string) (*models.Sale, error) {
	sale, err := s.GetSaleByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Delete(id); err != nil {
		return nil, err
	}
	if err := s.products.IncreaseStock(sale.ItensSold); err != nil {
		return nil, err
	}

	s.publish("sale.deleted", sale)
	return sale, nil
}

// publish sends a sale event to the broker. Publishing is best effort:
// failures are logged, never surfaced to the API caller.
func (s *SaleService) publish(routingKey string, sale *models.Sale) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"saleId":    sale.ID,
		"itensSold": sale.ItensSold,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for sale %s: %v", routingKey, sale.ID, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for sale %s: %v", routingKey, sale.ID, err)
	}
}
