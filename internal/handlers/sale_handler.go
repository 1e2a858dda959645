package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storemanager/internal/models"
	"storemanager/internal/services"
)

// SaleHandler handles HTTP requests for sales.
type SaleHandler struct {
	service *services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *services.SaleService) *SaleHandler {
	return &SaleHandler{
		service: service,
	}
}

// RegisterRoutes registers the sale routes with the Fiber app.
func (h *SaleHandler) RegisterRoutes(router fiber.Router) {
	sales := router.Group("/sales")
	sales.Post("/", h.HandleCreateSale)
	sales.Get("/", h.HandleGetSales)
	sales.Get("/:id", h.HandleGetSaleByID)
	sales.Put("/:id", h.HandleEditSale)
	sales.Delete("/:id", h.HandleDeleteSale)
}

// HandleCreateSale creates a new sale from an array of line items.
func (h *SaleHandler) HandleCreateSale(c *fiber.Ctx) error {
	var items []models.SaleItem
	if err := c.BodyParser(&items); err != nil {
		return saleBodyError(err)
	}

	sale, err := h.service.CreateSale(items)
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

// HandleGetSales retrieves all sales.
func (h *SaleHandler) HandleGetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return err
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	return c.JSON(fiber.Map{"sales": sales})
}

// HandleGetSaleByID retrieves a single sale by its ID.
func (h *SaleHandler) HandleGetSaleByID(c *fiber.Ctx) error {
	sale, err := h.service.GetSaleByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

// HandleEditSale replaces matching line items of an existing sale.
func (h *SaleHandler) HandleEditSale(c *fiber.Ctx) error {
	var items []models.SaleItem
	if err := c.BodyParser(&items); err != nil {
		return saleBodyError(err)
	}

	sale, err := h.service.EditSale(c.Params("id"), items)
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

// HandleDeleteSale deletes a sale, restoring product stock, and returns the
// deleted document.
func (h *SaleHandler) HandleDeleteSale(c *fiber.Ctx) error {
	sale, err := h.service.DeleteSale(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sale)
}
