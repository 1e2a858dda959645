package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"storemanager/internal/handlers"
	"storemanager/internal/middleware"
	"storemanager/internal/models"
	"storemanager/internal/repositories"
	"storemanager/internal/services"
	"storemanager/pkg/objectid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a full Fiber app over an in-memory SQLite database. When
// authRequired is true the product/sale routes sit behind the JWT guard,
// mirroring the AUTH_ENABLED wiring in main.
func setupApp(t *testing.T, authRequired bool) (*fiber.App, error) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	saleRepo := repositories.NewGORMSaleRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	productService := services.NewProductService(productRepo)
	saleService := services.NewSaleService(saleRepo, productService, nil) // nil publisher: no broker in tests
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	authHandler.RegisterRoutes(app)

	entityRoutes := fiber.Router(app)
	if authRequired {
		entityRoutes = app.Group("", middleware.AuthRequired(authService))
	}
	productHandler.RegisterRoutes(entityRoutes)
	saleHandler.RegisterRoutes(entityRoutes)

	return app, nil
}

// errBody is the uniform error envelope every failure renders.
type errBody struct {
	Err struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"err"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func decodeErr(t *testing.T, raw []byte) errBody {
	t.Helper()
	var body errBody
	assert.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestProductLifecycle(t *testing.T) {
	app, err := setupApp(t, false)
	assert.NoError(t, err)

	// Create.
	resp, raw := doJSON(t, app, http.MethodPost, "/products", fiber.Map{"name": "caneta", "quantity": 10})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	assert.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "caneta", created.Name)
	assert.Equal(t, 10, created.Quantity)
	assert.True(t, objectid.IsValid(created.ID))

	// Duplicate name.
	resp, raw = doJSON(t, app, http.MethodPost, "/products", fiber.Map{"name": "caneta", "quantity": 3})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeErr(t, raw)
	assert.Equal(t, "invalid_data", body.Err.Code)
	assert.Equal(t, "Product already exists", body.Err.Message)

	// List.
	resp, raw = doJSON(t, app, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Products []models.Product `json:"products"`
	}
	assert.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list.Products, 1)

	// Get by id.
	resp, raw = doJSON(t, app, http.MethodGet, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	assert.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, created, fetched)

	// Edit.
	resp, raw = doJSON(t, app, http.MethodPut, "/products/"+created.ID, fiber.Map{"name": "caneta azul", "quantity": 25})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var edited models.Product
	assert.NoError(t, json.Unmarshal(raw, &edited))
	assert.Equal(t, models.Product{ID: created.ID, Name: "caneta azul", Quantity: 25}, edited)

	// Delete returns the pre-deletion snapshot.
	resp, raw = doJSON(t, app, http.MethodDelete, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted models.Product
	assert.NoError(t, json.Unmarshal(raw, &deleted))
	assert.Equal(t, edited, deleted)

	resp, raw = doJSON(t, app, http.MethodGet, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeErr(t, raw)
	assert.Equal(t, "not_found", body.Err.Code)
	assert.Equal(t, "Product not found", body.Err.Message)
}

func TestProductValidationMessages(t *testing.T) {
	app, err := setupApp(t, false)
	assert.NoError(t, err)

	cases := []struct {
		payload interface{}
		message string
	}{
		{fiber.Map{"quantity": 10}, "name is a required field"},
		{fiber.Map{"name": "abcd", "quantity": 10}, "name must be at least 5 characters in length"},
		{fiber.Map{"name": "caneta"}, "quantity must be 1 or larger"},
		{fiber.Map{"name": "caneta", "quantity": 0}, "quantity must be 1 or larger"},
		{fiber.Map{"name": "caneta", "quantity": "dez"}, "quantity must be a number"},
	}

	for _, tc := range cases {
		resp, raw := doJSON(t, app, http.MethodPost, "/products", tc.payload)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeErr(t, raw)
		assert.Equal(t, "invalid_data", body.Err.Code)
		assert.Equal(t, tc.message, body.Err.Message)
	}
}

func TestMalformedIDNeverReachesNotFound(t *testing.T) {
	app, err := setupApp(t, false)
	assert.NoError(t, err)

	paths := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/products/abc", nil},
		{http.MethodPut, "/products/abc", fiber.Map{"name": "caneta", "quantity": 1}},
		{http.MethodDelete, "/products/abc", nil},
		{http.MethodGet, "/sales/abc", nil},
		{http.MethodDelete, "/sales/abc", nil},
	}

	for _, tc := range paths {
		resp, raw := doJSON(t, app, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "%s %s", tc.method, tc.path)
		body := decodeErr(t, raw)
		assert.Equal(t, "invalid_data", body.Err.Code)
		assert.Equal(t, "Wrong id format", body.Err.Message)
	}
}

func TestSaleLifecycleAdjustsStock(t *testing.T) {
	app, err := setupApp(t, false)
	assert.NoError(t, err)

	// POST /products {name: caneta, quantity: 10}
	resp, raw := doJSON(t, app, http.MethodPost, "/products", fiber.Map{"name": "caneta", "quantity": 10})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	assert.NoError(t, json.Unmarshal(raw, &product))

	// POST /sales [{productId, quantity: 3}] decrements stock to 7.
	resp, raw = doJSON(t, app, http.MethodPost, "/sales", []fiber.Map{{"productId": product.ID, "quantity": 3}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var sale models.Sale
	assert.NoError(t, json.Unmarshal(raw, &sale))
	assert.True(t, objectid.IsValid(sale.ID))
	assert.Equal(t, []models.SaleItem{{ProductID: product.ID, Quantity: 3}}, sale.ItensSold)

	_, raw = doJSON(t, app, http.MethodGet, "/products/"+product.ID, nil)
	var after models.Product
	assert.NoError(t, json.Unmarshal(raw, &after))
	assert.Equal(t, 7, after.Quantity)

	// Editing the sale replaces the item but does not touch stock.
	resp, raw = doJSON(t, app, http.MethodPut, "/sales/"+sale.ID, []fiber.Map{{"productId": product.ID, "quantity": 5}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var editedSale models.Sale
	assert.NoError(t, json.Unmarshal(raw, &editedSale))
	assert.Equal(t, []models.SaleItem{{ProductID: product.ID, Quantity: 5}}, editedSale.ItensSold)

	_, raw = doJSON(t, app, http.MethodGet, "/products/"+product.ID, nil)
	assert.NoError(t, json.Unmarshal(raw, &after))
	assert.Equal(t, 7, after.Quantity)

	// DELETE /sales/:id restores stock to 10.
	resp, raw = doJSON(t, app, http.MethodDelete, "/sales/"+sale.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deletedSale models.Sale
	assert.NoError(t, json.Unmarshal(raw, &deletedSale))
	assert.Equal(t, editedSale.ItensSold, deletedSale.ItensSold)

	_, raw = doJSON(t, app, http.MethodGet, "/products/"+product.ID, nil)
	assert.NoError(t, json.Unmarshal(raw, &after))
	assert.Equal(t, 10, after.Quantity)

	resp, raw = doJSON(t, app, http.MethodGet, "/sales/"+sale.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeErr(t, raw)
	assert.Equal(t, "not_found", body.Err.Code)
	assert.Equal(t, "Sale not found", body.Err.Message)
}

func TestSaleStockProblemLeavesStockUnchanged(t *testing.T) {
	app, err := setupApp(t, false)
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodPost, "/products", fiber.Map{"name": "caneta", "quantity": 10})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	assert.NoError(t, json.Unmarshal(raw, &product))

	resp, raw = doJSON(t, app, http.MethodPost, "/sales", []fiber.Map{{"productId": product.ID, "quantity": 999}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeErr(t, raw)
	assert.Equal(t, "stock_problem", body.Err.Code)
	assert.Equal(t, "Such amount is not permitted to sell", body.Err.Message)

	_, raw = doJSON(t, app, http.MethodGet, "/products/"+product.ID, nil)
	var after models.Product
	assert.NoError(t, json.Unmarshal(raw, &after))
	assert.Equal(t, 10, after.Quantity)

	// No sale document was persisted.
	_, raw = doJSON(t, app, http.MethodGet, "/sales", nil)
	var list struct {
		Sales []models.Sale `json:"sales"`
	}
	assert.NoError(t, json.Unmarshal(raw, &list))
	assert.Empty(t, list.Sales)
}

func TestSaleInvalidItems(t *testing.T) {
	app, err := setupApp(t, false)
	assert.NoError(t, err)

	payloads := []interface{}{
		[]fiber.Map{{"productId": "abc", "quantity": 3}},
		[]fiber.Map{{"productId": strings.Repeat("a", 24), "quantity": 0}},
		[]fiber.Map{{"productId": strings.Repeat("a", 24), "quantity": "tres"}},
	}

	for _, payload := range payloads {
		resp, raw := doJSON(t, app, http.MethodPost, "/sales", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeErr(t, raw)
		assert.Equal(t, "invalid_data", body.Err.Code)
		assert.Equal(t, "Wrong product ID or invalid quantity", body.Err.Message)
	}
}

func TestSaleAgainstMissingProduct(t *testing.T) {
	app, err := setupApp(t, false)
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodPost, "/sales", []fiber.Map{{"productId": objectid.New(), "quantity": 1}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeErr(t, raw)
	assert.Equal(t, "not_found", body.Err.Code)
	assert.Equal(t, "Product not found", body.Err.Message)
}

func TestAuthProtectedRoutes(t *testing.T) {
	app, err := setupApp(t, true)
	assert.NoError(t, err)

	// Without a token the guarded routes refuse.
	resp, _ := doJSON(t, app, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Register and log in.
	resp, _ = doJSON(t, app, http.MethodPost, "/auth/register", fiber.Map{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"username": "testuser",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(raw, &login))
	assert.NotEmpty(t, login.Token)

	// The token opens the guarded routes.
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	authed, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, authed.StatusCode)
	authed.Body.Close()

	// Wrong credentials stay out.
	resp, _ = doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"username": "testuser",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
