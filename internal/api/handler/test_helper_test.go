package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/api/dto"
	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/service"
	"github.com/storeldb/storeapi/internal/infrastructure/sqlstore"
)

// testEnv holds all test dependencies
type testEnv struct {
	db             *sqlstore.DB
	store          *sqlstore.Store
	router         *gin.Engine
	orderService   *service.OrderService
	clientHandler  *ClientHandler
	productHandler *ProductHandler
	orderHandler   *OrderHandler
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlstore.Open(context.Background(), sqlstore.Options{
		Driver:      sqlstore.DriverSQLite,
		DSN:         ":memory:",
		AutoMigrate: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	store := sqlstore.NewStore(db)

	clientService := service.NewClientService(store)
	productService := service.NewProductService(store)
	orderService := service.NewOrderService(store)
	excelService := service.NewExcelService()

	clientHandler := NewClientHandler(clientService, excelService)
	productHandler := NewProductHandler(productService)
	orderHandler := NewOrderHandler(orderService, excelService)

	// api.NewServer sets this for the real router.
	decimal.MarshalJSONWithoutQuotes = true

	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Register routes without auth middleware
	api := router.Group("/api")
	clientHandler.Register(api.Group("/Clientes"), nil)
	productHandler.Register(api.Group("/Productos"), nil)
	orderHandler.Register(api.Group("/Orders"), nil)

	return &testEnv{
		db:             db,
		store:          store,
		router:         router,
		orderService:   orderService,
		clientHandler:  clientHandler,
		productHandler: productHandler,
		orderHandler:   orderHandler,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// seeded holds the keys assigned by seedTestData
type seeded struct {
	juan, maria, pedro   *domain.Client
	laptop, mouse, cable *domain.Product
	juanOrder            int
	mariaOrder           int
}

// seedTestData populates the database:
//
//	Juan Perez  one order: 1 x Laptop, 2 x Mouse (1038.99)
//	Maria Lopez one order: 3 x Mouse (58.50)
//	Pedro Gomez no orders
//	Cable has no description
func (env *testEnv) seedTestData(t *testing.T) *seeded {
	t.Helper()
	ctx := context.Background()

	s := &seeded{
		juan:   domain.NewClient("Juan Perez", "juan@example.com"),
		maria:  domain.NewClient("Maria Lopez", "maria@example.com"),
		pedro:  domain.NewClient("Pedro Gomez", "pedro@example.com"),
		laptop: domain.NewProduct("Laptop", ptr("14 inch"), decimal.RequireFromString("999.99")),
		mouse:  domain.NewProduct("Mouse", ptr("Wireless"), decimal.RequireFromString("19.50")),
		cable:  domain.NewProduct("Cable", nil, decimal.RequireFromString("5.00")),
	}

	uow := env.store.NewUnitOfWork()
	uow.Clients().Add(s.juan)
	uow.Clients().Add(s.maria)
	uow.Clients().Add(s.pedro)
	uow.Products().Add(s.laptop)
	uow.Products().Add(s.mouse)
	uow.Products().Add(s.cable)
	if _, err := uow.Complete(ctx); err != nil {
		t.Fatalf("failed to seed catalogue: %v", err)
	}

	order, err := env.orderService.CreateOrder(ctx, s.juan.ID, []service.OrderItemInput{
		{ProductID: s.laptop.ID, Quantity: 1},
		{ProductID: s.mouse.ID, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	s.juanOrder = order.OrderID

	order, err = env.orderService.CreateOrder(ctx, s.maria.ID, []service.OrderItemInput{
		{ProductID: s.mouse.ID, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	s.mariaOrder = order.OrderID

	return s
}

// makeRequest performs a request with an optional JSON body
func (env *testEnv) makeRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// decode parses the response body into v
func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	decode(t, w, &resp)
	return resp
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

// ptr is a helper to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
