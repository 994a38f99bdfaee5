package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appaudit "github.com/dreamshub/backend/internal/application/audit"
	appcatalog "github.com/dreamshub/backend/internal/application/catalog"
	appledger "github.com/dreamshub/backend/internal/application/ledger"
	"github.com/dreamshub/backend/internal/application/report"
	"github.com/dreamshub/backend/internal/domain/audit"
	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/dreamshub/backend/internal/domain/location"
	infraauth "github.com/dreamshub/backend/internal/infrastructure/auth"
	"github.com/dreamshub/backend/internal/infrastructure/config"
	"github.com/dreamshub/backend/internal/infrastructure/persistence"
	"github.com/dreamshub/backend/internal/interfaces/http/dto"
	"github.com/dreamshub/backend/internal/interfaces/http/middleware"
	"github.com/dreamshub/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp wires the full stack over an in-memory database so handler
// tests exercise real binding, middleware and persistence.
type testApp struct {
	engine *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	require.NoError(t, middleware.RegisterValidators())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&catalog.Category{},
		&catalog.Batch{},
		&catalog.SerialNumber{},
		&location.Warehouse{},
		&ledger.Movement{},
		&audit.LogEntry{},
	))

	movementRepo := persistence.NewGormMovementRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	warehouseRepo := persistence.NewGormWarehouseRepository(db)
	batchRepo := persistence.NewGormBatchRepository(db)
	serialRepo := persistence.NewGormSerialNumberRepository(db)
	logRepo := persistence.NewGormLogRepository(db)

	writer := appledger.NewMovementWriter(movementRepo, productRepo, warehouseRepo)
	inventoryService := appledger.NewInventoryService(movementRepo, productRepo, categoryRepo, warehouseRepo, batchRepo, serialRepo)
	productService := appcatalog.NewProductService(productRepo, categoryRepo, batchRepo, serialRepo, warehouseRepo, movementRepo, writer)
	categoryService := appcatalog.NewCategoryService(categoryRepo)
	warehouseService := appcatalog.NewWarehouseService(warehouseRepo)
	analyticsService := report.NewAnalyticsService(movementRepo, productRepo, categoryRepo, batchRepo)
	auditQueries := appaudit.NewQueryService(logRepo)

	require.NoError(t, warehouseService.EnsureDefault(context.Background()))

	users := infraauth.NewStaticUserStore()
	require.NoError(t, users.SeedDefaults())
	jwtService := infraauth.NewJWTService(config.JWTConfig{
		Secret:          "handler-test-secret-32-characters!!",
		TokenExpiration: time.Hour,
		Issuer:          "dreamshub-test",
	})

	logger := zap.NewNop()
	authHandler := NewAuthHandler(users, jwtService, logRepo, logger)
	productHandler := NewProductHandler(productService, logger)
	categoryHandler := NewCategoryHandler(categoryService, logger)
	warehouseHandler := NewWarehouseHandler(warehouseService, logger)
	ledgerHandler := NewLedgerHandler(writer, logger)
	inventoryHandler := NewInventoryHandler(inventoryService, logger)
	reportHandler := NewReportHandler(analyticsService, logger)
	auditHandler := NewAuditHandler(auditQueries, logger)

	engine := router.New(jwtService, middleware.DefaultCORSConfig(), logger).
		Public(authHandler).
		Protected(
			router.RegistrarFunc(authHandler.RegisterProtectedRoutes),
			productHandler,
			categoryHandler,
			warehouseHandler,
			ledgerHandler,
			inventoryHandler,
			reportHandler,
			auditHandler,
		).
		Manager(router.RegistrarFunc(ledgerHandler.RegisterManagerRoutes)).
		Build()

	return &testApp{engine: engine}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func (a *testApp) createProduct(t *testing.T, token, name string, stock int64) appcatalog.ProductResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/products", token, gin.H{
		"name":          name,
		"sku":           "SKU-" + name,
		"category":      "Electronics",
		"buying_price":  "100",
		"selling_price": "150",
		"initial_stock": stock,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product appcatalog.ProductResponse
	decodeData(t, w, &product)
	return product
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		token := app.login(t, "admin@dreamshub.com")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "admin@dreamshub.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "admin@dreamshub.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login is recorded in the activity trail", func(t *testing.T) {
		token := app.login(t, "manager@dreamshub.com")

		w := app.do(t, http.MethodGet, "/api/v1/audit-logs", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var entries []appaudit.LogEntryResponse
		decodeData(t, w, &entries)

		found := false
		for _, entry := range entries {
			if entry.Type == "auth" && entry.Action == "System Login" && entry.Actor == "Bob Smith" {
				found = true
			}
		}
		assert.True(t, found, "expected a login entry for Bob Smith")
	})
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "admin@dreamshub.com")

	product := app.createProduct(t, token, "Dream Laptop", 25)
	assert.Equal(t, "Dream Laptop", product.Name)
	assert.NotEmpty(t, product.SKU)

	t.Run("get by id", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid id is a bad request", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/v1/products/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/v1/products/00000000-0000-0000-0000-000000000009", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("initial stock is derived from the ledger", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/v1/inventory/stock-levels", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var levels []appledger.StockLevelResponse
		decodeData(t, w, &levels)

		require.Len(t, levels, 1)
		assert.Equal(t, int64(25), levels[0].Stock)
		assert.Equal(t, "In Stock", levels[0].Status)
	})

	t.Run("delete removes product and its history", func(t *testing.T) {
		w := app.do(t, http.MethodDelete, "/api/v1/products/"+product.ID.String(), token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = app.do(t, http.MethodGet, "/api/v1/inventory/movements", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var movements []appledger.MovementResponse
		decodeData(t, w, &movements)
		assert.Empty(t, movements)
	})
}

func TestRecordSale(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@dreamshub.com")
	cashier := app.login(t, "cashier@dreamshub.com")

	product := app.createProduct(t, admin, "Gadget", 8)

	t.Run("cashier can sell", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/stock/sales", cashier, gin.H{
			"items": []gin.H{{"product_id": product.ID.String(), "quantity": 3}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var result appledger.SaleResult
		decodeData(t, w, &result)
		assert.Equal(t, 1, result.ItemCount)
		assert.NotEmpty(t, result.OrderNumber)
		require.Len(t, result.Movements, 1)
		assert.Equal(t, int64(-3), result.Movements[0].Quantity)
	})

	t.Run("oversell is rejected whole", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/stock/sales", cashier, gin.H{
			"items": []gin.H{{"product_id": product.ID.String(), "quantity": 100}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("stock reflects the sale", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/v1/inventory/stock-levels", cashier, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var levels []appledger.StockLevelResponse
		decodeData(t, w, &levels)
		require.Len(t, levels, 1)
		assert.Equal(t, int64(5), levels[0].Stock)
		assert.Equal(t, "Low Stock", levels[0].Status)
	})
}

func TestStockManagerGate(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@dreamshub.com")
	cashier := app.login(t, "cashier@dreamshub.com")

	product := app.createProduct(t, admin, "Widget", 10)

	adjustment := gin.H{
		"product_id":  product.ID.String(),
		"location_id": "00000000-0000-0000-0000-000000000001",
		"quantity":    -2,
		"reason":      "damaged",
	}

	t.Run("cashier cannot adjust stock", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/stock/adjustments", cashier, adjustment)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("manager can transfer", func(t *testing.T) {
		manager := app.login(t, "manager@dreamshub.com")

		// second location to transfer into
		w := app.do(t, http.MethodPost, "/api/v1/warehouses", manager, gin.H{
			"name": "Backroom",
			"type": "storage",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var backroom appcatalog.WarehouseResponse
		decodeData(t, w, &backroom)

		w = app.do(t, http.MethodGet, "/api/v1/warehouses", manager, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var warehouses []appcatalog.WarehouseResponse
		decodeData(t, w, &warehouses)

		var mainID string
		for _, wh := range warehouses {
			if wh.Name == location.DefaultLocationName {
				mainID = wh.ID.String()
			}
		}
		require.NotEmpty(t, mainID)

		w = app.do(t, http.MethodPost, "/api/v1/stock/transfers", manager, gin.H{
			"product_id":       product.ID.String(),
			"from_location_id": mainID,
			"to_location_id":   backroom.ID.String(),
			"quantity":         4,
			"reason":           "restock shelf",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var legs []appledger.MovementResponse
		decodeData(t, w, &legs)
		require.Len(t, legs, 2)
		assert.Equal(t, legs[0].OperationID, legs[1].OperationID)
		assert.Zero(t, legs[0].Quantity+legs[1].Quantity)
	})
}

func TestDashboardReports(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@dreamshub.com")

	app.createProduct(t, admin, "Alpha", 20)
	app.createProduct(t, admin, "Beta", 0)

	w := app.do(t, http.MethodGet, "/api/v1/reports/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/v1/reports/alerts", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var alerts report.StockAlerts
	decodeData(t, w, &alerts)
	require.Len(t, alerts.OutOfStock, 1)
	assert.Equal(t, "Beta", alerts.OutOfStock[0].ProductName)
}

func TestAuditExport(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@dreamshub.com")

	w := app.do(t, http.MethodGet, "/api/v1/audit-logs/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, w.Body.String())
}

func TestHealth(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	handler := NewHealthHandler(&persistence.Database{DB: db}, zap.NewNop())
	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
}
