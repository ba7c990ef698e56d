// internal/interfaces/http/handlers/cart_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSessionCookie = "session_id=test-session"

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Environment: "test"},
		Cart: config.CartConfig{
			KeyPrefix:      "cart:session:",
			TTL:            time.Hour,
			CurrencySymbol: "$",
		},
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:handlers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&product.Product{}, &order.Order{}, &order.OrderItem{}))

	products := []product.Product{
		{SKU: "TSHIRT-001", Name: "Classic T-Shirt", Slug: "classic-t-shirt", Price: 1999, IsActive: true},
		{SKU: "MUG-001", Name: "Ceramic Mug", Slug: "ceramic-mug", Price: 1250, IsActive: true},
		{SKU: "RETIRED-001", Name: "Retired Item", Slug: "retired-item", Price: 999, IsActive: false},
	}
	require.NoError(t, db.Create(&products).Error)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := testConfig()
	cartHandler := NewCartHandler(db, client, cfg, log)
	checkoutHandler := NewCheckoutHandler(db, client, cfg, log)
	productHandler := NewProductHandler(db, cfg, log)

	router := gin.New()
	router.GET("/cart", cartHandler.GetCart)
	router.GET("/cart/badge", cartHandler.GetBadge)
	router.POST("/cart/items", cartHandler.AddToCart)
	router.PUT("/cart/items/:id", cartHandler.UpdateCartItem)
	router.DELETE("/cart/items/:id", cartHandler.RemoveFromCart)
	router.POST("/cart/events", cartHandler.DispatchEvent)
	router.POST("/checkout", checkoutHandler.PlaceOrder)
	router.GET("/products", productHandler.GetProducts)
	router.GET("/products/:id", productHandler.GetProduct)

	return router, mr, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", testSessionCookie)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func cartData(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object")
	return data
}

func TestGetCart_EmptyShowsPlaceholder(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/cart", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, decodeBody(t, w))
	assert.Equal(t, "Your cart is empty", data["placeholder"])
	assert.Equal(t, "$0.00", data["total"])

	badge := data["badge"].(map[string]interface{})
	assert.Equal(t, float64(0), badge["count"])
	assert.Equal(t, false, badge["visible"])
}

func TestAddToCart(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := cartData(t, body)

	rows := data["rows"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Classic T-Shirt", row["name"])
	assert.Equal(t, "$19.99", row["unit_price"])
	assert.Equal(t, float64(1), row["quantity"])
	assert.Equal(t, "$19.99", data["total"])

	notifications := body["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	n := notifications[0].(map[string]interface{})
	assert.Equal(t, "success", n["level"])
	assert.Equal(t, "Classic T-Shirt added to cart", n["message"])
}

func TestAddToCart_RepeatAddMerges(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, decodeBody(t, w))

	rows := data["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, float64(2), rows[0].(map[string]interface{})["quantity"])

	badge := data["badge"].(map[string]interface{})
	assert.Equal(t, float64(2), badge["count"])
	assert.Equal(t, true, badge["visible"])
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 999})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCart_InactiveProduct(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCart_MissingProductID(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItem_ClampsZero(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	doJSON(t, router, http.MethodPut, "/cart/items/1", gin.H{"quantity": 3})
	w := doJSON(t, router, http.MethodPut, "/cart/items/1", gin.H{"quantity": 0})

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, decodeBody(t, w))

	rows := data["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, float64(1), rows[0].(map[string]interface{})["quantity"])
	assert.Equal(t, "$19.99", data["total"])
}

func TestUpdateCartItem_NoNotification(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodPut, "/cart/items/1", gin.H{"quantity": 5})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Empty(t, body["notifications"])
}

func TestUpdateCartItem_AbsentProductIsNoOp(t *testing.T) {
	router, mr, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPut, "/cart/items/42", gin.H{"quantity": 3})

	require.Equal(t, http.StatusOK, w.Code)
	// Nothing was persisted for the session
	assert.False(t, mr.Exists("cart:session:test-session"))
}

func TestUpdateCartItem_InvalidID(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPut, "/cart/items/abc", gin.H{"quantity": 3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveFromCart(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodDelete, "/cart/items/1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := cartData(t, body)
	assert.Equal(t, "Your cart is empty", data["placeholder"])

	notifications := body["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	assert.Equal(t, "Item removed from cart", notifications[0].(map[string]interface{})["message"])
}

func TestRemoveFromCart_AbsentIsSilent(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodDelete, "/cart/items/99", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Empty(t, body["notifications"])

	rows := cartData(t, body)["rows"].([]interface{})
	assert.Len(t, rows, 1)
}

func TestDispatchEvent_Increment(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodPost, "/cart/events", gin.H{"action": "increment", "product_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	rows := cartData(t, decodeBody(t, w))["rows"].([]interface{})
	assert.Equal(t, float64(2), rows[0].(map[string]interface{})["quantity"])
}

func TestDispatchEvent_DecrementClampsAtOne(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodPost, "/cart/events", gin.H{"action": "decrement", "product_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	rows := cartData(t, decodeBody(t, w))["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, float64(1), rows[0].(map[string]interface{})["quantity"])
}

func TestDispatchEvent_Remove(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodPost, "/cart/events", gin.H{"action": "remove", "product_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, decodeBody(t, w))
	assert.Equal(t, "Your cart is empty", data["placeholder"])
}

func TestDispatchEvent_UnknownAction(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, router, http.MethodPost, "/cart/events", gin.H{"action": "explode", "product_id": 1})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBadge(t *testing.T) {
	router, _, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})
	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 2})
	w := doJSON(t, router, http.MethodGet, "/cart/badge", nil)

	require.Equal(t, http.StatusOK, w.Code)
	badge := cartData(t, decodeBody(t, w))
	assert.Equal(t, float64(2), badge["count"])
	assert.Equal(t, true, badge["visible"])
}

func TestCart_PersistsAcrossRequests(t *testing.T) {
	router, mr, _ := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": 1})

	assert.True(t, mr.Exists("cart:session:test-session"))

	w := doJSON(t, router, http.MethodGet, "/cart", nil)
	rows := cartData(t, decodeBody(t, w))["rows"].([]interface{})
	assert.Len(t, rows, 1)
}

func TestCart_CorruptPersistedDataYieldsEmptyCart(t *testing.T) {
	router, mr, _ := setupRouter(t)

	require.NoError(t, mr.Set("cart:session:test-session", "{broken"))

	w := doJSON(t, router, http.MethodGet, "/cart", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, decodeBody(t, w))
	assert.Equal(t, "Your cart is empty", data["placeholder"])
}

func TestGetCart_SetsSessionCookie(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a session_id cookie to be set")
}
