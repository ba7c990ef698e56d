// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/pkg/notify"
	"github.com/your-org/storefront-api/internal/view"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	store          cart.Store
	productService *product.Service
	config         *config.Config
	logger         *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		store:          cart.NewRedisStore(redisClient, cfg.Cart.KeyPrefix, cfg.Cart.TTL),
		productService: product.NewService(db),
		config:         cfg,
		logger:         logger,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest represents a quantity update. The quantity may be
// zero or negative; the cart clamps it to 1.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	mgr, recorder, ok := h.manager(c)
	if !ok {
		return
	}

	h.respond(c, mgr, recorder, "Cart retrieved successfully")
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.productService.Get(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	mgr, recorder, ok := h.manager(c)
	if !ok {
		return
	}

	if err := mgr.AddToCart(c.Request.Context(), prod.CartRef()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}

	h.respond(c, mgr, recorder, "Item added to cart successfully")
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	mgr, recorder, ok := h.manager(c)
	if !ok {
		return
	}

	if err := mgr.UpdateQuantity(c.Request.Context(), productID, *req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart item",
		})
		return
	}

	h.respond(c, mgr, recorder, "Cart item updated successfully")
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	mgr, recorder, ok := h.manager(c)
	if !ok {
		return
	}

	if err := mgr.RemoveFromCart(c.Request.Context(), productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove item from cart",
		})
		return
	}

	h.respond(c, mgr, recorder, "Item removed from cart successfully")
}

// DispatchEvent handles POST /cart/events - structured stepper events from
// the cart view (increment, decrement, set, remove).
func (h *CartHandler) DispatchEvent(c *gin.Context) {
	var ev cart.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	mgr, recorder, ok := h.manager(c)
	if !ok {
		return
	}

	if err := mgr.Dispatch(c.Request.Context(), ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.respond(c, mgr, recorder, "Cart event applied successfully")
}

// GetBadge handles GET /cart/badge
func (h *CartHandler) GetBadge(c *gin.Context) {
	mgr, _, ok := h.manager(c)
	if !ok {
		return
	}

	rendered := view.Render(mgr.Snapshot(), h.config.Cart.CurrencySymbol)
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart badge retrieved successfully",
		"data":    rendered.Badge,
	})
}

// manager builds a hydrated per-session cart manager with a notification
// recorder for this request.
func (h *CartHandler) manager(c *gin.Context) (*cart.Manager, *notify.Recorder, bool) {
	sessionID := h.getOrCreateSessionID(c)
	recorder := notify.NewRecorder()

	mgr, err := cart.NewManager(c.Request.Context(), h.store, recorder, h.logger, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return nil, nil, false
	}

	return mgr, recorder, true
}

func (h *CartHandler) respond(c *gin.Context, mgr *cart.Manager, recorder *notify.Recorder, message string) {
	c.JSON(http.StatusOK, gin.H{
		"message":       message,
		"data":          view.Render(mgr.Snapshot(), h.config.Cart.CurrencySymbol),
		"notifications": recorder.Notifications,
	})
}

func (h *CartHandler) parseProductID(c *gin.Context) (uint, bool) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return uint(productID), true
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Set session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
