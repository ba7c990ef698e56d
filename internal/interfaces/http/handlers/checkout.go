// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/checkout"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-api/internal/pkg/notify"
	"github.com/your-org/storefront-api/internal/view"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	store           cart.Store
	checkoutService *checkout.Service
	config          *config.Config
	logger          *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		store:           cart.NewRedisStore(redisClient, cfg.Cart.KeyPrefix, cfg.Cart.TTL),
		checkoutService: checkout.NewService(db, logger, cfg.Cart.CurrencySymbol),
		config:          cfg,
		logger:          logger,
	}
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var form checkout.ShippingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	recorder := notify.NewRecorder()
	mgr, err := cart.NewManager(c.Request.Context(), h.store, recorder, h.logger, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return
	}

	// Attribute the order to the account when a valid token was presented
	var userID *uint
	if id, ok := middleware.GetUserIDFromContext(c); ok {
		userID = &id
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), mgr, userID, &form)
	if err != nil {
		// Cart state is unchanged on failure; surface the message
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         err.Error(),
			"notifications": recorder.Notifications,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Order placed successfully",
		"data":          result,
		"cart":          view.Render(mgr.Snapshot(), h.config.Cart.CurrencySymbol),
		"notifications": recorder.Notifications,
	})
}
