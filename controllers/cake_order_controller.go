package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/logger"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/maya-widjaja/mayas-bakery-api/services"
	"go.uber.org/zap"
)

// CreateCakeOrderRequest represents the request body for creating a cake order
type CreateCakeOrderRequest struct {
	CakeType         string   `json:"cake_type" binding:"required,oneof=custom wedding"`
	Name             string   `json:"name" binding:"required"`
	Phone            string   `json:"phone" binding:"required"`
	Email            string   `json:"email" binding:"omitempty,email"`
	EventDate        string   `json:"event_date" binding:"required"` // YYYY-MM-DD
	Size             string   `json:"size" binding:"required"`
	Flavor           string   `json:"flavor" binding:"required"`
	Supplements      []string `json:"supplements" binding:"omitempty"`
	Topping          string   `json:"topping" binding:"omitempty"`
	Packaging        string   `json:"packaging" binding:"omitempty"`
	DeliveryLocation string   `json:"delivery_location" binding:"omitempty"`
	Instructions     string   `json:"instructions" binding:"omitempty"`
}

// QuoteCakeOrderRequest represents the request body for a price quote
type QuoteCakeOrderRequest struct {
	Size             string   `json:"size" binding:"required"`
	Flavor           string   `json:"flavor" binding:"required"`
	Supplements      []string `json:"supplements" binding:"omitempty"`
	Topping          string   `json:"topping" binding:"omitempty"`
	Packaging        string   `json:"packaging" binding:"omitempty"`
	DeliveryLocation string   `json:"delivery_location" binding:"omitempty"`
}

// UpdateStatusRequest represents the request body shared by all admin
// status-update endpoints
type UpdateStatusRequest struct {
	Status             string  `json:"status" binding:"required"`
	CancellationReason *string `json:"cancellation_reason" binding:"omitempty"`
	AdminNotes         *string `json:"admin_notes" binding:"omitempty"`
}

// settingKeyForCakeType maps a cake type to the toggle gating its order form
func settingKeyForCakeType(cakeType string) string {
	if cakeType == "wedding" {
		return models.SettingWeddingOrdersOpen
	}
	return models.SettingCustomOrdersOpen
}

// QuoteCakeOrder handles POST /api/v1/cake-orders/quote - prices a selection
// against the static table without creating anything
func QuoteCakeOrder(c *gin.Context) {
	var req QuoteCakeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	quote, err := services.ComputeQuote(req.Size, req.Flavor, req.Supplements, req.Topping, req.Packaging, req.DeliveryLocation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}

// CreateCakeOrder handles POST /api/v1/cake-orders - creates a new cake order
func CreateCakeOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateCakeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Check the system toggle for this order type
	open, err := services.GetSystemSetting(settingKeyForCakeType(req.CakeType))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to read system settings",
			},
		})
		return
	}
	if !open {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_CLOSED",
				"message": "This order type is temporarily closed",
			},
		})
		return
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "event_date must be formatted as YYYY-MM-DD",
			},
		})
		return
	}

	// Lead time + denylist check
	available, err := services.IsDateAvailable(config.GetConfig(), req.CakeType, eventDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check date availability",
			},
		})
		return
	}
	if !available {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATE_UNAVAILABLE",
				"message": "The requested date is not available for this order type",
			},
		})
		return
	}

	// The server recomputes the total; the client-side figure is display only
	quote, err := services.ComputeQuote(req.Size, req.Flavor, req.Supplements, req.Topping, req.Packaging, req.DeliveryLocation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	order := models.CakeOrder{
		UserID:           user.ID,
		CakeType:         req.CakeType,
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		EventDate:        eventDate,
		Size:             req.Size,
		Flavor:           req.Flavor,
		Supplements:      strings.Join(req.Supplements, ","),
		Topping:          req.Topping,
		Packaging:        req.Packaging,
		DeliveryLocation: req.DeliveryLocation,
		Instructions:     req.Instructions,
		TotalPrice:       quote.Total,
		Status:           models.CakeOrderStatusPending,
	}

	db := config.GetDB()
	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	logger.L().Info("cake order created",
		zap.String("order_id", order.ID.String()),
		zap.String("cake_type", order.CakeType))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyCakeOrders handles GET /api/v1/cake-orders/mine - lists the
// current user's cake orders, newest first
func ListMyCakeOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var orders []models.CakeOrder
	if err := db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// AdminListCakeOrders handles GET /api/v1/admin/cake-orders - lists all
// cake orders across all users, newest first
func AdminListCakeOrders(c *gin.Context) {
	db := config.GetDB()
	var orders []models.CakeOrder
	if err := db.Preload("User").Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// AdminUpdateCakeOrderStatus handles PATCH /api/v1/admin/cake-orders/:id/status.
// Any status in the vocabulary may replace any other; there is no
// transition table. The cancellation reason is written only when the
// request carries the field.
func AdminUpdateCakeOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if !models.IsValidCakeOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown status for cake orders: " + req.Status,
			},
		})
		return
	}

	db := config.GetDB()
	var order models.CakeOrder
	if err := db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == string(models.CakeOrderStatusCancelled) && req.CancellationReason != nil {
		updates["cancellation_reason"] = *req.CancellationReason
	}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if err := db.Where("id = ?", order.ID).First(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
