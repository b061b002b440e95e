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

// UpdateSettingRequest represents the request body for toggling a system setting
type UpdateSettingRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// UnavailableDateRequest represents the request body for blocking a date
type UnavailableDateRequest struct {
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason string `json:"reason" binding:"omitempty"`
}

// GetSettings handles GET /api/v1/settings - the public toggle map the
// frontend uses to show or hide order forms
func GetSettings(c *gin.Context) {
	settings, err := services.GetAllSystemSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load settings",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}

// AdminUpdateSetting handles PUT /api/v1/admin/settings/:key
func AdminUpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if !models.IsValidSystemSettingKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown setting key: " + key,
			},
		})
		return
	}

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "value is required",
				"details": err.Error(),
			},
		})
		return
	}

	if _, err := services.UpdateSystemSetting(key, *req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update setting",
			},
		})
		return
	}

	logger.L().Info("system setting updated",
		zap.String("key", key),
		zap.Bool("value", *req.Value))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"key":   key,
			"value": *req.Value,
		},
	})
}

// CheckAvailability handles GET /api/v1/availability?date=YYYY-MM-DD&type=custom|wedding.
// The frontend calls this as the customer picks an event date.
func CheckAvailability(c *gin.Context) {
	cakeType := c.DefaultQuery("type", "custom")
	if cakeType != "custom" && cakeType != "wedding" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "type must be custom or wedding",
			},
		})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	available, err := services.IsDateAvailable(config.GetConfig(), cakeType, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check availability",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"date":      date.Format("2006-01-02"),
			"type":      cakeType,
			"available": available,
		},
	})
}

// AdminListUnavailableDates handles GET /api/v1/admin/unavailable-dates
func AdminListUnavailableDates(c *gin.Context) {
	db := config.GetDB()
	var dates []models.UnavailableDate
	if err := db.Order("date ASC").Find(&dates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load unavailable dates",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dates,
	})
}

// AdminAddUnavailableDate handles POST /api/v1/admin/unavailable-dates
func AdminAddUnavailableDate(c *gin.Context) {
	var req UnavailableDateRequest
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	entry := models.UnavailableDate{
		Date:   date,
		Reason: req.Reason,
	}

	db := config.GetDB()
	if err := db.Create(&entry).Error; err != nil {
		// Check for duplicate date (works with both PostgreSQL and SQLite)
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") ||
			strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATE_EXISTS",
					"message": "That date is already blocked",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to block date",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    entry,
	})
}

// AdminDeleteUnavailableDate handles DELETE /api/v1/admin/unavailable-dates/:id
func AdminDeleteUnavailableDate(c *gin.Context) {
	db := config.GetDB()
	var entry models.UnavailableDate
	if err := db.Where("id = ?", c.Param("id")).First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATE_NOT_FOUND",
				"message": "Unavailable date not found",
			},
		})
		return
	}

	if err := db.Unscoped().Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to remove unavailable date",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Unavailable date removed",
		},
	})
}
