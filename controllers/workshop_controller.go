package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/logger"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/maya-widjaja/mayas-bakery-api/services"
	"go.uber.org/zap"
)

// WorkshopRequest represents the request body for creating or updating
// a workshop schedule
type WorkshopRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"omitempty"`
	EventDate       string `json:"event_date" binding:"required"` // YYYY-MM-DD
	Location        string `json:"location" binding:"omitempty"`
	Price           int64  `json:"price" binding:"omitempty,gte=0"`
	MaxParticipants int    `json:"max_participants" binding:"required,gt=0"`
	Status          string `json:"status" binding:"omitempty"`
}

// CreateReservationRequest represents the request body for reserving
// workshop spots
type CreateReservationRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Participants int    `json:"participants" binding:"required,gt=0"`
	Notes        string `json:"notes" binding:"omitempty"`
}

// ListWorkshops handles GET /api/v1/workshops - lists active workshop
// schedules for the public page
func ListWorkshops(c *gin.Context) {
	db := config.GetDB()
	var workshops []models.WorkshopSchedule
	if err := db.Where("status = ?", models.ContentStatusActive).
		Order("event_date ASC").Find(&workshops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load workshops",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workshops,
	})
}

// AdminCreateWorkshop handles POST /api/v1/admin/workshops
func AdminCreateWorkshop(c *gin.Context) {
	var req WorkshopRequest
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

	workshop := models.WorkshopSchedule{
		Title:           req.Title,
		Description:     req.Description,
		EventDate:       eventDate,
		Location:        req.Location,
		Price:           req.Price,
		MaxParticipants: req.MaxParticipants,
		Status:          models.ContentStatusDraft,
	}
	if req.Status != "" {
		if !models.IsValidContentStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown status for workshops: " + req.Status,
				},
			})
			return
		}
		workshop.Status = models.ContentStatus(req.Status)
	}

	db := config.GetDB()
	if err := db.Create(&workshop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create workshop",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    workshop,
	})
}

// AdminUpdateWorkshop handles PUT /api/v1/admin/workshops/:id
func AdminUpdateWorkshop(c *gin.Context) {
	db := config.GetDB()
	var workshop models.WorkshopSchedule
	if err := db.Where("id = ?", c.Param("id")).First(&workshop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WORKSHOP_NOT_FOUND",
				"message": "Workshop not found",
			},
		})
		return
	}

	var req WorkshopRequest
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

	updates := map[string]interface{}{
		"title":            req.Title,
		"description":      req.Description,
		"event_date":       eventDate,
		"location":         req.Location,
		"price":            req.Price,
		"max_participants": req.MaxParticipants,
	}
	if req.Status != "" {
		if !models.IsValidContentStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown status for workshops: " + req.Status,
				},
			})
			return
		}
		updates["status"] = req.Status
	}

	if err := db.Model(&workshop).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update workshop",
			},
		})
		return
	}

	if err := db.Where("id = ?", workshop.ID).First(&workshop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated workshop",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workshop,
	})
}

// AdminDeleteWorkshop handles DELETE /api/v1/admin/workshops/:id - hard delete
func AdminDeleteWorkshop(c *gin.Context) {
	db := config.GetDB()
	var workshop models.WorkshopSchedule
	if err := db.Where("id = ?", c.Param("id")).First(&workshop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WORKSHOP_NOT_FOUND",
				"message": "Workshop not found",
			},
		})
		return
	}

	if err := db.Delete(&workshop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete workshop",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// CreateWorkshopReservation handles POST /api/v1/workshops/:id/reservations.
// The capacity check is a plain read-then-write: two concurrent requests
// for the last spots can both pass it.
func CreateWorkshopReservation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	open, err := services.GetSystemSetting(models.SettingWorkshopReservationsOpen)
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
				"message": "Workshop reservations are temporarily closed",
			},
		})
		return
	}

	db := config.GetDB()
	var workshop models.WorkshopSchedule
	if err := db.Where("id = ? AND status = ?", c.Param("id"), models.ContentStatusActive).
		First(&workshop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WORKSHOP_NOT_FOUND",
				"message": "Workshop not found",
			},
		})
		return
	}

	var req CreateReservationRequest
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

	if req.Participants > workshop.RemainingSpots() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CAPACITY_EXCEEDED",
				"message": "Not enough remaining spots for this workshop",
			},
		})
		return
	}

	reservation := models.WorkshopReservation{
		UserID:             user.ID,
		WorkshopScheduleID: workshop.ID,
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		Participants:       req.Participants,
		Notes:              req.Notes,
		Status:             models.ReservationStatusPending,
	}

	if err := db.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create reservation",
			},
		})
		return
	}

	logger.L().Info("workshop reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("workshop_id", workshop.ID.String()))

	// Return with the schedule loaded
	if err := db.Preload("WorkshopSchedule").Where("id = ?", reservation.ID).
		First(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservation details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// ListMyWorkshopReservations handles GET /api/v1/workshop-reservations/mine
func ListMyWorkshopReservations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var reservations []models.WorkshopReservation
	if err := db.Preload("WorkshopSchedule").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// AdminListWorkshopReservations handles GET /api/v1/admin/workshop-reservations
func AdminListWorkshopReservations(c *gin.Context) {
	db := config.GetDB()
	var reservations []models.WorkshopReservation
	if err := db.Preload("WorkshopSchedule").Preload("User").
		Order("created_at DESC").Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reservations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// AdminUpdateReservationStatus handles PATCH /api/v1/admin/workshop-reservations/:id/status.
// Confirming a reservation does not touch the schedule's participant
// counter; admins keep that figure by hand.
func AdminUpdateReservationStatus(c *gin.Context) {
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

	if !models.IsValidReservationStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown status for reservations: " + req.Status,
			},
		})
		return
	}

	db := config.GetDB()
	var reservation models.WorkshopReservation
	if err := db.Where("id = ?", c.Param("id")).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESERVATION_NOT_FOUND",
				"message": "Reservation not found",
			},
		})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == string(models.ReservationStatusCancelled) && req.CancellationReason != nil {
		updates["cancellation_reason"] = *req.CancellationReason
	}

	if err := db.Model(&reservation).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update reservation",
			},
		})
		return
	}

	if err := db.Preload("WorkshopSchedule").Where("id = ?", reservation.ID).
		First(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated reservation",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservation,
	})
}
