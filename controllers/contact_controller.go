package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/logger"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/maya-widjaja/mayas-bakery-api/services"
	"go.uber.org/zap"
)

// ContactRequest represents the request body for the public contact form
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty"`
	Subject string `json:"subject" binding:"omitempty"`
	Message string `json:"message" binding:"required"`
}

// UpdateMessageStatusRequest represents the request body for marking a message
type UpdateMessageStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitContactMessage handles POST /api/v1/contact. No account needed;
// the message carries whatever contact details the sender typed in.
func SubmitContactMessage(c *gin.Context) {
	var req ContactRequest
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

	message := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactMessageStatusUnread,
	}

	db := config.GetDB()
	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save message",
			},
		})
		return
	}

	// Notification is best effort, the message is already stored
	if err := services.GetMailer().SendContactNotification(&message); err != nil {
		logger.L().Warn("contact notification failed",
			zap.String("message_id", message.ID.String()),
			zap.Error(err))
	}

	logger.L().Info("contact message received",
		zap.String("message_id", message.ID.String()))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// AdminListMessages handles GET /api/v1/admin/messages, optionally
// filtered by ?status=
func AdminListMessages(c *gin.Context) {
	db := config.GetDB()
	query := db.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		if !models.IsValidContactMessageStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown status for messages: " + status,
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	var messages []models.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// AdminUpdateMessageStatus handles PATCH /api/v1/admin/messages/:id/status
func AdminUpdateMessageStatus(c *gin.Context) {
	var req UpdateMessageStatusRequest
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

	if !models.IsValidContactMessageStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown status for messages: " + req.Status,
			},
		})
		return
	}

	db := config.GetDB()
	var message models.ContactMessage
	if err := db.Where("id = ?", c.Param("id")).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MESSAGE_NOT_FOUND",
				"message": "Message not found",
			},
		})
		return
	}

	if err := db.Model(&message).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update message",
			},
		})
		return
	}

	if err := db.Where("id = ?", message.ID).First(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated message",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    message,
	})
}

// AdminDeleteMessage handles DELETE /api/v1/admin/messages/:id - hard delete
func AdminDeleteMessage(c *gin.Context) {
	db := config.GetDB()
	var message models.ContactMessage
	if err := db.Where("id = ?", c.Param("id")).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MESSAGE_NOT_FOUND",
				"message": "Message not found",
			},
		})
		return
	}

	if err := db.Unscoped().Delete(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete message",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Message deleted",
		},
	})
}
