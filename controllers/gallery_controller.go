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

// UpdateGalleryItemRequest represents the request body for updating a gallery item
type UpdateGalleryItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"omitempty"`
	Category    string `json:"category" binding:"omitempty"`
	Status      string `json:"status" binding:"omitempty"`
}

func attachGalleryImageURL(item *models.GalleryItem) {
	if url, err := services.GetImageService().GetImageURL(item.ImageS3Key); err == nil {
		item.ImageURL = url
	}
}

// ListGallery handles GET /api/v1/gallery - active items with presigned
// image URLs, optionally filtered by ?category=
func ListGallery(c *gin.Context) {
	db := config.GetDB()
	query := db.Where("status = ?", models.ContentStatusActive)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.GalleryItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load gallery",
			},
		})
		return
	}

	for i := range items {
		attachGalleryImageURL(&items[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// AdminCreateGalleryItem handles POST /api/v1/admin/gallery - multipart
// form with an image file plus title/description/category/status fields
func AdminCreateGalleryItem(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "title is required",
			},
		})
		return
	}

	status := models.ContentStatusDraft
	if s := c.PostForm("status"); s != "" {
		if !models.IsValidContentStatus(s) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown status for gallery items: " + s,
				},
			})
			return
		}
		status = models.ContentStatus(s)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "image file is required",
			},
		})
		return
	}

	s3Key, err := services.GetImageService().UploadImage(fileHeader, "gallery")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	item := models.GalleryItem{
		Title:       title,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		ImageS3Key:  s3Key,
		Status:      status,
	}

	db := config.GetDB()
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create gallery item",
			},
		})
		return
	}

	logger.L().Info("gallery item created",
		zap.String("item_id", item.ID.String()),
		zap.String("s3_key", s3Key))

	attachGalleryImageURL(&item)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// AdminUpdateGalleryItem handles PUT /api/v1/admin/gallery/:id - metadata
// only, the image itself is immutable once uploaded
func AdminUpdateGalleryItem(c *gin.Context) {
	db := config.GetDB()
	var item models.GalleryItem
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": "Gallery item not found",
			},
		})
		return
	}

	var req UpdateGalleryItemRequest
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

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
	}
	if req.Status != "" {
		if !models.IsValidContentStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown status for gallery items: " + req.Status,
				},
			})
			return
		}
		updates["status"] = req.Status
	}

	if err := db.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update gallery item",
			},
		})
		return
	}

	if err := db.Where("id = ?", item.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated gallery item",
			},
		})
		return
	}

	attachGalleryImageURL(&item)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// AdminDeleteGalleryItem handles DELETE /api/v1/admin/gallery/:id. The
// row is removed for good and the stored image with it; a failed image
// delete is logged but does not block the removal.
func AdminDeleteGalleryItem(c *gin.Context) {
	db := config.GetDB()
	var item models.GalleryItem
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": "Gallery item not found",
			},
		})
		return
	}

	if err := db.Unscoped().Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete gallery item",
			},
		})
		return
	}

	if err := services.GetImageService().DeleteImage(item.ImageS3Key); err != nil {
		logger.L().Warn("orphaned gallery image",
			zap.String("s3_key", item.ImageS3Key),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Gallery item deleted",
		},
	})
}
