package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/logger"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/maya-widjaja/mayas-bakery-api/services"
	"go.uber.org/zap"
)

// CourseRequest represents the request body for creating or updating a course
type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"omitempty"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	ContentURL  string `json:"content_url" binding:"omitempty,url"`
	Status      string `json:"status" binding:"omitempty"`
}

// CreateCourseOrderRequest represents the request body for ordering a course
type CreateCourseOrderRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"omitempty"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// attachThumbnailURL fills the computed presigned URL on a course
func attachThumbnailURL(course *models.OnlineCourse) {
	if course.ThumbnailS3Key == nil {
		return
	}
	if url, err := services.GetImageService().GetImageURL(*course.ThumbnailS3Key); err == nil && url != "" {
		course.ThumbnailURL = &url
	}
}

// ListCourses handles GET /api/v1/courses - lists active courses
func ListCourses(c *gin.Context) {
	db := config.GetDB()
	var courses []models.OnlineCourse
	if err := db.Where("status = ?", models.ContentStatusActive).
		Order("created_at DESC").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load courses",
			},
		})
		return
	}

	for i := range courses {
		attachThumbnailURL(&courses[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    courses,
	})
}

// GetCourse handles GET /api/v1/courses/:id - course detail
func GetCourse(c *gin.Context) {
	db := config.GetDB()
	var course models.OnlineCourse
	if err := db.Where("id = ? AND status = ?", c.Param("id"), models.ContentStatusActive).
		First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COURSE_NOT_FOUND",
				"message": "Course not found",
			},
		})
		return
	}

	attachThumbnailURL(&course)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    course,
	})
}

// AdminCreateCourse handles POST /api/v1/admin/courses - multipart form
// with the course fields plus an optional thumbnail image
func AdminCreateCourse(c *gin.Context) {
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil || price <= 0 || c.PostForm("title") == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "title and a positive price are required",
			},
		})
		return
	}

	course := models.OnlineCourse{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       price,
		ContentURL:  c.PostForm("content_url"),
		Status:      models.ContentStatusDraft,
	}
	if status := c.PostForm("status"); status != "" {
		if !models.IsValidContentStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown status for courses: " + status,
				},
			})
			return
		}
		course.Status = models.ContentStatus(status)
	}

	// Thumbnail is optional
	if fileHeader, err := c.FormFile("thumbnail"); err == nil {
		s3Key, err := services.GetImageService().UploadImage(fileHeader, "courses")
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
		course.ThumbnailS3Key = &s3Key
	}

	db := config.GetDB()
	if err := db.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create course",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    course,
	})
}

// AdminUpdateCourse handles PUT /api/v1/admin/courses/:id
func AdminUpdateCourse(c *gin.Context) {
	db := config.GetDB()
	var course models.OnlineCourse
	if err := db.Where("id = ?", c.Param("id")).First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COURSE_NOT_FOUND",
				"message": "Course not found",
			},
		})
		return
	}

	var req CourseRequest
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
		"price":       req.Price,
	}
	if req.ContentURL != "" {
		updates["content_url"] = req.ContentURL
	}
	if req.Status != "" {
		if !models.IsValidContentStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown status for courses: " + req.Status,
				},
			})
			return
		}
		updates["status"] = req.Status
	}

	if err := db.Model(&course).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update course",
			},
		})
		return
	}

	if err := db.Where("id = ?", course.ID).First(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated course",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    course,
	})
}

// AdminDeleteCourse handles DELETE /api/v1/admin/courses/:id - hard delete
func AdminDeleteCourse(c *gin.Context) {
	db := config.GetDB()
	var course models.OnlineCourse
	if err := db.Where("id = ?", c.Param("id")).First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COURSE_NOT_FOUND",
				"message": "Course not found",
			},
		})
		return
	}

	if err := db.Delete(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete course",
			},
		})
		return
	}

	// The thumbnail is not worth failing the request over
	if course.ThumbnailS3Key != nil && *course.ThumbnailS3Key != "" {
		if err := services.GetImageService().DeleteImage(*course.ThumbnailS3Key); err != nil {
			logger.L().Warn("orphaned course thumbnail",
				zap.String("key", *course.ThumbnailS3Key), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// CreateCourseOrder handles POST /api/v1/course-orders. The amount is
// the course price at order time.
func CreateCourseOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateCourseOrderRequest
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

	db := config.GetDB()
	var course models.OnlineCourse
	if err := db.Where("id = ? AND status = ?", req.CourseID, models.ContentStatusActive).
		First(&course).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COURSE_NOT_FOUND",
				"message": "Course not found",
			},
		})
		return
	}

	order := models.CourseOrder{
		UserID:   user.ID,
		CourseID: course.ID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Amount:   course.Price,
		Status:   models.CourseOrderStatusPending,
	}

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

	logger.L().Info("course order created",
		zap.String("order_id", order.ID.String()),
		zap.String("course_id", course.ID.String()))

	if err := db.Preload("Course").Where("id = ?", order.ID).First(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyCourseOrders handles GET /api/v1/course-orders/mine
func ListMyCourseOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var orders []models.CourseOrder
	if err := db.Preload("Course").Preload("Receipts").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
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

// UploadPaymentReceipt handles POST /api/v1/course-orders/:id/receipts.
// The receipt image goes to the asset host, a receipt row is recorded,
// and the order advances to paid as a side effect. The three steps are
// not rolled back together; spotting a half-applied upload is an admin
// task.
func UploadPaymentReceipt(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.CourseOrder
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

	// Only the owner may attach receipts
	if order.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to upload receipts for this order",
			},
		})
		return
	}

	amount, err := strconv.ParseInt(c.PostForm("amount"), 10, 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "amount must be a positive integer",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "receipt image is required",
			},
		})
		return
	}

	s3Key, err := services.GetImageService().UploadImage(fileHeader, "receipts")
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

	receipt := models.PaymentReceipt{
		CourseOrderID: order.ID,
		ImageS3Key:    s3Key,
		Amount:        amount,
		Notes:         c.PostForm("notes"),
	}

	if err := db.Create(&receipt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to record receipt",
			},
		})
		return
	}

	// Side effect: the order is now awaiting verification
	if err := db.Model(&order).Update("status", models.CourseOrderStatusPaid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	logger.L().Info("payment receipt uploaded",
		zap.String("order_id", order.ID.String()),
		zap.String("receipt_id", receipt.ID.String()),
		zap.Int64("amount", amount))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    receipt,
	})
}

// AdminListCourseOrders handles GET /api/v1/admin/course-orders
func AdminListCourseOrders(c *gin.Context) {
	db := config.GetDB()
	var orders []models.CourseOrder
	if err := db.Preload("Course").Preload("Receipts").Preload("User").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	// Attach presigned receipt images for the admin review screen
	for i := range orders {
		for j := range orders[i].Receipts {
			if url, err := services.GetImageService().GetImageURL(orders[i].Receipts[j].ImageS3Key); err == nil {
				orders[i].Receipts[j].ImageURL = url
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// AdminUpdateCourseOrderStatus handles PATCH /api/v1/admin/course-orders/:id/status.
// Like the other families there is no transition guard: the generic
// update can move a verified order back to pending.
func AdminUpdateCourseOrderStatus(c *gin.Context) {
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

	if !models.IsValidCourseOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown status for course orders: " + req.Status,
			},
		})
		return
	}

	db := config.GetDB()
	var order models.CourseOrder
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

// AdminVerifyPayment handles POST /api/v1/admin/course-orders/:id/verify.
// Marks the most recent unverified receipt verified, advances the order
// to verified and grants course access. FirstOrCreate keeps the grant
// unique per (user, course) even when several receipts get verified.
func AdminVerifyPayment(c *gin.Context) {
	db := config.GetDB()
	var order models.CourseOrder
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

	var receipt models.PaymentReceipt
	if err := db.Where("course_order_id = ? AND verified = ?", order.ID, false).
		Order("created_at DESC").First(&receipt).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RECEIPT_NOT_FOUND",
				"message": "No unverified receipt found for this order",
			},
		})
		return
	}

	if err := db.Model(&receipt).Update("verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to verify receipt",
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", models.CourseOrderStatusVerified).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	access := models.CourseAccess{
		UserID:    order.UserID,
		CourseID:  order.CourseID,
		ReceiptID: receipt.ID,
	}
	if err := db.Where("user_id = ? AND course_id = ?", order.UserID, order.CourseID).
		FirstOrCreate(&access).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to grant course access",
			},
		})
		return
	}

	logger.L().Info("payment verified",
		zap.String("order_id", order.ID.String()),
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("access_id", access.ID.String()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":   order,
			"receipt": receipt,
			"access":  access,
		},
	})
}

// ListMyCourseAccess handles GET /api/v1/course-access/mine - returns
// the content links the user has been granted
func ListMyCourseAccess(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var accesses []models.CourseAccess
	if err := db.Preload("Course").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&accesses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load course access",
			},
		})
		return
	}

	// The content link lives behind the grant, so it is attached here
	// rather than exposed on the course model
	type accessItem struct {
		ID         uuid.UUID `json:"id"`
		CourseID   uuid.UUID `json:"course_id"`
		Title      string    `json:"title"`
		ContentURL string    `json:"content_url"`
		GrantedAt  string    `json:"granted_at"`
	}

	items := make([]accessItem, 0, len(accesses))
	for _, a := range accesses {
		items = append(items, accessItem{
			ID:         a.ID,
			CourseID:   a.CourseID,
			Title:      a.Course.Title,
			ContentURL: a.Course.ContentURL,
			GrantedAt:  a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}
