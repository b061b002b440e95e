package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/maya-widjaja/mayas-bakery-api/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func closeSetting(t *testing.T, db *gorm.DB, key string) {
	t.Helper()
	if _, err := services.UpdateSystemSetting(key, false); err != nil {
		t.Fatalf("Failed to close setting %s: %v", key, err)
	}
}

// eventDateInDays returns a YYYY-MM-DD string n days from today
func eventDateInDays(n int) string {
	return time.Now().AddDate(0, 0, n).Format("2006-01-02")
}

func TestQuoteCakeOrder(t *testing.T) {
	setupTestDB(t)

	router := setupTestRouter()
	router.POST("/cake-orders/quote", QuoteCakeOrder)

	tests := []struct {
		name           string
		payload        QuoteCakeOrderRequest
		expectedStatus int
		expectedTotal  float64
	}{
		{
			name: "Size and flavor only",
			payload: QuoteCakeOrderRequest{
				Size:   "16cm",
				Flavor: "vanilla",
			},
			expectedStatus: http.StatusOK,
			expectedTotal:  12000,
		},
		{
			name: "Full selection",
			payload: QuoteCakeOrderRequest{
				Size:             "20cm",
				Flavor:           "chocolate",
				Supplements:      []string{"fresh_fruit", "macarons"},
				Topping:          "fondant",
				Packaging:        "gift_box",
				DeliveryLocation: "city_center",
			},
			expectedStatus: http.StatusOK,
			expectedTotal:  18000 + 1500 + 2000 + 3000 + 2500 + 1200 + 1000,
		},
		{
			name: "Free options price at zero",
			payload: QuoteCakeOrderRequest{
				Size:             "16cm",
				Flavor:           "vanilla",
				Topping:          "none",
				Packaging:        "standard_box",
				DeliveryLocation: "pickup",
			},
			expectedStatus: http.StatusOK,
			expectedTotal:  12000,
		},
		{
			name: "Unknown size rejected",
			payload: QuoteCakeOrderRequest{
				Size:   "35cm",
				Flavor: "vanilla",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown supplement rejected",
			payload: QuoteCakeOrderRequest{
				Size:        "16cm",
				Flavor:      "vanilla",
				Supplements: []string{"gold_leaf"},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			req := httptest.NewRequest(http.MethodPost, "/cake-orders/quote", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "Response body: %s", w.Body.String())

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectedStatus == http.StatusOK {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, tt.expectedTotal, data["total"])
			} else {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
			}
		})
	}
}

func TestCreateCakeOrder_Success(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "cakes@example.com")

	router := setupTestRouter()
	router.POST("/cake-orders", mockAuthMiddleware(user.ID), CreateCakeOrder)

	payload := CreateCakeOrderRequest{
		CakeType:         "custom",
		Name:             "Maya Customer",
		Phone:            "08123456789",
		EventDate:        eventDateInDays(5),
		Size:             "20cm",
		Flavor:           "chocolate",
		Supplements:      []string{"fresh_fruit", "macarons"},
		Topping:          "fondant",
		Packaging:        "gift_box",
		DeliveryLocation: "city_center",
		Instructions:     "Happy birthday on top please",
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/cake-orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, "Response body: %s", w.Body.String())

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	// The total is always recomputed server side
	assert.Equal(t, float64(18000+1500+2000+3000+2500+1200+1000), data["total_price"])
	// Multi-select supplements are stored comma separated
	assert.Equal(t, "fresh_fruit,macarons", data["supplements"])
}

func TestCreateCakeOrder_ServiceClosed(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "cakes@example.com")
	closeSetting(t, db, models.SettingCustomOrdersOpen)

	router := setupTestRouter()
	router.POST("/cake-orders", mockAuthMiddleware(user.ID), CreateCakeOrder)

	payload := CreateCakeOrderRequest{
		CakeType:  "custom",
		Name:      "Maya Customer",
		Phone:     "08123456789",
		EventDate: eventDateInDays(5),
		Size:      "16cm",
		Flavor:    "vanilla",
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/cake-orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "SERVICE_CLOSED", errorData["code"])
}

func TestCreateCakeOrder_WeddingToggleIndependent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "cakes@example.com")

	// Closing custom orders must not block wedding orders
	closeSetting(t, db, models.SettingCustomOrdersOpen)

	router := setupTestRouter()
	router.POST("/cake-orders", mockAuthMiddleware(user.ID), CreateCakeOrder)

	payload := CreateCakeOrderRequest{
		CakeType:  "wedding",
		Name:      "Maya Customer",
		Phone:     "08123456789",
		EventDate: eventDateInDays(20),
		Size:      "three_tier",
		Flavor:    "vanilla",
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/cake-orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, "Response body: %s", w.Body.String())
}

func TestCreateCakeOrder_DateTooSoon(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "cakes@example.com")

	router := setupTestRouter()
	router.POST("/cake-orders", mockAuthMiddleware(user.ID), CreateCakeOrder)

	tests := []struct {
		name      string
		cakeType  string
		eventDate string
		wantCode  int
	}{
		// Custom cakes need 2 days; the boundary day itself is fine
		{"custom order for tomorrow rejected", "custom", eventDateInDays(1), http.StatusBadRequest},
		{"custom order on the boundary accepted", "custom", eventDateInDays(2), http.StatusCreated},
		// Wedding cakes need 14 days
		{"wedding order at 13 days rejected", "wedding", eventDateInDays(13), http.StatusBadRequest},
		{"wedding order on the boundary accepted", "wedding", eventDateInDays(14), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := CreateCakeOrderRequest{
				CakeType:  tt.cakeType,
				Name:      "Maya Customer",
				Phone:     "08123456789",
				EventDate: tt.eventDate,
				Size:      "16cm",
				Flavor:    "vanilla",
			}

			body, _ := json.Marshal(payload)
			req := httptest.NewRequest(http.MethodPost, "/cake-orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code, "Response body: %s", w.Body.String())

			if tt.wantCode == http.StatusBadRequest {
				var response map[string]interface{}
				json.Unmarshal(w.Body.Bytes(), &response)
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, "DATE_UNAVAILABLE", errorData["code"])
			}
		})
	}
}

func TestCreateCakeOrder_BlockedDate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "cakes@example.com")

	blocked := time.Now().AddDate(0, 0, 10)
	db.Create(&models.UnavailableDate{
		Date:   time.Date(blocked.Year(), blocked.Month(), blocked.Day(), 0, 0, 0, 0, time.UTC),
		Reason: "Family holiday",
	})

	router := setupTestRouter()
	router.POST("/cake-orders", mockAuthMiddleware(user.ID), CreateCakeOrder)

	payload := CreateCakeOrderRequest{
		CakeType:  "custom",
		Name:      "Maya Customer",
		Phone:     "08123456789",
		EventDate: blocked.Format("2006-01-02"),
		Size:      "16cm",
		Flavor:    "vanilla",
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/cake-orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "DATE_UNAVAILABLE", errorData["code"])
}

func TestListMyCakeOrders_OnlyOwnOrders(t *testing.T) {
	db := setupTestDB(t)
	user1 := createTestUser(t, db, "user1@example.com")
	user2 := createTestUser(t, db, "user2@example.com")

	db.Create(&models.CakeOrder{
		UserID: user1.ID, CakeType: "custom", Name: "User One", Phone: "081",
		EventDate: time.Now().AddDate(0, 0, 5), Size: "16cm", Flavor: "vanilla",
		TotalPrice: 12000, Status: models.CakeOrderStatusPending,
	})
	db.Create(&models.CakeOrder{
		UserID: user2.ID, CakeType: "custom", Name: "User Two", Phone: "082",
		EventDate: time.Now().AddDate(0, 0, 6), Size: "20cm", Flavor: "matcha",
		TotalPrice: 21000, Status: models.CakeOrderStatusPending,
	})

	router := setupTestRouter()
	router.GET("/cake-orders/mine", mockAuthMiddleware(user1.ID), ListMyCakeOrders)

	req := httptest.NewRequest(http.MethodGet, "/cake-orders/mine", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	order := data[0].(map[string]interface{})
	assert.Equal(t, "User One", order["name"])
}

func TestAdminUpdateCakeOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "cakes@example.com")

	router := setupTestRouter()
	router.PATCH("/admin/cake-orders/:id/status", AdminUpdateCakeOrderStatus)

	newOrder := func(status models.CakeOrderStatus) *models.CakeOrder {
		order := &models.CakeOrder{
			UserID: user.ID, CakeType: "custom", Name: "Maya Customer", Phone: "081",
			EventDate: time.Now().AddDate(0, 0, 5), Size: "16cm", Flavor: "vanilla",
			TotalPrice: 12000, Status: status,
		}
		db.Create(order)
		return order
	}

	reason := "Customer asked to cancel"
	notes := "Refunded via transfer"

	t.Run("Cancel with reason", func(t *testing.T) {
		order := newOrder(models.CakeOrderStatusConfirmed)

		payload := UpdateStatusRequest{
			Status:             "cancelled",
			CancellationReason: &reason,
			AdminNotes:         &notes,
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPatch, "/admin/cake-orders/"+order.ID.String()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "cancelled", data["status"])
		assert.Equal(t, reason, data["cancellation_reason"])
		assert.Equal(t, notes, data["admin_notes"])
	})

	t.Run("Reason ignored unless cancelling", func(t *testing.T) {
		order := newOrder(models.CakeOrderStatusPending)

		payload := UpdateStatusRequest{
			Status:             "confirmed",
			CancellationReason: &reason,
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPatch, "/admin/cake-orders/"+order.ID.String()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "confirmed", data["status"])
		assert.Nil(t, data["cancellation_reason"])
	})

	t.Run("Any status may replace any other", func(t *testing.T) {
		order := newOrder(models.CakeOrderStatusCompleted)

		payload := UpdateStatusRequest{Status: "pending"}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPatch, "/admin/cake-orders/"+order.ID.String()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "pending", data["status"])
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		order := newOrder(models.CakeOrderStatusPending)

		payload := UpdateStatusRequest{Status: "shipped"}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPatch, "/admin/cake-orders/"+order.ID.String()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
	})

	t.Run("Unknown order 404", func(t *testing.T) {
		payload := UpdateStatusRequest{Status: "confirmed"}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPatch, "/admin/cake-orders/"+uuid.NewString()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "ORDER_NOT_FOUND", errorData["code"])
	})
}
