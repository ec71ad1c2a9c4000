package productcontroller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/models"
)

var dbSeq int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:products_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Category{}); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	return db
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetProductByID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	db.Create(&models.Product{Name: "Cast Iron Pan", Price: 45.50, InStock: true})

	r := gin.New()
	r.GET("/api/product/:id", GetProductByID(db))

	w := get(r, "/api/product/1")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var product models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if product.Name != "Cast Iron Pan" || product.Price != 45.50 {
		t.Errorf("Unexpected product: %+v", product)
	}

	if w := get(r, "/api/product/999"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing product, got %d", w.Code)
	}
	if w := get(r, "/api/product/abc"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestGetCategoryIDsBySlug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	db.Create(&models.Category{Name: "Kitchen Essentials"})
	db.Create(&models.Category{Name: "Cleaning"})

	r := gin.New()
	r.GET("/api/products/:categorySlug", GetCategoryIDsBySlug(db))

	w := get(r, "/api/products/kitchen-essentials")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		CategoryIDs []uint `json:"category_ids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if len(resp.CategoryIDs) != 1 || resp.CategoryIDs[0] != 1 {
		t.Errorf("Expected category id [1], got %v", resp.CategoryIDs)
	}

	if w := get(r, "/api/products/garden"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown category, got %d", w.Code)
	}
}
