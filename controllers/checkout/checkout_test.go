package checkoutControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/cart"
	"github.com/Nanak2/homegoodsreact-sub000/config"
	orderControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/order"
	"github.com/Nanak2/homegoodsreact-sub000/models"
)

func testConfig() *config.Config {
	return &config.Config{
		DeliveryFee:      decimal.NewFromInt(30),
		FreeDeliveryOver: decimal.NewFromInt(200),
	}
}

func validDeliveryForm() Form {
	return Form{
		CustomerName:      "Ama Mensah",
		CustomerPhone:     "0244123456",
		FulfillmentMethod: "delivery",
		DeliveryStreet:    "12 Ring Road",
		DeliveryCity:      "Accra",
	}
}

func TestForm_ValidateDeliveryRequiresCity(t *testing.T) {
	form := validDeliveryForm()
	form.DeliveryCity = ""

	if err := form.Validate(false); err == nil {
		t.Fatal("Expected delivery submission without city to be rejected")
	}
}

func TestForm_ValidateDeliveryRequiresStreet(t *testing.T) {
	form := validDeliveryForm()
	form.DeliveryStreet = ""

	if err := form.Validate(false); err == nil {
		t.Fatal("Expected delivery submission without street to be rejected")
	}
}

func TestForm_ValidatePickupNeedsNoAddress(t *testing.T) {
	form := Form{
		CustomerName:      "Ama Mensah",
		CustomerPhone:     "0244123456",
		FulfillmentMethod: "pickup",
	}

	if err := form.Validate(false); err != nil {
		t.Errorf("Expected pickup without address fields to pass, got: %v", err)
	}
}

func TestForm_ValidateEmptyCartBlocksSubmission(t *testing.T) {
	form := validDeliveryForm()

	if err := form.Validate(true); err == nil {
		t.Fatal("Expected empty cart to block submission")
	}
}

func TestForm_ValidateNameAndPhoneAlwaysRequired(t *testing.T) {
	for _, method := range []string{"delivery", "pickup"} {
		form := validDeliveryForm()
		form.FulfillmentMethod = method
		form.CustomerName = ""
		if err := form.Validate(false); err == nil {
			t.Errorf("Expected %s submission without name to be rejected", method)
		}

		form = validDeliveryForm()
		form.FulfillmentMethod = method
		form.CustomerPhone = "  "
		if err := form.Validate(false); err == nil {
			t.Errorf("Expected %s submission without phone to be rejected", method)
		}
	}
}

func TestForm_MethodDefaultsToDelivery(t *testing.T) {
	method, err := Form{}.Method()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if method != models.FulfillmentDelivery {
		t.Errorf("Expected default method delivery, got %s", method)
	}
}

func TestForm_MethodRejectsUnknownValues(t *testing.T) {
	if _, err := (Form{FulfillmentMethod: "drone"}).Method(); err == nil {
		t.Fatal("Expected unknown fulfillment method to be rejected")
	}
}

func TestComputeTotals_DeliveryFeeApplied(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromInt(25), models.FulfillmentDelivery, testConfig())

	if !totals.DeliveryFee.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected delivery fee 30, got %s", totals.DeliveryFee)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(55)) {
		t.Errorf("Expected grand total 55, got %s", totals.GrandTotal)
	}
}

func TestComputeTotals_FeeWaivedAtThreshold(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromInt(200), models.FulfillmentDelivery, testConfig())

	if !totals.DeliveryFee.IsZero() {
		t.Errorf("Expected fee waived at threshold, got %s", totals.DeliveryFee)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected grand total 200, got %s", totals.GrandTotal)
	}
}

func TestComputeTotals_PickupNeverCarriesFee(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromInt(5), models.FulfillmentPickup, testConfig())

	if !totals.DeliveryFee.IsZero() {
		t.Errorf("Expected no fee for pickup, got %s", totals.DeliveryFee)
	}
}

func TestComputeTotals_ZeroThresholdDisablesWaiver(t *testing.T) {
	cfg := &config.Config{DeliveryFee: decimal.NewFromInt(30)}
	totals := ComputeTotals(decimal.NewFromInt(1000), models.FulfillmentDelivery, cfg)

	if !totals.DeliveryFee.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected fee 30 with waiver disabled, got %s", totals.DeliveryFee)
	}
}

func TestSubtotal_MatchesLineArithmetic(t *testing.T) {
	lines := []cart.Line{
		{ProductID: 1, UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3},
		{ProductID: 2, UnitPrice: decimal.RequireFromString("5.25"), Quantity: 2},
	}

	want := decimal.RequireFromString("10.80")
	if got := Subtotal(lines); !got.Equal(want) {
		t.Errorf("Expected subtotal %s, got %s", want, got)
	}
	if !Subtotal(nil).IsZero() {
		t.Error("Expected zero subtotal for no lines")
	}
}

func TestBuildOrderRequest(t *testing.T) {
	lines := []cart.Line{
		{ProductID: 1, Name: "Broom", UnitPrice: decimal.NewFromInt(10), Quantity: 2},
		{ProductID: 2, Name: "Soap", UnitPrice: decimal.NewFromInt(5), Quantity: 1},
	}
	form := validDeliveryForm()
	totals := ComputeTotals(decimal.NewFromInt(25), models.FulfillmentDelivery, testConfig())

	req := BuildOrderRequest(form, lines, totals)

	if len(req.CartItems) != 2 {
		t.Fatalf("Expected 2 cart items, got %d", len(req.CartItems))
	}
	if req.ItemCount != 2 {
		t.Errorf("Expected item count 2, got %d", req.ItemCount)
	}
	if req.Total != 55 {
		t.Errorf("Expected total 55, got %v", req.Total)
	}
	if req.CartItems[0].ProductID != 1 || req.CartItems[0].Price != 10 || req.CartItems[0].Quantity != 2 {
		t.Errorf("Unexpected first line: %+v", req.CartItems[0])
	}
	if req.Source != "storefront" {
		t.Errorf("Expected source 'storefront', got %q", req.Source)
	}
	if req.CustomerPhone != form.CustomerPhone {
		t.Errorf("Expected phone carried over, got %q", req.CustomerPhone)
	}
}

var dbSeq int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	return db
}

func submitRouter(db *gorm.DB, store *cart.Store, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/checkout",
		func(c *gin.Context) { c.Set("session_id", "sess") },
		SubmitHandler(db, store, cfg, orderControllers.NewIdempotencyGuard(time.Minute)),
	)
	return r
}

func postCheckout(r *gin.Engine, form Form) *httptest.ResponseRecorder {
	body, _ := json.Marshal(form)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitHandler_TotalsComeFromSubmittedLines(t *testing.T) {
	db := testDB(t)
	store := cart.NewStore()
	store.AddItem("sess", models.Product{ID: 1, Name: "Broom", Price: 10}, 2)
	store.AddItem("sess", models.Product{ID: 2, Name: "Soap", Price: 5}, 1)

	r := submitRouter(db, store, testConfig())
	w := postCheckout(r, validDeliveryForm())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := db.Preload("Items").First(&order).Error; err != nil {
		t.Fatalf("Order row missing: %v", err)
	}
	if order.TotalAmount != 55 { // 25 subtotal + 30 fee
		t.Errorf("Expected total_amount 55, got %v", order.TotalAmount)
	}
	if order.ItemCount != 2 || len(order.Items) != 2 {
		t.Errorf("Expected 2 lines in order, got item_count %d with %d rows", order.ItemCount, len(order.Items))
	}
	if store.ItemCount("sess") != 0 {
		t.Error("Expected cart cleared after successful submission")
	}
}

func TestSubmitHandler_FailurePreservesCart(t *testing.T) {
	db := testDB(t)
	store := cart.NewStore()
	store.AddItem("sess", models.Product{ID: 1, Name: "Broom", Price: 10}, 2)

	// Break the item insert so placement fails server-side.
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatalf("Failed to drop order_items: %v", err)
	}

	r := submitRouter(db, store, testConfig())
	w := postCheckout(r, validDeliveryForm())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	if store.ItemCount("sess") != 2 {
		t.Errorf("Expected cart preserved after failure, got count %d", store.ItemCount("sess"))
	}
}

func TestSubmitHandler_EmptyCartRejectedBeforePlacement(t *testing.T) {
	db := testDB(t)
	store := cart.NewStore()

	r := submitRouter(db, store, testConfig())
	w := postCheckout(r, validDeliveryForm())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for empty cart, got %d", w.Code)
	}

	var n int64
	db.Model(&models.Order{}).Count(&n)
	if n != 0 {
		t.Errorf("Expected no order rows, got %d", n)
	}
}
