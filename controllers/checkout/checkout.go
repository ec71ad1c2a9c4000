package checkoutControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/cart"
	"github.com/Nanak2/homegoodsreact-sub000/config"
	orderControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/order"
	"github.com/Nanak2/homegoodsreact-sub000/models"
)

// Form is what the checkout page submits. Which fields are required
// depends on the fulfillment method; see Validate.
type Form struct {
	CustomerName      string `json:"customerName"`
	CustomerPhone     string `json:"customerPhone"`
	CustomerEmail     string `json:"customerEmail"`
	FulfillmentMethod string `json:"fulfillmentMethod"`
	DeliveryStreet    string `json:"deliveryStreet"`
	DeliveryCity      string `json:"deliveryCity"`
	DeliveryNotes     string `json:"deliveryNotes"`
	PickupNotes       string `json:"pickupNotes"`
	PickupTime        string `json:"pickupTime"` // optional metadata, never validated
	PaymentMethod     string `json:"paymentMethod"`
	IdempotencyKey    string `json:"idempotencyKey"`
}

// Totals is the price breakdown shown before submission.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Method resolves the form's fulfillment state. An empty selection
// falls back to delivery, the storefront's default.
func (f Form) Method() (models.FulfillmentMethod, error) {
	raw := f.FulfillmentMethod
	if raw == "" {
		raw = string(models.FulfillmentDelivery)
	}
	switch strings.ToLower(raw) {
	case string(models.FulfillmentDelivery):
		return models.FulfillmentDelivery, nil
	case string(models.FulfillmentPickup):
		return models.FulfillmentPickup, nil
	}
	return "", errInvalidFulfillment
}

var errInvalidFulfillment = validationError("invalid fulfillment method")

type validationError string

func (e validationError) Error() string { return string(e) }

// Validate enforces the submission contract: name and phone always,
// street and city only when delivering, and a non-empty cart. Pickup
// needs no address at all.
func (f Form) Validate(cartEmpty bool) error {
	if strings.TrimSpace(f.CustomerName) == "" {
		return validationError("name is required")
	}
	if strings.TrimSpace(f.CustomerPhone) == "" {
		return validationError("phone is required")
	}
	method, err := f.Method()
	if err != nil {
		return err
	}
	if method == models.FulfillmentDelivery {
		if strings.TrimSpace(f.DeliveryStreet) == "" {
			return validationError("delivery street is required")
		}
		if strings.TrimSpace(f.DeliveryCity) == "" {
			return validationError("delivery city is required")
		}
	}
	if cartEmpty {
		return validationError("cart is empty")
	}
	return nil
}

// Subtotal is the exact sum of unitPrice x quantity over lines.
func Subtotal(lines []cart.Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// ComputeTotals applies the configured flat delivery fee, waived at or
// above the free-delivery threshold. Pickup never carries a fee.
func ComputeTotals(subtotal decimal.Decimal, method models.FulfillmentMethod, cfg *config.Config) Totals {
	fee := decimal.Zero
	if method == models.FulfillmentDelivery {
		fee = cfg.DeliveryFee
		if cfg.FreeDeliveryOver.IsPositive() && subtotal.GreaterThanOrEqual(cfg.FreeDeliveryOver) {
			fee = decimal.Zero
		}
	}
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		GrandTotal:  subtotal.Add(fee),
	}
}

// BuildOrderRequest assembles the payload the order service consumes
// from the validated form and the session's cart lines.
func BuildOrderRequest(form Form, lines []cart.Line, totals Totals) orderControllers.OrderRequest {
	items := make([]orderControllers.OrderItemRequest, len(lines))
	for i, l := range lines {
		items[i] = orderControllers.OrderItemRequest{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPrice.Round(2).InexactFloat64(),
			Quantity:  l.Quantity,
		}
	}
	return orderControllers.OrderRequest{
		CartItems:         items,
		CustomerName:      form.CustomerName,
		CustomerPhone:     form.CustomerPhone,
		CustomerEmail:     form.CustomerEmail,
		FulfillmentMethod: form.FulfillmentMethod,
		DeliveryStreet:    form.DeliveryStreet,
		DeliveryCity:      form.DeliveryCity,
		DeliveryNotes:     form.DeliveryNotes,
		PickupNotes:       form.PickupNotes,
		Source:            "storefront",
		PaymentMethod:     form.PaymentMethod,
		Total:             totals.GrandTotal.Round(2).InexactFloat64(),
		ItemCount:         len(items),
		IdempotencyKey:    form.IdempotencyKey,
	}
}

// -------- Handlers --------

// SummaryHandler serves GET /api/checkout/summary?fulfillment=delivery
// with the price breakdown for the active session's cart.
func SummaryHandler(store *cart.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")
		form := Form{FulfillmentMethod: c.DefaultQuery("fulfillment", string(models.FulfillmentDelivery))}
		method, err := form.Method()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		totals := ComputeTotals(store.Total(sessionID), method, cfg)
		c.JSON(http.StatusOK, gin.H{
			"subtotal":    totals.Subtotal.StringFixed(2),
			"deliveryFee": totals.DeliveryFee.StringFixed(2),
			"grandTotal":  totals.GrandTotal.StringFixed(2),
			"itemCount":   store.ItemCount(sessionID),
		})
	}
}

// SubmitHandler serves POST /api/checkout. It validates the form
// against the session cart, places the order, and clears the cart only
// on success; a failed placement leaves cart and form state intact so
// the user can retry.
func SubmitHandler(db *gorm.DB, store *cart.Store, cfg *config.Config, guard *orderControllers.IdempotencyGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var form Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkout payload", "error": err.Error()})
			return
		}

		lines := store.Lines(sessionID)
		if err := form.Validate(len(lines) == 0); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if form.IdempotencyKey != "" {
			if prev, ok := guard.Get(form.IdempotencyKey); ok {
				store.Clear(sessionID)
				c.JSON(http.StatusOK, gin.H{
					"message":        "Order already placed",
					"customerId":     prev.CustomerID,
					"orderId":        prev.OrderID,
					"order_items_id": prev.OrderItemIDs,
				})
				return
			}
		}

		// Totals come from the captured lines, not a second store
		// read, so a concurrent cart mutation cannot desync the
		// payload from its own items.
		method, _ := form.Method()
		totals := ComputeTotals(Subtotal(lines), method, cfg)
		req := BuildOrderRequest(form, lines, totals)
		req.FulfillmentMethod = string(method)

		result, err := orderControllers.PlaceOrder(db, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order", "error": err.Error()})
			return
		}
		if form.IdempotencyKey != "" {
			guard.Put(form.IdempotencyKey, result)
		}

		store.Clear(sessionID)

		var placed models.Order
		if err := db.Preload("Items").Preload("Customer").First(&placed, result.OrderID).Error; err == nil {
			orderControllers.BroadcastNewOrder(placed)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":        "Order placed successfully",
			"customerId":     result.CustomerID,
			"orderId":        result.OrderID,
			"order_items_id": result.OrderItemIDs,
		})
	}
}
