package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/models"
)

// -------- Request Structs --------

// OrderItemRequest mirrors one cart line as the storefront submits it:
// the unit price is the one the client held, kept verbatim.
type OrderItemRequest struct {
	ProductID uint    `json:"id" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

type OrderRequest struct {
	CartItems         []OrderItemRequest `json:"cartItems" binding:"required,dive"`
	CustomerName      string             `json:"customerName" binding:"required"`
	CustomerPhone     string             `json:"customerPhone" binding:"required"`
	CustomerEmail     string             `json:"customerEmail"`
	FulfillmentMethod string             `json:"fulfillmentMethod" binding:"required"`
	DeliveryStreet    string             `json:"deliveryStreet"`
	DeliveryCity      string             `json:"deliveryCity"`
	DeliveryNotes     string             `json:"deliveryNotes"`
	PickupNotes       string             `json:"pickupNotes"`
	Source            string             `json:"source"`
	PaymentMethod     string             `json:"paymentMethod"`
	Total             float64            `json:"total"`
	ItemCount         int                `json:"itemCount"`
	IdempotencyKey    string             `json:"idempotencyKey"`
}

// PlaceOrderBody is the POST /api/order envelope.
type PlaceOrderBody struct {
	OrderData OrderRequest `json:"orderData" binding:"required"`
}

// PlaceOrderResult carries the identifiers generated for one placement.
type PlaceOrderResult struct {
	CustomerID   uint
	OrderID      uint
	OrderItemIDs []uint
}

// -------- Helpers --------

func mapFulfillment(method string) (models.FulfillmentMethod, error) {
	switch strings.ToLower(method) {
	case string(models.FulfillmentDelivery):
		return models.FulfillmentDelivery, nil
	case string(models.FulfillmentPickup):
		return models.FulfillmentPickup, nil
	default:
		return "", errors.New("invalid fulfillment method")
	}
}

// generateOrderName yields a unique human-readable order reference.
// Example: GH-20250908130500-1b9d6bcd
func generateOrderName() string {
	return "GH-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// ValidateOrderRequest enforces the submission contract before any row
// is touched: non-empty cart, name and phone always, street and city
// for delivery only.
func ValidateOrderRequest(req OrderRequest) error {
	if len(req.CartItems) == 0 {
		return errors.New("cart is empty")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return errors.New("customer name is required")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return errors.New("customer phone is required")
	}
	method, err := mapFulfillment(req.FulfillmentMethod)
	if err != nil {
		return err
	}
	if method == models.FulfillmentDelivery {
		if strings.TrimSpace(req.DeliveryStreet) == "" {
			return errors.New("delivery street is required")
		}
		if strings.TrimSpace(req.DeliveryCity) == "" {
			return errors.New("delivery city is required")
		}
	}
	return nil
}

// -------- Core Logic --------

// PlaceOrder resolves-or-creates the customer by exact phone match,
// inserts the order row, then one order_items row per cart line. The
// three writes run in one transaction so a failed step leaves nothing
// behind. Totals and prices are stored as submitted, not recomputed;
// the one substitution is an omitted itemCount (zero), which is filled
// with the number of cart lines.
//
// Phone is the only dedup key: the first customer row with a matching
// phone wins, regardless of name or email.
func PlaceOrder(db *gorm.DB, req OrderRequest) (*PlaceOrderResult, error) {
	if err := ValidateOrderRequest(req); err != nil {
		return nil, err
	}
	method, _ := mapFulfillment(req.FulfillmentMethod)

	itemCount := req.ItemCount
	if itemCount == 0 {
		itemCount = len(req.CartItems)
	}
	source := req.Source
	if source == "" {
		source = "storefront"
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	var result PlaceOrderResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// Step 1: customer lookup-or-create by phone.
		var customer models.Customer
		err := tx.Where("phone = ?", req.CustomerPhone).First(&customer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			customer = models.Customer{
				Name:    req.CustomerName,
				Phone:   req.CustomerPhone,
				Email:   req.CustomerEmail,
				Address: strings.TrimSpace(req.DeliveryStreet + " " + req.DeliveryCity),
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		result.CustomerID = customer.ID

		// Step 2: order row, totals verbatim from the request.
		order := models.Order{
			CustomerID:        customer.ID,
			FulfillmentMethod: method,
			Source:            source,
			TotalAmount:       req.Total,
			ItemCount:         itemCount,
			PaymentMethod:     paymentMethod,
			DeliveryNotes:     req.DeliveryNotes,
			PickupNotes:       req.PickupNotes,
			OrderName:         generateOrderName(),
			CreatedAt:         time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		result.OrderID = order.ID

		// Step 3: one item row per distinct cart line, batch insert.
		items := make([]models.OrderItem, len(req.CartItems))
		for i, line := range req.CartItems {
			items[i] = models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		result.OrderItemIDs = make([]uint, len(items))
		for i, item := range items {
			result.OrderItemIDs[i] = item.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// -------- Handlers --------

// PlaceOrderHandler serves POST /api/order.
func PlaceOrderHandler(db *gorm.DB, guard *IdempotencyGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body PlaceOrderBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order payload", "error": err.Error()})
			return
		}
		req := body.OrderData

		if req.IdempotencyKey != "" {
			if prev, ok := guard.Get(req.IdempotencyKey); ok {
				c.JSON(http.StatusOK, gin.H{
					"message":        "Order already placed",
					"customerId":     prev.CustomerID,
					"orderId":        prev.OrderID,
					"order_items_id": prev.OrderItemIDs,
				})
				return
			}
		}

		if err := ValidateOrderRequest(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		result, err := PlaceOrder(db, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order", "error": err.Error()})
			return
		}

		if req.IdempotencyKey != "" {
			guard.Put(req.IdempotencyKey, result)
		}

		var placed models.Order
		if err := db.Preload("Items").Preload("Customer").First(&placed, result.OrderID).Error; err == nil {
			BroadcastNewOrder(placed)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":        "Order placed successfully",
			"customerId":     result.CustomerID,
			"orderId":        result.OrderID,
			"order_items_id": result.OrderItemIDs,
		})
	}
}

// GetAllOrdersHandler lists every order for the admin dashboard.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Customer").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler fetches a single order by numeric id or order_name.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Customer").
			Preload("Items").
			Where("id = ? OR order_name = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GetCustomerOrdersHandler lists orders belonging to one customer.
func GetCustomerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerID")
		if customerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customerID is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("customer_id = ?", customerID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// DeleteOrderHandler removes an order and its items together.
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", orderID).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
