package models

import "time"

type FulfillmentMethod string

const (
	FulfillmentDelivery FulfillmentMethod = "delivery"
	FulfillmentPickup   FulfillmentMethod = "pickup"
)

// Order is an immutable snapshot taken at checkout: total_amount and
// item_count are stored as submitted and never recomputed from items.
type Order struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	CustomerID        uint              `gorm:"not null;index" json:"customer_id"`
	Customer          Customer          `gorm:"foreignKey:CustomerID" json:"customer"`
	Items             []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	FulfillmentMethod FulfillmentMethod `gorm:"type:VARCHAR(20);not null" json:"fulfillment_method"`
	Source            string            `json:"source"`
	TotalAmount       float64           `gorm:"type:decimal(10,2)" json:"total_amount"`
	ItemCount         int               `json:"item_count"`
	PaymentMethod     string            `json:"payment_method"`
	DeliveryNotes     string            `json:"delivery_notes"`
	PickupNotes       string            `json:"pickup_notes"`
	OrderName         string            `gorm:"index" json:"order_name"`
	CreatedAt         time.Time         `json:"created_at"`
}

// OrderItem is append-only history: one row per distinct cart line,
// carrying the unit price as it was at purchase time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `gorm:"type:decimal(10,2)" json:"price"`
}
