package models

import "time"

// Customer rows are created lazily at order time. Phone is the de-facto
// match key for dedup; it is indexed but not declared unique, so two
// customers sharing a phone collide onto the first match.
type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"index;not null" json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Orders    []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
