package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry tracks a user's bookmark on a product. The composite
// primary key makes duplicate adds a natural no-op. Notified flips to true
// once the user has been told the product sold.
type WishlistEntry struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	Archived  bool      `gorm:"default:false" json:"archived"`
	Notified  bool      `gorm:"default:false" json:"notified"`
	CreatedAt time.Time `json:"created_at"`
}
