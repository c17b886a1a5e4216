package models

import (
	"github.com/google/uuid"
)

// Moderation and sale states for a listing.
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"

	ProductStatusAvailable = "available"
	ProductStatusSold      = "sold"
)

// Product is a listing owned by a seller. Listings must pass moderation
// (approval_status = approved) before buyers can interact with them.
type Product struct {
	BaseModel
	SellerID       uuid.UUID      `gorm:"type:uuid;index" json:"seller_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Category       string         `json:"category"`
	ApprovalStatus string         `gorm:"default:pending" json:"approval_status"`
	Status         string         `gorm:"default:available" json:"status"`
	Images         []ProductImage `json:"images,omitempty"`
}

// ProductImage is one photo attached to a listing. The image with the
// lowest display order is treated as the listing's thumbnail.
type ProductImage struct {
	BaseModel
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	URL          string    `json:"url"`
	DisplayOrder int       `json:"display_order"`
}
