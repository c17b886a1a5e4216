package models

import (
	"github.com/google/uuid"
)

// Message is a chat message inside a conversation.
type Message struct {
	BaseModel
	ConversationID uuid.UUID `gorm:"type:uuid;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;index" json:"sender_id"`
	Body           string    `json:"body"`
}

// ConversationParticipant links a user into a conversation.
type ConversationParticipant struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
}

// AdminAction records a moderation action taken by an admin account.
type AdminAction struct {
	BaseModel
	AdminID    uuid.UUID `gorm:"type:uuid;index" json:"admin_id"`
	ActionType string    `json:"action_type"`
	TargetID   uuid.UUID `gorm:"type:uuid" json:"target_id"`
	Notes      string    `json:"notes"`
}

// Review is buyer feedback left on a seller.
type Review struct {
	BaseModel
	SellerID   uuid.UUID `gorm:"type:uuid;index" json:"seller_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;index" json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
}

// ListingReport is a user-submitted report against a listing.
type ListingReport struct {
	BaseModel
	ReporterID uuid.UUID `gorm:"type:uuid;index" json:"reporter_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Reason     string    `json:"reason"`
}
