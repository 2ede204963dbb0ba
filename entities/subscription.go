package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusReplaced = "replaced"
	SubscriptionStatusExpired  = "expired"
)

type Subscription struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID  `gorm:"index" json:"user_id"`
	PlanName         string     `json:"plan_name"`
	CreditsRemaining int        `json:"credits_remaining"`
	MaxCredits       int        `json:"max_credits"`
	StartDate        time.Time  `gorm:"type:timestamp" json:"start_date"`
	EndDate          time.Time  `gorm:"type:timestamp" json:"end_date"`
	Status           string     `gorm:"default:active" json:"status"` // "active", "replaced", "expired"
	TransactionID    *uuid.UUID `json:"transaction_id,omitempty"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Timestamp
}
