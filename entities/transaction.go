package entities

import (
	"time"

	"github.com/google/uuid"
)

// Transaction rows are append-only. PID is the merchant transaction id
// issued at payment initiation and is unique per purchase attempt; RefID
// is the gateway-assigned code from the callback.
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	PlanName      string    `json:"plan_name"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	PID           string    `gorm:"column:pid;uniqueIndex" json:"pid"`
	RefID         *string   `json:"ref_id,omitempty"`
	PaymentMethod string    `gorm:"default:eSewa" json:"payment_method"`
	CreatedAt     time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
