package entities

import (
	"time"

	"github.com/google/uuid"
)

type Generation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Prompt      string    `gorm:"type:text" json:"prompt"`
	ImageKey    string    `json:"image_key"`
	ImageURL    string    `json:"image_url"`
	AspectRatio string    `json:"aspect_ratio"`
	CreatedAt   time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
