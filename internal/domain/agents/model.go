package agents

import (
	"time"

	"agent-dashboard/internal/domain/media"
)

type Agent struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID string `gorm:"type:uuid;not null;index:idx_agents_account_id" json:"account_id"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	ProfileImageID *string      `gorm:"type:uuid" json:"profile_image_id,omitempty"`
	ProfileImage   *media.Image `gorm:"foreignKey:ProfileImageID" json:"profile_image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
