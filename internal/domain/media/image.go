package media

import "time"

// Image sources.
const (
	SourceUpload    = "upload"
	SourceGenerated = "generated"
)

// Image is a stored profile image, either uploaded by the user or produced
// by the AI generation endpoint of the media service.
type Image struct {
	ID     string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Source string `gorm:"type:varchar(20);not null;default:'upload'" json:"source"`
	URL    string `gorm:"not null" json:"url"`

	// Prompt is set only for generated images.
	Prompt *string `json:"prompt,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadResponse is the media service's answer to an image upload.
type UploadResponse struct {
	ImageID string `json:"image_id"`
	URL     string `json:"url"`
}

// GenerateRequest asks the media service to produce an image from a prompt.
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}
