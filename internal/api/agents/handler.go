package agents

import (
	"net/http"

	"agent-dashboard/database"
	domain "agent-dashboard/internal/domain/agents"
	"agent-dashboard/internal/domain/media"

	"github.com/gin-gonic/gin"
)

func ListAgents(c *gin.Context) {
	accountID := c.GetString("account_id")

	var list []domain.Agent
	if err := database.DB.
		Preload("ProfileImage").
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load agents"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func CreateAgent(c *gin.Context) {
	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid name"})
		return
	}

	agent := domain.Agent{
		AccountID:   c.GetString("account_id"),
		Name:        body.Name,
		Description: body.Description,
	}
	if err := database.DB.Create(&agent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create agent"})
		return
	}

	c.JSON(http.StatusOK, agent)
}

func GetAgent(c *gin.Context) {
	accountID := c.GetString("account_id")

	var agent domain.Agent
	if err := database.DB.
		Preload("ProfileImage").
		Where("id = ? AND account_id = ?", c.Param("id"), accountID).
		First(&agent).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	c.JSON(http.StatusOK, agent)
}

// SetProfileImage attaches a profile image to an agent. The image is either
// one the media service already stored (image_id) or a fresh reference
// (url + source) returned by its upload/generate endpoints.
func SetProfileImage(c *gin.Context) {
	accountID := c.GetString("account_id")

	var body struct {
		ImageID string  `json:"image_id"`
		URL     string  `json:"url"`
		Source  string  `json:"source"`
		Prompt  *string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.ImageID == "" && body.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide image_id or url"})
		return
	}

	var agent domain.Agent
	if err := database.DB.
		Where("id = ? AND account_id = ?", c.Param("id"), accountID).
		First(&agent).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	imageID := body.ImageID
	if imageID == "" {
		source := body.Source
		if source == "" {
			source = media.SourceUpload
		}
		if source != media.SourceUpload && source != media.SourceGenerated {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown image source"})
			return
		}

		img := media.Image{
			Source: source,
			URL:    body.URL,
			Prompt: body.Prompt,
		}
		if err := database.DB.Create(&img).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		imageID = img.ID
	} else {
		var img media.Image
		if err := database.DB.Where("id = ?", imageID).First(&img).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown image_id"})
			return
		}
	}

	if err := database.DB.Model(&agent).Update("profile_image_id", imageID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach profile image"})
		return
	}

	var updated domain.Agent
	if err := database.DB.Preload("ProfileImage").Where("id = ?", agent.ID).First(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload agent"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
