package billing

import (
	"net/http"

	"agent-dashboard/database"
	domain "agent-dashboard/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GetLedger lists the account's credit ledger, newest first.
func GetLedger(c *gin.Context) {
	accountID := c.GetString("account_id")
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not identified"})
		return
	}

	var entries []domain.CreditLedger
	if err := database.DB.
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ledger"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
