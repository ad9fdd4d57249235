package middleware

import (
	"net/http"
	"time"

	"agent-dashboard/database"
	"agent-dashboard/internal/domain/billing"
	"agent-dashboard/internal/domain/tiers"

	"github.com/gin-gonic/gin"
)

// RequireEntitlement admits accounts with a paid tier or a running trial.
// Everyone else gets a 402 and is expected to go through the trial gate.
func RequireEntitlement() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString("account_id")

		var acct billing.CreditAccount
		if err := database.DB.Where("account_id = ?", accountID).First(&acct).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "No active subscription or trial",
			})
			return
		}

		if acct.TrialStatus == billing.TrialStatusActive {
			if acct.TrialEndsAt == nil || time.Now().Before(*acct.TrialEndsAt) {
				c.Next()
				return
			}
		}

		if tiers.Entitled(acct.Tier) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
			"error": "Your trial has ended. Please subscribe to continue.",
		})
	}
}
