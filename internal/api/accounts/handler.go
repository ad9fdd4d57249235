package accounts

import (
	"net/http"
	"time"

	"agent-dashboard/database"
	domainaccounts "agent-dashboard/internal/domain/accounts"
	"agent-dashboard/internal/domain/billing"
	"agent-dashboard/internal/domain/tiers"

	"github.com/gin-gonic/gin"
)

// GetCurrentAccount serves /me: the account profile plus a summary of its
// billing state for the dashboard chrome.
func GetCurrentAccount(c *gin.Context) {
	accountID := c.GetString("account_id")
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var account domainaccounts.Account
	if err := database.DB.Where("account_id = ?", accountID).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	var acct billing.CreditAccount
	if err := database.DB.
		Where(billing.CreditAccount{AccountID: accountID}).
		Attrs(billing.CreditAccount{Tier: tiers.TierNone, TrialStatus: billing.TrialStatusNone}).
		FirstOrCreate(&acct).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billing account"})
		return
	}

	now := time.Now()
	trial := BuildTrialDTO(now, acct)
	entitled := tiers.Entitled(acct.Tier) ||
		(acct.TrialStatus == billing.TrialStatusActive && (acct.TrialEndsAt == nil || now.Before(*acct.TrialEndsAt)))

	c.JSON(http.StatusOK, MeResponse{
		AccountID:    account.AccountID,
		Name:         account.Name,
		Email:        account.Email,
		AuthProvider: account.AuthProvider,
		Role:         account.Role,
		Tier:         BuildTierDTO(acct),
		Trial:        trial,
		Entitled:     entitled,
		Balance:      acct.Balance,
	})
}
