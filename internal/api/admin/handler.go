package admin

import (
	"net/http"
	"time"

	"agent-dashboard/database"
	domainaccounts "agent-dashboard/internal/domain/accounts"
	"agent-dashboard/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

type AdminAccount struct {
	AccountID    string     `json:"account_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	AuthProvider string     `json:"auth_provider"`
	Tier         string     `json:"tier"`
	Balance      float64    `json:"balance"`
	TrialStatus  string     `json:"trial_status"`
	TrialEndsAt  *time.Time `json:"trial_ends_at,omitempty"`
}

type AdminStats struct {
	TotalAccounts   int            `json:"total_accounts"`
	ActiveTrials    int            `json:"active_trials"`
	ConvertedTrials int            `json:"converted_trials"`
	AccountsPerTier map[string]int `json:"accounts_per_tier"`
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalAccounts int64
	var activeTrials int64
	var convertedTrials int64

	database.DB.Model(&domainaccounts.Account{}).Count(&totalAccounts)
	database.DB.Model(&billing.CreditAccount{}).
		Where("trial_status = ?", billing.TrialStatusActive).Count(&activeTrials)
	database.DB.Model(&billing.TrialHistory{}).
		Where("converted_to_paid = ?", true).Count(&convertedTrials)

	stats.TotalAccounts = int(totalAccounts)
	stats.ActiveTrials = int(activeTrials)
	stats.ConvertedTrials = int(convertedTrials)

	type TierCount struct {
		Tier  string
		Count int
	}
	var counts []TierCount
	database.DB.
		Model(&billing.CreditAccount{}).
		Select("tier, COUNT(id) as count").
		Group("tier").
		Scan(&counts)

	stats.AccountsPerTier = map[string]int{}
	for _, tc := range counts {
		stats.AccountsPerTier[tc.Tier] = tc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllAccounts(c *gin.Context) {
	var all []domainaccounts.Account
	if err := database.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load accounts"})
		return
	}

	var credits []billing.CreditAccount
	if err := database.DB.Find(&credits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billing accounts"})
		return
	}
	byAccount := map[string]billing.CreditAccount{}
	for _, ca := range credits {
		byAccount[ca.AccountID] = ca
	}

	result := []AdminAccount{}
	for _, a := range all {
		ca := byAccount[a.AccountID]
		tier := ca.Tier
		if tier == "" {
			tier = "none"
		}
		trialStatus := ca.TrialStatus
		if trialStatus == "" {
			trialStatus = billing.TrialStatusNone
		}
		result = append(result, AdminAccount{
			AccountID:    a.AccountID,
			Name:         a.Name,
			Email:        a.Email,
			Role:         a.Role,
			AuthProvider: a.AuthProvider,
			Tier:         tier,
			Balance:      ca.Balance,
			TrialStatus:  trialStatus,
			TrialEndsAt:  ca.TrialEndsAt,
		})
	}

	c.JSON(http.StatusOK, result)
}

func ListTrialHistory(c *gin.Context) {
	var history []billing.TrialHistory
	if err := database.DB.Order("started_at DESC").Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trial history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
