package billing

import (
	"net/http"
	"time"

	domain "agent-dashboard/internal/domain/billing"
	"agent-dashboard/internal/domain/tiers"
	stripeinfra "agent-dashboard/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// Tier info is cheap but the row behind it is not; same 60s TTL the
// product has always used.
var tierCache = gocache.New(60*time.Second, 2*time.Minute)

type SubscriptionResponse struct {
	Tier           *tiers.Tier `json:"tier"`
	Status         string      `json:"status"`
	SubscriptionID *string     `json:"subscription_id"`
	TrialStatus    string      `json:"trial_status"`
	Balance        float64     `json:"balance"`
}

// GetSubscription reports the account's current billing tier. The gate
// treats a null tier, "none" or "free" as not entitled.
func GetSubscription(c *gin.Context) {
	accountID := c.GetString("account_id")
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not identified"})
		return
	}

	cacheKey := "subscription:" + accountID
	if cached, ok := tierCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, cached.(SubscriptionResponse))
		return
	}

	acct, err := loadCreditAccount(accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billing account"})
		return
	}

	resp := buildSubscriptionResponse(acct)
	tierCache.Set(cacheKey, resp, gocache.DefaultExpiration)
	c.JSON(http.StatusOK, resp)
}

func buildSubscriptionResponse(acct domain.CreditAccount) SubscriptionResponse {
	resp := SubscriptionResponse{
		Status:         stripeinfra.NormalizeSubscriptionStatus(acct.StripeSubscriptionStatus),
		SubscriptionID: acct.StripeSubscriptionID,
		TrialStatus:    acct.TrialStatus,
		Balance:        acct.Balance,
	}
	if acct.Tier != "" && acct.Tier != tiers.TierNone {
		t := tiers.Get(acct.Tier)
		resp.Tier = &t
	}
	return resp
}

// InvalidateSubscriptionCache drops the cached subscription payload after
// any mutation of the account's billing state.
func InvalidateSubscriptionCache(accountID string) {
	tierCache.Delete("subscription:" + accountID)
}

// ListTiers exposes the public pricing surface.
func ListTiers(c *gin.Context) {
	c.JSON(http.StatusOK, tiers.All())
}
