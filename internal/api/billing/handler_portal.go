package billing

import (
	"net/http"
	"os"

	"agent-dashboard/config"
	"agent-dashboard/database"
	domain "agent-dashboard/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
)

// CreateBillingPortal opens Stripe's hosted billing portal for accounts
// that already have a Stripe customer.
func CreateBillingPortal(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	accountID := c.GetString("account_id")
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not identified"})
		return
	}

	var acct domain.CreditAccount
	if err := database.DB.Where("account_id = ?", accountID).First(&acct).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No billing account found"})
		return
	}
	if acct.StripeCustomerID == nil || *acct.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (start a trial or subscribe first)"})
		return
	}

	portal, err := portalSession.New(&stripe.BillingPortalSessionParams{
		Customer:  acct.StripeCustomerID,
		ReturnURL: stripe.String(config.APP_URL + "/settings/billing"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
