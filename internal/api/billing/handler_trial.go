package billing

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"agent-dashboard/config"
	"agent-dashboard/database"
	domain "agent-dashboard/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"
)

// GetTrialStatus reports whether a trial exists for the account and where
// it is in its lifecycle.
func GetTrialStatus(c *gin.Context) {
	accountID := c.GetString("account_id")
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not identified"})
		return
	}

	if !config.TRIAL_ENABLED {
		c.JSON(http.StatusOK, gin.H{
			"has_trial": false,
			"message":   "Trials are not enabled",
		})
		return
	}

	var acct domain.CreditAccount
	err := database.DB.Where("account_id = ?", accountID).First(&acct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"has_trial": false, "trial_status": domain.TrialStatusNone})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billing account"})
		return
	}

	if acct.TrialStatus == "" || acct.TrialStatus == domain.TrialStatusNone {
		c.JSON(http.StatusOK, gin.H{"has_trial": false, "trial_status": domain.TrialStatusNone})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_trial":     true,
		"trial_status":  acct.TrialStatus,
		"trial_ends_at": acct.TrialEndsAt,
		"tier":          acct.Tier,
	})
}

// StartTrial creates the subscription-mode checkout session that backs a
// trial. The trial itself only becomes active when the checkout.session.
// completed webhook lands.
func StartTrial(c *gin.Context) {
	var body struct {
		SuccessURL string `json:"success_url" binding:"required,url"`
		CancelURL  string `json:"cancel_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid success_url/cancel_url"})
		return
	}

	if !config.TRIAL_ENABLED {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trials are not currently enabled"})
		return
	}

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

	acct, err := loadCreditAccount(accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billing account"})
		return
	}

	if acct.TrialStatus != "" && acct.TrialStatus != domain.TrialStatusNone {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Account already has trial status: %s", acct.TrialStatus),
		})
		return
	}

	// One trial per account, ever.
	var priorTrials int64
	if err := database.DB.Model(&domain.TrialHistory{}).
		Where("account_id = ?", accountID).
		Count(&priorTrials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check trial history"})
		return
	}
	if priorTrials > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This account has already used its trial"})
		return
	}

	customerID, err := ensureStripeCustomer(&acct)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	trialDays := config.TRIAL_DURATION_DAYS
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerID),
		SuccessURL: stripe.String(body.SuccessURL),
		CancelURL:  stripe.String(body.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("%d-Day Trial", trialDays)),
						Description: stripe.String(fmt.Sprintf("Start your %d-day free trial with $%.0f in credits", trialDays, config.TRIAL_CREDITS)),
					},
					UnitAmount: stripe.Int64(2000),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String("month"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},

		Metadata: map[string]string{
			"account_id":  accountID,
			"trial_start": "true",
		},

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(int64(trialDays)),
			Metadata: map[string]string{
				"account_id":  accountID,
				"trial_start": "true",
			},
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": s.URL})
}

// CancelTrial cancels the Stripe subscription behind an active trial and
// resets the account's billing state.
func CancelTrial(c *gin.Context) {
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

	if acct.TrialStatus != domain.TrialStatusActive {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("No active trial to cancel. Current status: %s", acct.TrialStatus),
		})
		return
	}
	if acct.StripeSubscriptionID == nil || *acct.StripeSubscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No Stripe subscription found for this trial"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	cancelled, err := subscription.Cancel(*acct.StripeSubscriptionID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription", "details": err.Error()})
		return
	}

	now := time.Now()
	if err := database.DB.Model(&domain.CreditAccount{}).
		Where("account_id = ?", accountID).
		Updates(map[string]interface{}{
			"trial_status":               domain.TrialStatusCancelled,
			"tier":                       "none",
			"balance":                    0.0,
			"stripe_subscription_id":     nil,
			"stripe_subscription_status": string(cancelled.Status),
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update billing account"})
		return
	}

	database.DB.Model(&domain.TrialHistory{}).
		Where("account_id = ? AND ended_at IS NULL", accountID).
		Updates(map[string]interface{}{"ended_at": now, "converted_to_paid": false})

	database.DB.Create(&domain.CreditLedger{
		AccountID:    accountID,
		Amount:       -acct.Balance,
		BalanceAfter: 0,
		Type:         domain.LedgerTypeAdjustment,
		Description:  "Trial cancelled by user",
	})

	InvalidateSubscriptionCache(accountID)

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Trial cancelled successfully",
		"subscription_status": cancelled.Status,
	})
}
