package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"agent-dashboard/database"
	billingapi "agent-dashboard/internal/api/billing"
	domain "agent-dashboard/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleSubscriptionDeleted revokes the entitlement. A deletion during an
// active trial means the trial ran out without converting.
func handleSubscriptionDeleted(sub *stripe.Subscription) error {
	acct, err := accountForSubscription(sub)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	updates := map[string]interface{}{
		"tier":                       "none",
		"balance":                    0.0,
		"stripe_subscription_id":     nil,
		"stripe_subscription_status": string(sub.Status),
	}
	if acct.TrialStatus == domain.TrialStatusActive {
		updates["trial_status"] = domain.TrialStatusExpired
	}

	if err := database.DB.Model(&domain.CreditAccount{}).
		Where("account_id = ?", acct.AccountID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update billing account: %w", err)
	}

	if acct.TrialStatus == domain.TrialStatusActive {
		database.DB.Model(&domain.TrialHistory{}).
			Where("account_id = ? AND ended_at IS NULL", acct.AccountID).
			Updates(map[string]interface{}{"ended_at": time.Now(), "converted_to_paid": false})
	}

	billingapi.InvalidateSubscriptionCache(acct.AccountID)
	return nil
}
