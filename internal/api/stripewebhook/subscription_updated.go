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

// handleSubscriptionUpdated keeps the stored subscription status current
// and marks a trial as converted when its subscription starts billing.
func handleSubscriptionUpdated(sub *stripe.Subscription) error {
	acct, err := accountForSubscription(sub)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Not one of ours (e.g. another environment sharing the Stripe account)
			return nil
		}
		return err
	}

	status := string(sub.Status)
	updates := map[string]interface{}{
		"stripe_subscription_status": status,
	}

	// Trial subscription started billing: the trial converted to paid.
	converted := acct.TrialStatus == domain.TrialStatusActive && sub.Status == stripe.SubscriptionStatusActive
	if converted {
		updates["trial_status"] = domain.TrialStatusConverted
		if tier := tierFromSubscription(sub); tier != "" {
			updates["tier"] = tier
		}
	}

	if err := database.DB.Model(&domain.CreditAccount{}).
		Where("account_id = ?", acct.AccountID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update billing account: %w", err)
	}

	if converted {
		database.DB.Model(&domain.TrialHistory{}).
			Where("account_id = ? AND ended_at IS NULL", acct.AccountID).
			Updates(map[string]interface{}{"ended_at": time.Now(), "converted_to_paid": true})
	}

	billingapi.InvalidateSubscriptionCache(acct.AccountID)
	return nil
}

func accountForSubscription(sub *stripe.Subscription) (domain.CreditAccount, error) {
	var acct domain.CreditAccount

	if accountID := sub.Metadata["account_id"]; accountID != "" {
		err := database.DB.Where("account_id = ?", accountID).First(&acct).Error
		return acct, err
	}

	err := database.DB.Where("stripe_subscription_id = ?", sub.ID).First(&acct).Error
	return acct, err
}

// tierFromSubscription maps the subscription's price metadata to a tier
// name, if the price carries one.
func tierFromSubscription(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	return sub.Items.Data[0].Price.Metadata["tier"]
}
