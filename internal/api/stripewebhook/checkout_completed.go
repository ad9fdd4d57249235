package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"agent-dashboard/config"
	"agent-dashboard/database"
	billingapi "agent-dashboard/internal/api/billing"
	domain "agent-dashboard/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

// handleCheckoutSessionCompleted activates a trial once the user has
// completed the checkout the start-trial endpoint handed them to.
func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Metadata["trial_start"] != "true" {
		// Paid-plan checkouts are reconciled via customer.subscription.updated.
		return nil
	}

	accountID := fullSession.Metadata["account_id"]
	if accountID == "" {
		return errors.New("checkout session missing account_id metadata")
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}

	var acct domain.CreditAccount
	if err := database.DB.
		Where(domain.CreditAccount{AccountID: accountID}).
		Attrs(domain.CreditAccount{Tier: "none", TrialStatus: domain.TrialStatusNone}).
		FirstOrCreate(&acct).Error; err != nil {
		return fmt.Errorf("failed to load billing account: %w", err)
	}

	// Replays of the same event must not re-grant credits.
	if acct.TrialStatus == domain.TrialStatusActive {
		return nil
	}

	now := time.Now()
	endsAt := now.AddDate(0, 0, config.TRIAL_DURATION_DAYS)
	status := string(subData.Status)

	updates := map[string]interface{}{
		"trial_status":               domain.TrialStatusActive,
		"tier":                       config.TRIAL_TIER,
		"trial_ends_at":              endsAt,
		"balance":                    config.TRIAL_CREDITS,
		"stripe_subscription_id":     subscriptionID,
		"stripe_subscription_status": status,
	}
	if err := database.DB.Model(&domain.CreditAccount{}).
		Where("account_id = ?", accountID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to activate trial: %w", err)
	}

	if err := database.DB.Create(&domain.TrialHistory{
		AccountID: accountID,
		StartedAt: now,
	}).Error; err != nil {
		return fmt.Errorf("failed to record trial history: %w", err)
	}

	if err := database.DB.Create(&domain.CreditLedger{
		AccountID:    accountID,
		Amount:       config.TRIAL_CREDITS,
		BalanceAfter: config.TRIAL_CREDITS,
		Type:         domain.LedgerTypeGrant,
		Description:  fmt.Sprintf("%d-day trial credits grant", config.TRIAL_DURATION_DAYS),
	}).Error; err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	billingapi.InvalidateSubscriptionCache(accountID)
	return nil
}
