package billing

import (
	"fmt"
	"os"

	"agent-dashboard/database"
	"agent-dashboard/internal/domain/accounts"
	domain "agent-dashboard/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
	customer "github.com/stripe/stripe-go/v75/customer"
)

// loadCreditAccount fetches the account's billing row, creating the default
// "none" row on first touch so every account always has one.
func loadCreditAccount(accountID string) (domain.CreditAccount, error) {
	var acct domain.CreditAccount
	err := database.DB.
		Where(domain.CreditAccount{AccountID: accountID}).
		Attrs(domain.CreditAccount{Tier: "none", TrialStatus: domain.TrialStatusNone}).
		FirstOrCreate(&acct).Error
	return acct, err
}

// ensureStripeCustomer returns the account's Stripe customer ID, creating
// the customer on first use.
func ensureStripeCustomer(acct *domain.CreditAccount) (string, error) {
	if acct.StripeCustomerID != nil && *acct.StripeCustomerID != "" {
		return *acct.StripeCustomerID, nil
	}

	var owner accounts.Account
	if err := database.DB.Where("account_id = ?", acct.AccountID).First(&owner).Error; err != nil {
		return "", fmt.Errorf("account not found: %w", err)
	}

	cus, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(owner.Email),
		Metadata: map[string]string{
			"account_id": acct.AccountID,
			"app_env":    os.Getenv("APP_ENV"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe customer: %w", err)
	}

	if err := database.DB.Model(&domain.CreditAccount{}).
		Where("account_id = ?", acct.AccountID).
		Update("stripe_customer_id", cus.ID).Error; err != nil {
		return "", fmt.Errorf("failed to store Stripe customer: %w", err)
	}

	acct.StripeCustomerID = stripe.String(cus.ID)
	return cus.ID, nil
}
