package billing

import "time"

// CreditAccount is the per-account billing record: current tier, credit
// balance and trial state. One row per account.
type CreditAccount struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	AccountID string `gorm:"type:uuid;not null;uniqueIndex:idx_credit_accounts_account_id" json:"account_id"`

	Tier    string  `gorm:"not null;default:'none'" json:"tier"`
	Balance float64 `gorm:"not null;default:0" json:"balance"`

	TrialStatus string     `gorm:"not null;default:'none'" json:"trial_status"`
	TrialEndsAt *time.Time `gorm:"column:trial_ends_at" json:"trial_ends_at,omitempty"`

	StripeCustomerID         *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_credit_accounts_stripe_customer_id" json:"-"`
	StripeSubscriptionID     *string `gorm:"column:stripe_subscription_id" json:"-"`
	StripeSubscriptionStatus *string `gorm:"column:stripe_subscription_status" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
