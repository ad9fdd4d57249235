package billing

import (
	"testing"

	domain "agent-dashboard/internal/domain/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestBuildSubscriptionResponseNoTier(t *testing.T) {
	resp := buildSubscriptionResponse(domain.CreditAccount{
		AccountID:   "acc-1",
		Tier:        "none",
		TrialStatus: domain.TrialStatusNone,
	})

	assert.Nil(t, resp.Tier, "a null tier is the not-entitled signal for the gate")
	assert.Equal(t, "no_subscription", resp.Status)
	assert.Equal(t, domain.TrialStatusNone, resp.TrialStatus)
}

func TestBuildSubscriptionResponsePaidTier(t *testing.T) {
	resp := buildSubscriptionResponse(domain.CreditAccount{
		AccountID:                "acc-2",
		Tier:                     "pro",
		Balance:                  42,
		TrialStatus:              domain.TrialStatusConverted,
		StripeSubscriptionID:     strptr("sub_123"),
		StripeSubscriptionStatus: strptr("active"),
	})

	require.NotNil(t, resp.Tier)
	assert.Equal(t, "pro", resp.Tier.Name)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, strptr("sub_123"), resp.SubscriptionID)
	assert.Equal(t, 42.0, resp.Balance)
}

func TestBuildSubscriptionResponseTrialing(t *testing.T) {
	resp := buildSubscriptionResponse(domain.CreditAccount{
		AccountID:                "acc-3",
		Tier:                     "starter",
		TrialStatus:              domain.TrialStatusActive,
		StripeSubscriptionStatus: strptr("trialing"),
	})

	require.NotNil(t, resp.Tier)
	assert.Equal(t, "starter", resp.Tier.Name)
	assert.Equal(t, "trialing", resp.Status)
}
