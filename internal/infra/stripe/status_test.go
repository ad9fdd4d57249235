package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestNormalizeSubscriptionStatus(t *testing.T) {
	assert.Equal(t, "no_subscription", NormalizeSubscriptionStatus(nil))
	assert.Equal(t, "no_subscription", NormalizeSubscriptionStatus(strptr("  ")))

	assert.Equal(t, "active", NormalizeSubscriptionStatus(strptr("active")))
	assert.Equal(t, "trialing", NormalizeSubscriptionStatus(strptr(" trialing ")))
	assert.Equal(t, "past_due", NormalizeSubscriptionStatus(strptr("unpaid")))
	assert.Equal(t, "past_due", NormalizeSubscriptionStatus(strptr("past_due")))
	assert.Equal(t, "canceled", NormalizeSubscriptionStatus(strptr("incomplete_expired")))

	// unknown statuses pass through trimmed
	assert.Equal(t, "paused", NormalizeSubscriptionStatus(strptr(" paused ")))
}
