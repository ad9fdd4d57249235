package stripe

import "strings"

// Stripe-ish normalization used ONLY for the /billing/subscription status field
func NormalizeSubscriptionStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "no_subscription"
	}
	switch strings.TrimSpace(*s) {
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(*s)
	}
}
