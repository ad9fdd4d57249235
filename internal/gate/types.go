// Package gate decides whether a dashboard visitor is sent straight to the
// product, bounced to the subscription page, or offered a trial, and drives
// the checkout handoff when they take the offer.
package gate

import "agent-dashboard/internal/domain/tiers"

// TrialStatus mirrors the trial service's lifecycle enum.
type TrialStatus string

const (
	TrialActive    TrialStatus = "active"
	TrialUsed      TrialStatus = "used"
	TrialExpired   TrialStatus = "expired"
	TrialCancelled TrialStatus = "cancelled"
	TrialConverted TrialStatus = "converted"
	TrialNone      TrialStatus = "none"
)

// SubscriptionSnapshot is the account's current billing tier as reported by
// the subscription service.
type SubscriptionSnapshot struct {
	Tier string `json:"tier"`
}

// Entitled reports whether the snapshot carries a paid entitlement.
func (s SubscriptionSnapshot) Entitled() bool {
	return tiers.Entitled(s.Tier)
}

// TrialSnapshot is the account's trial record as reported by the trial
// service.
type TrialSnapshot struct {
	HasTrial bool        `json:"has_trial"`
	Status   TrialStatus `json:"trial_status"`
}

// Active reports whether a trial exists and is currently running.
func (t TrialSnapshot) Active() bool {
	return t.HasTrial && t.Status == TrialActive
}

// Exhausted reports whether a trial was consumed at some point: used,
// expired, cancelled or converted to a paid plan.
func (t TrialSnapshot) Exhausted() bool {
	switch t.Status {
	case TrialUsed, TrialExpired, TrialCancelled, TrialConverted:
		return true
	default:
		return false
	}
}

// Decision is the single navigation outcome the gate produces.
type Decision string

const (
	// Loading: at least one of the two queries has not settled yet.
	Loading Decision = "loading"
	// RedirectToDashboard: the account is already entitled (paid tier or
	// active trial).
	RedirectToDashboard Decision = "redirect_to_dashboard"
	// RedirectToSubscription: the trial is exhausted; upgrading is the only
	// path forward.
	RedirectToSubscription Decision = "redirect_to_subscription"
	// OfferTrial: no entitlement and no prior trial; render the offer.
	OfferTrial Decision = "offer_trial"
	// Unavailable: a query failed. The entitlement state is unknown, so the
	// gate neither offers a trial nor redirects; the shell shows a retry.
	Unavailable Decision = "unavailable"
)

// Decide maps two settled snapshots to a decision. Precedence is fixed: a
// live trial or paid entitlement always wins over a historical used-trial
// signal, so a user who upgraded after their trial expired is not bounced
// to the subscription page.
func Decide(sub SubscriptionSnapshot, trial TrialSnapshot) Decision {
	switch {
	case trial.Active():
		return RedirectToDashboard
	case sub.Entitled():
		return RedirectToDashboard
	case trial.Exhausted():
		return RedirectToSubscription
	default:
		return OfferTrial
	}
}

// ActivationRequest carries the checkout callback URLs for a trial start.
type ActivationRequest struct {
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// ActivationResult is the trial service's answer to a successful start.
type ActivationResult struct {
	CheckoutURL string `json:"checkout_url"`
}
