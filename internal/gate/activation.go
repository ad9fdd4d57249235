package gate

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
)

// Notifier surfaces a non-blocking, user-visible notification.
type Notifier interface {
	Notify(message string)
}

// TrialStarter is the write side of the trial service contract.
type TrialStarter interface {
	StartTrial(ctx context.Context, req ActivationRequest) (ActivationResult, error)
}

const fallbackStartMessage = "Could not start your trial. Please try again."

// Initiator starts a trial at most once per user action and hands off to
// the externally-hosted checkout page.
type Initiator struct {
	starter  TrialStarter
	nav      Navigator
	notifier Notifier
	origin   string
	inFlight atomic.Bool
}

// NewInitiator builds an Initiator. origin is the dashboard's own origin;
// the checkout success and cancel URLs are derived from it.
func NewInitiator(starter TrialStarter, nav Navigator, notifier Notifier, origin string) *Initiator {
	return &Initiator{
		starter:  starter,
		nav:      nav,
		notifier: notifier,
		origin:   strings.TrimRight(origin, "/"),
	}
}

// StartTrial runs the activation flow. While a request is in flight,
// repeated calls are no-ops: not queued, not parallelized. On success it
// navigates to the returned checkout URL; on failure it notifies once and
// leaves the page state untouched so the user can simply click again.
func (i *Initiator) StartTrial(ctx context.Context) {
	if !i.inFlight.CompareAndSwap(false, true) {
		return
	}

	req := ActivationRequest{
		// Tagged so the dashboard can show a "trial started" acknowledgement.
		SuccessURL: i.origin + "/dashboard?trial=started",
		CancelURL:  i.origin + "/activate-trial",
	}

	result, err := i.starter.StartTrial(ctx, req)
	if err != nil {
		i.notifier.Notify(startFailureMessage(err))
		i.inFlight.Store(false)
		return
	}
	if result.CheckoutURL == "" {
		// Success without a checkout URL is a contract violation. Never
		// navigate to an undefined location.
		i.notifier.Notify(fallbackStartMessage)
		i.inFlight.Store(false)
		return
	}

	// The flag deliberately stays set: control is leaving the page.
	i.nav.Replace(result.CheckoutURL)
}

func startFailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallbackStartMessage
}
