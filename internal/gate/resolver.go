package gate

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Navigator performs a full page navigation, replacing the current history
// entry so back-navigation cannot resubmit the flow.
type Navigator interface {
	Replace(url string)
}

// Queries is the read side of the two remote billing contracts.
type Queries interface {
	Subscription(ctx context.Context) (SubscriptionSnapshot, error)
	TrialStatus(ctx context.Context) (TrialSnapshot, error)
}

// Resolver reconciles the two independently-settling snapshots into one
// Decision and fires at most one redirect, no matter how often it is
// re-evaluated.
type Resolver struct {
	nav             Navigator
	dashboardURL    string
	subscriptionURL string

	mu        sync.Mutex
	sub       *SubscriptionSnapshot
	subErr    error
	trial     *TrialSnapshot
	trialErr  error
	navigated bool
}

func NewResolver(nav Navigator, dashboardURL, subscriptionURL string) *Resolver {
	return &Resolver{
		nav:             nav,
		dashboardURL:    dashboardURL,
		subscriptionURL: subscriptionURL,
	}
}

// Load issues both queries concurrently, waits for both to settle and
// returns the resulting decision. The redirect side effect (if any) has
// already fired by the time Load returns.
func (r *Resolver) Load(ctx context.Context, qs Queries) Decision {
	var g errgroup.Group
	g.Go(func() error {
		snap, err := qs.Subscription(ctx)
		r.SetSubscription(snap, err)
		return err
	})
	g.Go(func() error {
		snap, err := qs.TrialStatus(ctx)
		r.SetTrial(snap, err)
		return err
	})
	_ = g.Wait() // failures are already recorded per query
	return r.Decision()
}

// SetSubscription records the subscription query settling, with either a
// snapshot or an error, and re-evaluates the gate.
func (r *Resolver) SetSubscription(snap SubscriptionSnapshot, err error) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.sub, r.subErr = nil, err
	} else {
		r.sub, r.subErr = &snap, nil
	}
	return r.evaluateLocked()
}

// SetTrial records the trial query settling and re-evaluates the gate.
func (r *Resolver) SetTrial(snap TrialSnapshot, err error) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.trial, r.trialErr = nil, err
	} else {
		r.trial, r.trialErr = &snap, nil
	}
	return r.evaluateLocked()
}

// Decision recomputes the current decision from the recorded snapshots.
// It never caches: the decision is always derived from the data.
func (r *Resolver) Decision() Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decideLocked()
}

// Reset clears both query results so the gate can be loaded again, e.g.
// after an Unavailable decision when the user hits retry.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sub, r.subErr = nil, nil
	r.trial, r.trialErr = nil, nil
}

func (r *Resolver) decideLocked() Decision {
	subPending := r.sub == nil && r.subErr == nil
	trialPending := r.trial == nil && r.trialErr == nil
	if subPending || trialPending {
		return Loading
	}
	// A failed query means the entitlement state is unknown. Resolving to
	// OfferTrial here could offer a trial to an already-entitled user.
	if r.subErr != nil || r.trialErr != nil {
		return Unavailable
	}
	return Decide(*r.sub, *r.trial)
}

func (r *Resolver) evaluateLocked() Decision {
	d := r.decideLocked()
	if r.navigated {
		return d
	}
	switch d {
	case RedirectToDashboard:
		r.navigated = true
		r.nav.Replace(r.dashboardURL)
	case RedirectToSubscription:
		r.navigated = true
		r.nav.Replace(r.subscriptionURL)
	}
	return d
}
