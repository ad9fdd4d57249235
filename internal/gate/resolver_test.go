package gate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNavigator struct {
	mu   sync.Mutex
	urls []string
}

func (n *fakeNavigator) Replace(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urls = append(n.urls, url)
}

func (n *fakeNavigator) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.urls...)
}

const (
	dashboardURL    = "https://app.example/dashboard"
	subscriptionURL = "https://app.example/settings/billing"
)

func newTestResolver() (*Resolver, *fakeNavigator) {
	nav := &fakeNavigator{}
	return NewResolver(nav, dashboardURL, subscriptionURL), nav
}

func TestResolverLoadingUntilBothSettle(t *testing.T) {
	t.Run("subscription first", func(t *testing.T) {
		r, nav := newTestResolver()
		assert.Equal(t, Loading, r.Decision())

		d := r.SetSubscription(SubscriptionSnapshot{Tier: "pro"}, nil)
		assert.Equal(t, Loading, d, "must not speculatively resolve on partial data")
		assert.Empty(t, nav.calls())

		d = r.SetTrial(TrialSnapshot{HasTrial: false, Status: TrialNone}, nil)
		assert.Equal(t, RedirectToDashboard, d)
	})

	t.Run("trial first", func(t *testing.T) {
		r, nav := newTestResolver()

		d := r.SetTrial(TrialSnapshot{HasTrial: false, Status: TrialNone}, nil)
		assert.Equal(t, Loading, d)
		assert.Empty(t, nav.calls())

		d = r.SetSubscription(SubscriptionSnapshot{Tier: "pro"}, nil)
		assert.Equal(t, RedirectToDashboard, d)
	})
}

func TestDecidePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		sub   SubscriptionSnapshot
		trial TrialSnapshot
		want  Decision
	}{
		{
			name:  "no tier and no trial offers the trial",
			sub:   SubscriptionSnapshot{Tier: ""},
			trial: TrialSnapshot{HasTrial: false},
			want:  OfferTrial,
		},
		{
			name:  "none tier and no trial offers the trial",
			sub:   SubscriptionSnapshot{Tier: "none"},
			trial: TrialSnapshot{HasTrial: false, Status: TrialNone},
			want:  OfferTrial,
		},
		{
			name:  "paid tier redirects to dashboard",
			sub:   SubscriptionSnapshot{Tier: "pro"},
			trial: TrialSnapshot{HasTrial: false},
			want:  RedirectToDashboard,
		},
		{
			name:  "active trial redirects to dashboard",
			sub:   SubscriptionSnapshot{Tier: "none"},
			trial: TrialSnapshot{HasTrial: true, Status: TrialActive},
			want:  RedirectToDashboard,
		},
		{
			name:  "active trial plus paid tier still redirects to dashboard",
			sub:   SubscriptionSnapshot{Tier: "pro"},
			trial: TrialSnapshot{HasTrial: true, Status: TrialActive},
			want:  RedirectToDashboard,
		},
		{
			name:  "expired trial on free tier redirects to subscription page",
			sub:   SubscriptionSnapshot{Tier: "free"},
			trial: TrialSnapshot{HasTrial: true, Status: TrialExpired},
			want:  RedirectToSubscription,
		},
		{
			name:  "used trial without entitlement redirects to subscription page",
			sub:   SubscriptionSnapshot{Tier: "none"},
			trial: TrialSnapshot{HasTrial: true, Status: TrialUsed},
			want:  RedirectToSubscription,
		},
		{
			name:  "paid tier wins over exhausted trial",
			sub:   SubscriptionSnapshot{Tier: "enterprise"},
			trial: TrialSnapshot{HasTrial: true, Status: TrialConverted},
			want:  RedirectToDashboard,
		},
		{
			name:  "cancelled trial without entitlement redirects to subscription page",
			sub:   SubscriptionSnapshot{Tier: "free"},
			trial: TrialSnapshot{HasTrial: true, Status: TrialCancelled},
			want:  RedirectToSubscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.sub, tt.trial))
		})
	}
}

func TestResolverNavigatesAtMostOnce(t *testing.T) {
	r, nav := newTestResolver()

	r.SetSubscription(SubscriptionSnapshot{Tier: "pro"}, nil)
	r.SetTrial(TrialSnapshot{HasTrial: false, Status: TrialNone}, nil)
	require.Equal(t, []string{dashboardURL}, nav.calls())

	// Re-evaluating on unchanged settled inputs must not navigate again.
	for i := 0; i < 5; i++ {
		r.SetSubscription(SubscriptionSnapshot{Tier: "pro"}, nil)
		r.SetTrial(TrialSnapshot{HasTrial: false, Status: TrialNone}, nil)
		assert.Equal(t, RedirectToDashboard, r.Decision())
	}
	assert.Equal(t, []string{dashboardURL}, nav.calls())
}

func TestResolverOfferTrialDoesNotNavigate(t *testing.T) {
	r, nav := newTestResolver()

	r.SetSubscription(SubscriptionSnapshot{Tier: "none"}, nil)
	d := r.SetTrial(TrialSnapshot{HasTrial: false, Status: TrialNone}, nil)

	assert.Equal(t, OfferTrial, d)
	assert.Empty(t, nav.calls())
}

func TestResolverSubscriptionPageRedirect(t *testing.T) {
	r, nav := newTestResolver()

	r.SetSubscription(SubscriptionSnapshot{Tier: "free"}, nil)
	d := r.SetTrial(TrialSnapshot{HasTrial: true, Status: TrialExpired}, nil)

	assert.Equal(t, RedirectToSubscription, d)
	assert.Equal(t, []string{subscriptionURL}, nav.calls())
}

func TestResolverQueryFailureIsUnavailable(t *testing.T) {
	r, nav := newTestResolver()

	d := r.SetSubscription(SubscriptionSnapshot{}, errors.New("connection refused"))
	assert.Equal(t, Loading, d, "one settled input is still partial data")

	d = r.SetTrial(TrialSnapshot{HasTrial: false, Status: TrialNone}, nil)
	assert.Equal(t, Unavailable, d, "unknown entitlement must not resolve to OfferTrial")
	assert.Empty(t, nav.calls())
}

func TestResolverResetAllowsRetry(t *testing.T) {
	r, _ := newTestResolver()

	r.SetSubscription(SubscriptionSnapshot{}, errors.New("boom"))
	r.SetTrial(TrialSnapshot{}, errors.New("boom"))
	require.Equal(t, Unavailable, r.Decision())

	r.Reset()
	assert.Equal(t, Loading, r.Decision())

	r.SetSubscription(SubscriptionSnapshot{Tier: "none"}, nil)
	d := r.SetTrial(TrialSnapshot{HasTrial: false, Status: TrialNone}, nil)
	assert.Equal(t, OfferTrial, d)
}

type fakeQueries struct {
	sub      SubscriptionSnapshot
	subErr   error
	trial    TrialSnapshot
	trialErr error
}

func (q fakeQueries) Subscription(ctx context.Context) (SubscriptionSnapshot, error) {
	return q.sub, q.subErr
}

func (q fakeQueries) TrialStatus(ctx context.Context) (TrialSnapshot, error) {
	return q.trial, q.trialErr
}

func TestResolverLoad(t *testing.T) {
	r, nav := newTestResolver()

	d := r.Load(context.Background(), fakeQueries{
		sub:   SubscriptionSnapshot{Tier: "pro"},
		trial: TrialSnapshot{HasTrial: false, Status: TrialNone},
	})

	assert.Equal(t, RedirectToDashboard, d)
	assert.Equal(t, []string{dashboardURL}, nav.calls())
}

func TestResolverLoadWithFailedQuery(t *testing.T) {
	r, nav := newTestResolver()

	d := r.Load(context.Background(), fakeQueries{
		subErr: errors.New("subscription service down"),
		trial:  TrialSnapshot{HasTrial: false, Status: TrialNone},
	})

	assert.Equal(t, Unavailable, d)
	assert.Empty(t, nav.calls())
}
