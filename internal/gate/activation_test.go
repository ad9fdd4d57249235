package gate

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *fakeNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fakeStarter struct {
	mu       sync.Mutex
	requests []ActivationRequest
	result   ActivationResult
	err      error

	// when set, StartTrial signals entered and blocks until released
	entered  chan struct{}
	released chan struct{}
}

func (s *fakeStarter) StartTrial(ctx context.Context, req ActivationRequest) (ActivationResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.released
	}
	return s.result, s.err
}

func (s *fakeStarter) calls() []ActivationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ActivationRequest(nil), s.requests...)
}

func TestStartTrialSuccessNavigatesOnce(t *testing.T) {
	starter := &fakeStarter{result: ActivationResult{CheckoutURL: "https://billing/session/1"}}
	nav := &fakeNavigator{}
	notifier := &fakeNotifier{}
	init := NewInitiator(starter, nav, notifier, "https://app.example/")

	init.StartTrial(context.Background())

	require.Len(t, starter.calls(), 1)
	assert.Equal(t, ActivationRequest{
		SuccessURL: "https://app.example/dashboard?trial=started",
		CancelURL:  "https://app.example/activate-trial",
	}, starter.calls()[0])
	assert.Equal(t, []string{"https://billing/session/1"}, nav.calls())
	assert.Empty(t, notifier.all(), "a clean success must not toast")
}

func TestStartTrialMissingCheckoutURL(t *testing.T) {
	starter := &fakeStarter{result: ActivationResult{}}
	nav := &fakeNavigator{}
	notifier := &fakeNotifier{}
	init := NewInitiator(starter, nav, notifier, "https://app.example")

	init.StartTrial(context.Background())

	assert.Empty(t, nav.calls(), "never navigate to an undefined location")
	assert.Equal(t, []string{fallbackStartMessage}, notifier.all())
}

func TestStartTrialFailureUsesServerMessage(t *testing.T) {
	starter := &fakeStarter{err: &APIError{StatusCode: 400, Message: "This account has already used its trial"}}
	nav := &fakeNavigator{}
	notifier := &fakeNotifier{}
	init := NewInitiator(starter, nav, notifier, "https://app.example")

	init.StartTrial(context.Background())

	assert.Empty(t, nav.calls())
	assert.Equal(t, []string{"This account has already used its trial"}, notifier.all())
}

func TestStartTrialFailureWithoutMessageFallsBack(t *testing.T) {
	starter := &fakeStarter{err: &APIError{StatusCode: 502}}
	nav := &fakeNavigator{}
	notifier := &fakeNotifier{}
	init := NewInitiator(starter, nav, notifier, "https://app.example")

	init.StartTrial(context.Background())

	assert.Equal(t, []string{fallbackStartMessage}, notifier.all())
}

func TestStartTrialSingleFlight(t *testing.T) {
	starter := &fakeStarter{
		result:   ActivationResult{CheckoutURL: "https://billing/session/1"},
		entered:  make(chan struct{}),
		released: make(chan struct{}),
	}
	nav := &fakeNavigator{}
	notifier := &fakeNotifier{}
	init := NewInitiator(starter, nav, notifier, "https://app.example")

	done := make(chan struct{})
	go func() {
		init.StartTrial(context.Background())
		close(done)
	}()
	<-starter.entered

	// Second click while the first request is in flight: a no-op.
	init.StartTrial(context.Background())

	close(starter.released)
	<-done

	assert.Len(t, starter.calls(), 1, "exactly one outbound request per click burst")
	assert.Equal(t, []string{"https://billing/session/1"}, nav.calls())
}

func TestStartTrialFailureReleasesFlagForRetry(t *testing.T) {
	starter := &fakeStarter{err: &APIError{StatusCode: 500, Message: "stripe unavailable"}}
	nav := &fakeNavigator{}
	notifier := &fakeNotifier{}
	init := NewInitiator(starter, nav, notifier, "https://app.example")

	init.StartTrial(context.Background())
	require.Len(t, starter.calls(), 1)

	// Retry is simply clicking again.
	starter.err = nil
	starter.result = ActivationResult{CheckoutURL: "https://billing/session/2"}
	init.StartTrial(context.Background())

	assert.Len(t, starter.calls(), 2)
	assert.Equal(t, []string{"https://billing/session/2"}, nav.calls())
	assert.Equal(t, []string{"stripe unavailable"}, notifier.all(), "one notification per failed attempt")
}
