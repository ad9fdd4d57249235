package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// APIError is a non-2xx answer from the billing backend. Message carries
// the server-provided human-readable text when present.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("billing api: [%d] %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("billing api: [%d]", e.StatusCode)
}

// Client talks to the billing backend's subscription and trial endpoints
// on behalf of one authenticated account. Transient 5xx/429 failures and
// connection errors are retried by the underlying transport; timeouts and
// backoff live there too, not in the gate logic.
type Client struct {
	base  string
	token string
	http  *retryablehttp.Client
}

// NewClient builds a Client for one account. token is the account's JWT;
// the account context is explicit here, never ambient.
func NewClient(baseURL, token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  rc,
	}
}

// Subscription fetches the account's current billing tier. A null tier is
// reported as the "none" sentinel.
func (c *Client) Subscription(ctx context.Context) (SubscriptionSnapshot, error) {
	var body struct {
		Tier *struct {
			Name string `json:"name"`
		} `json:"tier"`
	}
	if err := c.do(ctx, http.MethodGet, "/billing/subscription", nil, &body); err != nil {
		return SubscriptionSnapshot{}, err
	}
	if body.Tier == nil {
		return SubscriptionSnapshot{Tier: "none"}, nil
	}
	return SubscriptionSnapshot{Tier: body.Tier.Name}, nil
}

// TrialStatus fetches whether a trial exists and its lifecycle status.
func (c *Client) TrialStatus(ctx context.Context) (TrialSnapshot, error) {
	var body struct {
		HasTrial bool   `json:"has_trial"`
		Status   string `json:"trial_status"`
	}
	if err := c.do(ctx, http.MethodGet, "/billing/trial/status", nil, &body); err != nil {
		return TrialSnapshot{}, err
	}
	if body.Status == "" {
		body.Status = string(TrialNone)
	}
	return TrialSnapshot{HasTrial: body.HasTrial, Status: TrialStatus(body.Status)}, nil
}

// StartTrial asks the trial service to start a trial and create a checkout
// session with the given callback URLs.
func (c *Client) StartTrial(ctx context.Context, req ActivationRequest) (ActivationResult, error) {
	var result ActivationResult
	if err := c.do(ctx, http.MethodPost, "/billing/trial/start", req, &result); err != nil {
		return ActivationResult{}, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
