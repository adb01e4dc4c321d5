// Package source fetches the authoritative set of active subscribers from
// the remote directory's REST endpoint.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subsync/pkg/subsync/models"
)

// ErrSourceUnavailable indicates the subscriber directory could not be
// reached or answered with a non-success status. Fatal for the run; callers
// do not retry.
var ErrSourceUnavailable = errors.New("subscriber source unavailable")

const (
	subscriptionsPath = "/rest/v1/whatsapp_subscriptions"
	requestTimeout    = 30 * time.Second
)

// Client reads active subscribers from a Supabase-style REST endpoint.
type Client struct {
	baseURL string
	key     string
	httpc   *http.Client
}

// NewClient builds a Client for the given base URL and service key.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     serviceKey,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

type rawSubscriber struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
}

// FetchActiveSubscribers issues a single GET filtered server-side to active
// records, ordered by creation time ascending so append order is stable
// across runs. Phones are normalized to digits; records whose phone
// normalizes to empty are retained and filtered downstream.
func (c *Client) FetchActiveSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	q := url.Values{}
	q.Set("select", "first_name,last_name,phone,email,is_active")
	q.Set("is_active", "eq.true")
	q.Set("order", "created_at.asc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+subscriptionsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build subscriber request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSourceUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []rawSubscriber
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSourceUnavailable, err)
	}

	subs := make([]models.Subscriber, 0, len(raw))
	for _, r := range raw {
		subs = append(subs, models.Subscriber{
			FirstName: strings.TrimSpace(r.FirstName),
			LastName:  strings.TrimSpace(r.LastName),
			Phone:     models.NormalizePhone(r.Phone),
			Email:     strings.TrimSpace(r.Email),
			IsActive:  r.IsActive,
		})
	}
	return subs, nil
}
