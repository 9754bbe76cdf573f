package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// BaseURL is the Strava API root. Overridable for tests.
const BaseURL = "https://www.strava.com/api/v3"

// Client is a Strava API client. The http.Client is expected to carry
// authorization (an oauth2 transport).
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *RateLimiter
}

// NewClient creates a Strava API client over an authorized http.Client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     BaseURL,
		rateLimiter: NewRateLimiter(),
	}
}

// NewClientWithBaseURL creates a client against a non-default API root.
// Used by tests to point at a local fake server.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	c := NewClient(httpClient)
	c.baseURL = baseURL
	return c
}

// ListActivities fetches one page of the athlete's most recent
// activities, newest first, up to perPage results.
func (c *Client) ListActivities(ctx context.Context, perPage int) ([]Activity, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(perPage))

	resp, err := c.get(ctx, "/athlete/activities", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activities: %w", err)
	}

	return activities, nil
}

// RateLimitStatus returns remaining requests in the 15-minute and daily
// windows.
func (c *Client) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return c.rateLimiter.Status()
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
