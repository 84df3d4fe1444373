package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// RequestError reports a transport failure or a non-2xx response from
// the statistics API.
type RequestError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// PayloadError reports a response body that did not decode into the
// expected shape.
type PayloadError struct {
	URL string
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// Client fetches pandemic statistics from the public REST API.
// No caching is performed, every call hits the network, and the client
// is safe for concurrent use.
type Client struct {
	BaseURL string
	http    *http.Client
}

// NewClient creates a client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Summary fetches the global report: per-country cumulative totals plus
// the report timestamp.
func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	url := c.BaseURL + "/summary"
	if err := c.getJSON(ctx, url, &summary); err != nil {
		return nil, err
	}
	log.Debug().Str("url", url).Int("countries", len(summary.Countries)).
		Time("report_date", summary.Date).Msg("Fetched global summary")
	return &summary, nil
}

// CountrySeries fetches the per-date cumulative counts for one country
// and one status.
func (c *Client) CountrySeries(ctx context.Context, slug string, status Status) ([]SeriesPoint, error) {
	var points []SeriesPoint
	url := fmt.Sprintf("%s/total/country/%s/status/%s", c.BaseURL, slug, status)
	if err := c.getJSON(ctx, url, &points); err != nil {
		return nil, err
	}
	log.Debug().Str("url", url).Str("country", slug).Stringer("status", status).
		Int("points", len(points)).Msg("Fetched country series")
	return points, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &RequestError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close() // nolint: errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{URL: url, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &PayloadError{URL: url, Err: err}
	}
	return nil
}
