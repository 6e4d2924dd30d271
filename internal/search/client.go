package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ziadkadry99/pod-search/internal/archive"
)

// DefaultEndpoint is the search service the page talks to.
const DefaultEndpoint = "http://localhost:5001/search"

// DefaultK is the number of results requested from the search service.
const DefaultK = 10

// Client queries the remote search service.
type Client struct {
	endpoint string
	k        int
	http     *http.Client
}

// NewClient creates a Client for endpoint. A zero timeout leaves requests
// bounded only by their context.
func NewClient(endpoint string, k int, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if k <= 0 {
		k = DefaultK
	}
	return &Client{
		endpoint: endpoint,
		k:        k,
		http:     &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured search URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Query asks the service for the k best matches of q.
func (c *Client) Query(ctx context.Context, q string) ([]Result, error) {
	u := c.endpoint + "?q=" + encodeComponent(q) + "&k=" + strconv.Itoa(c.k)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &archive.NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, archive.NewFetchError(u, resp.StatusCode)
	}

	var raw []rawResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &archive.ParseError{URL: u, Err: err}
	}

	results := make([]Result, len(raw))
	for i, r := range raw {
		results[i] = r.Normalize()
	}
	return results, nil
}

// encodeComponent percent-encodes a query value with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
