package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// BaseURL hosts the published weekly player stat files
	BaseURL = "https://github.com/nflverse/nflverse-data/releases/download/player_stats"

	// UserAgent for requests
	UserAgent = "gridiron/1.0 (+https://github.com/fortuna/gridiron)"

	// MinRequestInterval to stay polite with the release host
	MinRequestInterval = 2 * time.Second

	maxAttempts = 3
)

// Client downloads weekly stat CSVs with rate limiting and retries
type Client struct {
	baseURL     string
	httpClient  *http.Client
	lastRequest time.Time
	interval    time.Duration
}

// NewClient creates a stat feed client with a custom base URL
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		interval:   MinRequestInterval,
	}
}

// FetchSeason downloads and parses the weekly stat file for one season.
func (c *Client) FetchSeason(ctx context.Context, season int) ([][]string, error) {
	url := fmt.Sprintf("%s/player_stats_%d.csv", c.baseURL, season)
	return c.fetchCSV(ctx, url)
}

// fetchCSV fetches a CSV document with rate limiting and bounded retries.
func (c *Client) fetchCSV(ctx context.Context, url string) ([][]string, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			wait := c.interval - elapsed
			log.Printf("Rate limiting: waiting %v before next request", wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		records, err := c.fetchOnce(ctx, url)
		c.lastRequest = time.Now()
		if err == nil {
			return records, nil
		}
		lastErr = err
		log.Printf("⚠️  Fetch attempt %d/%d failed for %s: %v", attempt, maxAttempts, url, err)

		if attempt < maxAttempts {
			backoff := time.Duration(attempt) * 2 * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("fetching %s: %w", url, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("feed returned no data rows")
	}

	return records, nil
}
