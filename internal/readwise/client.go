// Package readwise implements the paginated Readwise export client.
package readwise

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"readwise2org/internal/logger"
	"readwise2org/internal/models"
)

// ErrUnauthorized is returned when Readwise rejects the token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrMalformedResponse is returned when a response body is not the
// expected export page shape.
var ErrMalformedResponse = errors.New("malformed export response")

// PageHandler receives the documents of one export page, in server order.
// Returning an error aborts the remaining pagination.
type PageHandler func(results []models.Book) error

// Config holds export client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches the full highlight export, one page at a time.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a new export client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Export walks the export endpoint until the server stops returning a
// cursor, handing each page's results to handle as soon as the page is
// decoded. updatedAfter applies only to the first request and is never
// combined with a cursor. There are no retries; the first failed page
// aborts the export.
func (c *Client) Export(ctx context.Context, token string, updatedAfter string, handle PageHandler) error {
	cursor := ""
	for page := 1; ; page++ {
		resp, err := c.fetchPage(ctx, token, cursor, updatedAfter)
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", page, err)
		}

		logger.Debug("fetched export page", map[string]interface{}{
			"page":      page,
			"documents": len(resp.Results),
			"has_next":  resp.HasNext(),
		})

		if err := handle(resp.Results); err != nil {
			return err
		}

		if !resp.HasNext() {
			return nil
		}
		cursor = *resp.NextPageCursor
	}
}

// buildURL appends pagination parameters. The cursor takes precedence:
// updatedAfter is only sent while no cursor has been seen yet.
func (c *Client) buildURL(cursor, updatedAfter string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}

	q := u.Query()
	switch {
	case cursor != "":
		q.Set("pageCursor", cursor)
	case updatedAfter != "":
		q.Set("updatedAfter", updatedAfter)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) fetchPage(ctx context.Context, token, cursor, updatedAfter string) (*models.ExportPage, error) {
	reqURL, err := c.buildURL(cursor, updatedAfter)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Error("readwise export request failed: Unauthorized", ErrUnauthorized, map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status: %d", resp.StatusCode)
		logger.Error("readwise export request failed", err, map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, err
	}

	// A missing results field decodes to a nil slice and is treated as an
	// empty page rather than an error.
	var page models.ExportPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &page, nil
}
