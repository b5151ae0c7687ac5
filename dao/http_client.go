// api/dao/http_client.go
package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	score_errors "github.com/farrowscore/api/errors"
)

const userAgent = "FarrowScore/1.0"

// NewHTTPClient returns the client shared by every upstream DAO.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// doJSON performs one request/response exchange with JSON bodies. Transport,
// status and decode failures are all reported as ErrSourceUnavailable.
func doJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", score_errors.ErrSourceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", score_errors.ErrSourceUnavailable, method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s: status %d", score_errors.ErrSourceUnavailable, method, url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", score_errors.ErrSourceUnavailable, url, err)
	}
	return nil
}

func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, dest interface{}) error {
	return doJSON(ctx, client, http.MethodGet, url, headers, nil, dest)
}
