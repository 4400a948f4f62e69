// Package scraper talks to the invoice scraping backend that resolves a
// fiscal-receipt QR URL into structured invoice data.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/notaflow/notaflow/internal/common"
	"github.com/notaflow/notaflow/internal/model"
	"github.com/notaflow/notaflow/internal/service"
)

// Client implements the InvoiceFetcher interface against the scraping
// backend's HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retryOpts  service.RetryOptions
}

type scanRequest struct {
	URL    string `json:"url"`
	UserID string `json:"user_id,omitempty"`
}

type scanResponse struct {
	Data    *model.RawInvoice `json:"data"`
	Error   string            `json:"error"`
	Success bool              `json:"success"`
	Cached  bool              `json:"cached"`
}

// NewClient creates a scraper client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryOpts: common.BackendRetry(),
	}
}

// ProcessInvoice asks the backend to scrape one receipt URL. The bool
// result reports whether the backend served the payload from its cache.
// Transport and 5xx failures are retried; a backend rejection is final.
func (c *Client) ProcessInvoice(ctx context.Context, invoiceURL, userID string) (model.RawInvoice, bool, error) {
	var result scanResponse

	err := common.WithRetry(ctx, func() error {
		resp, err := c.postScan(ctx, invoiceURL, userID)
		if err != nil {
			return err
		}
		result = *resp
		return nil
	}, c.retryOpts)
	if err != nil {
		return model.RawInvoice{}, false, err
	}

	if !result.Success || result.Data == nil {
		msg := result.Error
		if msg == "" {
			msg = "no invoice data returned"
		}
		return model.RawInvoice{}, false, fmt.Errorf("%w: %s", common.ErrScraperRejected, msg)
	}

	return *result.Data, result.Cached, nil
}

func (c *Client) postScan(ctx context.Context, invoiceURL, userID string) (*scanResponse, error) {
	body, err := json.Marshal(scanRequest{URL: invoiceURL, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scan-invoice", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrScraperUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %d - %s", common.ErrScraperUnavailable, resp.StatusCode, string(respBody))
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("scraper API error: %d - %s", resp.StatusCode, string(respBody)),
			Retryable: false,
		}
	}

	var result scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
