package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/notaflow/notaflow/internal/common"
	"github.com/notaflow/notaflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(baseURL)
	c.retryOpts.InitialDelay = time.Millisecond
	c.retryOpts.MaxDelay = 2 * time.Millisecond
	return c
}

func TestClient_ProcessInvoice(t *testing.T) {
	raw := model.RawInvoice{
		StoreName:     "Mercado Central",
		InvoiceNumber: "123",
		InvoiceDate:   "10/06/2024",
		TotalAmount:   10.5,
		Items: []model.RawLineItem{
			{Name: "Leite", Quantity: 1, UnitPrice: 10.5, TotalPrice: 10.5},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/scan-invoice", r.URL.Path)

		var req scanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://sefaz.example/nfce?p=1", req.URL)
		assert.Equal(t, "user-1", req.UserID)

		_ = json.NewEncoder(w).Encode(scanResponse{Success: true, Cached: true, Data: &raw})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, cached, err := client.ProcessInvoice(context.Background(), "https://sefaz.example/nfce?p=1", "user-1")

	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, raw, got)
}

func TestClient_ProcessInvoice_BackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(scanResponse{Success: false, Error: "invalid receipt"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, _, err := client.ProcessInvoice(context.Background(), "https://sefaz.example/nfce?p=1", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrScraperRejected))
	assert.Contains(t, err.Error(), "invalid receipt")
}

func TestClient_ProcessInvoice_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	raw := model.RawInvoice{StoreName: "Loja", InvoiceNumber: "1", Items: []model.RawLineItem{{Name: "x"}}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(scanResponse{Success: true, Data: &raw})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, _, err := client.ProcessInvoice(context.Background(), "https://sefaz.example/nfce?p=1", "")

	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ProcessInvoice_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, _, err := client.ProcessInvoice(context.Background(), "https://sefaz.example/nfce?p=1", "")

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
