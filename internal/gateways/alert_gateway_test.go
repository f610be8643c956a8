package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)

	_, err = NewClient(&Config{})
	assert.Error(t, err)
}

func TestClient_Push(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/alerts/push", r.URL.Path)

		var req PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.OrderID)

		now := time.Now().UTC()
		_ = json.NewEncoder(w).Encode(PushResponse{
			ReminderID:  req.ReminderID,
			Status:      StatusDelivered,
			DeliveredAt: &now,
			ProviderID:  "mock-1",
			ProcessedAt: now,
		})
	}))
	defer srv.Close()

	client, err := NewClient(&Config{URL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	resp, err := client.Push(context.Background(), &PushRequest{
		ReminderID: "r-1",
		OrderID:    42,
		Title:      "Payment overdue",
		Body:       "Order #42 has an overdue credit payment!",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, resp.Status)
	assert.Equal(t, "r-1", resp.ReminderID)

	stats := client.GetStats()
	assert.Equal(t, int64(1), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.SuccessfulReqs)
}

func TestClient_Push_RetriesOnFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(PushResponse{Status: StatusDelivered})
	}))
	defer srv.Close()

	client, err := NewClient(&Config{
		URL:        srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 3,
		RetryDelay: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	resp, err := client.Push(context.Background(), &PushRequest{ReminderID: "r-2", OrderID: 1})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, resp.Status)
	assert.Equal(t, int64(3), calls.Load())

	stats := client.GetStats()
	assert.Equal(t, int64(2), stats.FailedReqs)
}

func TestClient_Push_GivesUpAfterMaxRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{
		URL:        srv.URL,
		Timeout:    time.Second,
		MaxRetries: 1,
		RetryDelay: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.Push(context.Background(), &PushRequest{ReminderID: "r-3"})
	assert.Error(t, err)
}

func TestClient_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{URL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	assert.True(t, client.Healthy(context.Background()))

	srv.Close()
	assert.False(t, client.Healthy(context.Background()))
}
