package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-voiceshop-be/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func paymentServer(t *testing.T, status int, body map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}))
}

func TestStartRelaysTransaction(t *testing.T) {
	server := paymentServer(t, http.StatusOK, map[string]interface{}{
		"transactionId": "0xabc123",
		"data":          map[string]interface{}{"gas": "21000"},
	})
	defer server.Close()

	result, err := NewClient(server.URL).Start(context.Background(), &Request{ProductID: "nft-001"})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "0xabc123", result.TransactionID)
	assert.Equal(t, "21000", result.Data["gas"])
}

func TestStartHonorsFailureEnvelopeOn200(t *testing.T) {
	server := paymentServer(t, http.StatusOK, map[string]interface{}{
		"success": false,
		"error":   "insufficient funds",
	})
	defer server.Close()

	result, err := NewClient(server.URL).Start(context.Background(), &Request{ProductID: "nft-001"})

	assert.Nil(t, result)
	assert.Equal(t, apperr.KindUpstreamUnavailable, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestStartReportsHTTPError(t *testing.T) {
	server := paymentServer(t, http.StatusBadGateway, map[string]interface{}{
		"error": "settlement service down",
	})
	defer server.Close()

	result, err := NewClient(server.URL).Confirm(context.Background())

	assert.Nil(t, result)
	assert.Equal(t, apperr.KindUpstreamUnavailable, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "settlement service down")
}
