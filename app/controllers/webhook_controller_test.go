package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookOrderSuccess(t *testing.T) {
	h := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/webhook", map[string]interface{}{
		"type":   "order",
		"branch": "kosmonavt",
		"customer": map[string]string{
			"name": "Aziz", "phone": "+998901234567", "location": "Chilonzor 9",
		},
		"items": []map[string]interface{}{
			{"name": "Chizburger", "quantity": 2, "total": 56000},
		},
		"total": 56000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
}

func TestWebhookContactSuccess(t *testing.T) {
	h := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/webhook", map[string]interface{}{
		"type": "contact",
		"customer": map[string]string{
			"name": "Dilnoza", "phone": "+998935551122",
		},
		"message": "Salom",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
}

func TestWebhookUnknownTypeStillSucceeds(t *testing.T) {
	h := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/webhook", map[string]interface{}{
		"type": "mystery", "payload": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
}

func TestWebhookInvalidOrderReturnsErrorEnvelope(t *testing.T) {
	h := newAPI(t)

	// Missing customer.phone and items.
	rec := doJSON(t, h, http.MethodPost, "/webhook", map[string]interface{}{
		"type":     "order",
		"customer": map[string]string{"name": "Aziz"},
		"total":    1000,
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"error"`)
	assert.Contains(t, rec.Body.String(), `"message"`)
}

func TestWebhookMalformedJSON(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"error"`)
}

func TestHealth(t *testing.T) {
	h := newAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
