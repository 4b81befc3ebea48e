package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody SendMessageParams

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"result": map[string]interface{}{
				"message_id": 42,
				"chat":       map[string]interface{}{"id": 777},
				"text":       gotBody.Text,
			},
		})
	}))
	defer srv.Close()

	c := NewClient("TOKEN", srv.URL)
	msg, err := c.SendMessage(context.Background(), SendMessageParams{
		ChatID: 777,
		Text:   "salom",
	})
	require.NoError(t, err)

	assert.Equal(t, "/botTOKEN/sendMessage", gotPath)
	assert.Equal(t, int64(777), gotBody.ChatID)
	assert.Equal(t, "salom", gotBody.Text)
	assert.Equal(t, int64(42), msg.MessageID)
}

func TestSendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":          false,
			"description": "Bad Request: chat not found",
			"error_code":  400,
		})
	}))
	defer srv.Close()

	c := NewClient("TOKEN", srv.URL)
	_, err := c.SendMessage(context.Background(), SendMessageParams{ChatID: 1, Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestGetUpdatesAdvancesOffset(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var params map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))

		if calls == 1 {
			assert.EqualValues(t, 0, params["offset"])
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok": true,
				"result": []map[string]interface{}{
					{"update_id": 100, "message": map[string]interface{}{
						"message_id": 1,
						"chat":       map[string]interface{}{"id": 5},
						"text":       "/start",
					}},
				},
			})
			return
		}
		assert.EqualValues(t, 101, params["offset"])
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": []interface{}{}})
	}))
	defer srv.Close()

	c := NewClient("TOKEN", srv.URL)

	updates, err := c.GetUpdates(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "/start", updates[0].Message.Text)

	_, err = c.GetUpdates(context.Background(), updates[0].UpdateID+1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

type recordingHandler struct {
	got []Update
}

func (h *recordingHandler) HandleUpdate(_ context.Context, upd Update) {
	h.got = append(h.got, upd)
}

func TestPollerDispatchesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params map[string]interface{}
		json.NewDecoder(r.Body).Decode(&params)

		// First poll returns one update, then cancel so Run exits.
		if params["offset"].(float64) == 0 {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok": true,
				"result": []map[string]interface{}{
					{"update_id": 7, "message": map[string]interface{}{
						"message_id": 1,
						"chat":       map[string]interface{}{"id": 9},
						"text":       "/admin",
					}},
				},
			})
			return
		}
		cancel()
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": []interface{}{}})
	}))
	defer srv.Close()

	h := &recordingHandler{}
	p := NewPoller(NewClient("TOKEN", srv.URL), h)
	p.timeout = 0

	err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, h.got, 1)
	assert.Equal(t, "/admin", h.got[0].Message.Text)
	assert.Equal(t, int64(8), p.offset)
}

type panickingHandler struct{}

func (panickingHandler) HandleUpdate(_ context.Context, _ Update) {
	panic("boom")
}

func TestPollerSurvivesHandlerPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params map[string]interface{}
		json.NewDecoder(r.Body).Decode(&params)

		if params["offset"].(float64) == 0 {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok": true,
				"result": []map[string]interface{}{
					{"update_id": 3, "message": map[string]interface{}{
						"message_id": 1,
						"chat":       map[string]interface{}{"id": 9},
						"text":       " ",
					}},
				},
			})
			return
		}
		cancel()
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": []interface{}{}})
	}))
	defer srv.Close()

	p := NewPoller(NewClient("TOKEN", srv.URL), panickingHandler{})
	p.timeout = 0

	// The loop must swallow the panic, move past the update, and keep
	// polling until the context ends.
	var err error
	assert.NotPanics(t, func() { err = p.Run(ctx) })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(4), p.offset)
}
