package gen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stageai/api/internal/config"
)

func newTestChatClient(url string) *ChatClient {
	return NewChatClient(config.TextConfig{
		BaseURL: url,
		APIKey:  "test-key",
		Model:   "gpt-3.5-turbo",
		Timeout: time.Second,
	})
}

func TestChatClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "hello", req.Messages[0].Content)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "hi there"}},
			},
		})
	}))
	defer srv.Close()

	reply, err := newTestChatClient(srv.URL).Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestChatClientMissingKey(t *testing.T) {
	client := NewChatClient(config.TextConfig{BaseURL: "http://localhost:1", Timeout: time.Second})

	_, err := client.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatClientUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestChatClient(srv.URL).Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestChatClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewChatClient(config.TextConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 50 * time.Millisecond,
	})

	_, err := client.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestChatClientMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := newTestChatClient(srv.URL).Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestChatClientEmptyPrompt(t *testing.T) {
	_, err := newTestChatClient("http://localhost:1").Complete(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}
