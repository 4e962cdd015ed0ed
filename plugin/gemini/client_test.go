package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(&Config{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestGenerateContent_RequestShape(t *testing.T) {
	var captured generateContentRequest
	var capturedPath, capturedKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.URL.Query().Get("key")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"reply\":\"ok\",\"feedback\":\"\"}"}]}}]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	history := []Message{
		{Role: "user", Content: "Hi"},
		{Role: "ai", Content: "Hello! How are you?"},
	}
	raw, err := client.GenerateContent(context.Background(), "SYSTEM RULES", history, "I am fine thank you")
	require.NoError(t, err)

	reply, err := ParseChatReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Reply)

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", capturedPath)
	assert.Equal(t, "test-key", capturedKey)
	assert.Equal(t, "SYSTEM RULES", captured.SystemInstruction.Parts[0].Text)

	// History roles translate user->user, anything else->model; current message last.
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	assert.Equal(t, "I am fine thank you", captured.Contents[2].Parts[0].Text)

	assert.Equal(t, 0.8, captured.GenerationConfig.Temperature)
	assert.Equal(t, 1024, captured.GenerationConfig.MaxOutputTokens)
}

func TestGenerateContent_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.GenerateContent(context.Background(), "rules", nil, "hello")
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Body, "quota exceeded")
}

func TestGenerateContent_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := testClient(t, server.URL)
	_, err := client.GenerateContent(context.Background(), "rules", nil, "hello")
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestGenerateContent_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, err := NewClient(&Config{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: server.URL,
		Timeout: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "rules", nil, "hello")
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(&Config{Model: "gemini-2.0-flash", BaseURL: "https://example.com"})
	assert.Error(t, err)
}
