package workflow

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/parse-cv", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "7", r.FormValue("userId"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cv.pdf", header.Filename)
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-fake", string(body))

		json.NewEncoder(w).Encode(map[string]string{
			"text":        "extracted text",
			"sessionId":   "abc-123",
			"originalUrl": "https://files.example/cv.pdf",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.ParseCV(context.Background(), 7, "cv.pdf", strings.NewReader("%PDF-fake"))
	require.NoError(t, err)
	assert.Equal(t, "extracted text", result.Text)
	assert.Equal(t, "abc-123", result.SessionID)
	assert.Equal(t, "https://files.example/cv.pdf", result.OriginalURL)
}

func TestOptimize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/optimize-cv", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "session-1", req["sessionId"])
		assert.Equal(t, "current", req["currentText"])
		assert.Equal(t, "shorten it", req["message"])

		json.NewEncoder(w).Encode(map[string]string{
			"type":          "pdf_update",
			"message":       "Done.",
			"optimizedText": "shorter",
			"draftUrl":      "https://files.example/draft.pdf",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Optimize(context.Background(), OptimizeRequest{
		SessionID:   "session-1",
		CurrentText: "current",
		Instruction: "shorten it",
	})
	require.NoError(t, err)
	assert.Equal(t, KindDocumentUpdate, result.Kind)
	assert.Equal(t, "shorter", result.OptimizedText)
}

func TestOptimizeDefaultsMissingKindToReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "hi"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Optimize(context.Background(), OptimizeRequest{SessionID: "s", CurrentText: " ", Instruction: "hi"})
	require.NoError(t, err)
	assert.Equal(t, KindReply, result.Kind)
}

func TestOptimizeRejectsUnknownKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"type": "hologram"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Optimize(context.Background(), OptimizeRequest{SessionID: "s", CurrentText: "t", Instruction: "i"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hologram")
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow execution failed", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Finalize(context.Background(), "session-1", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "workflow execution failed")
}

func TestSubmitContact(t *testing.T) {
	var got ContactPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contact-us", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	err := client.SubmitContact(context.Background(), ContactPayload{
		Email:   "a@b.com",
		Subject: "Hello",
		Message: "Hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.AnalyzeBusiness(ctx, "https://maps.example/place")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
