package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ChunkLine builds one wire line carrying a content/reasoning delta.
// Empty fields are omitted from the payload, matching provider behavior.
func ChunkLine(t *testing.T, reasoning, content string) string {
	t.Helper()

	delta := map[string]string{}
	if reasoning != "" {
		delta["reasoning_content"] = reasoning
	}
	if content != "" {
		delta["content"] = content
	}

	payload, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"delta": delta},
		},
	})
	if err != nil {
		t.Fatalf("Failed to marshal chunk: %v", err)
	}

	return fmt.Sprintf("data: %s\n", payload)
}

// Stream joins wire lines into a complete event stream, terminated by
// the [DONE] sentinel
func Stream(lines ...string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("data: [DONE]\n")
	return sb.String()
}

// StreamServer starts an httptest server that answers every request with
// the given event stream body. The caller owns closing the server.
func StreamServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, body)
	}))
}

// StatusServer starts an httptest server that answers every request with
// the given status code and body
func StatusServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
}
