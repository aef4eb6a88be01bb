package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iksnae/streamchat/testutil"
)

func newTestTransport(t *testing.T, url, token string) *TransportClient {
	t.Helper()
	db := testutil.CreateInMemoryDB(t)
	t.Cleanup(func() { db.Close() })

	creds := NewCredentialStore(db)
	if token != "" {
		if err := creds.Save(token); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	cfg := &Config{APIURL: url, Model: "test-model", Thinking: "enabled"}
	return NewTransportClient(cfg, creds)
}

func TestTransportClient_RequestShape(t *testing.T) {
	var gotAuth, gotAccept, gotContentType string
	var gotBody completionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	client := newTestTransport(t, server.URL, "sk-test")
	messages := []Message{{Role: RoleUser, Content: "Hello"}}

	body, err := client.Send(context.Background(), messages)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	defer body.Close()
	_, _ = io.ReadAll(body)

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer sk-test")
	}
	if gotAccept != "text/event-stream" {
		t.Errorf("Accept = %q, want %q", gotAccept, "text/event-stream")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want %q", gotContentType, "application/json")
	}
	if gotBody.Model != "test-model" {
		t.Errorf("request model = %q, want %q", gotBody.Model, "test-model")
	}
	if !gotBody.Stream {
		t.Error("request stream = false, want true")
	}
	if gotBody.Thinking == nil || gotBody.Thinking.Type != "enabled" {
		t.Errorf("request thinking = %+v, want type %q", gotBody.Thinking, "enabled")
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Content != "Hello" {
		t.Errorf("request messages = %+v", gotBody.Messages)
	}
}

func TestTransportClient_Unauthorized(t *testing.T) {
	server := testutil.StatusServer(t, http.StatusUnauthorized, `{"error":"bad key"}`)
	defer server.Close()

	client := newTestTransport(t, server.URL, "sk-bad")
	_, err := client.Send(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Send() error = %v, want *AuthError", err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Errorf("AuthError status = %d, want %d", authErr.Status, http.StatusUnauthorized)
	}
}

func TestTransportClient_ServerError(t *testing.T) {
	server := testutil.StatusServer(t, http.StatusInternalServerError, "upstream exploded")
	defer server.Close()

	client := newTestTransport(t, server.URL, "sk-test")
	_, err := client.Send(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Send() error = %v, want *TransportError", err)
	}
	if transportErr.Status != http.StatusInternalServerError {
		t.Errorf("TransportError status = %d, want %d", transportErr.Status, http.StatusInternalServerError)
	}
}

func TestTransportClient_NetworkFailure(t *testing.T) {
	// Closed server: connection refused
	server := testutil.StatusServer(t, http.StatusOK, "")
	server.Close()

	client := newTestTransport(t, server.URL, "sk-test")
	_, err := client.Send(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Send() error = %v, want *TransportError", err)
	}
	if transportErr.Status != 0 {
		t.Errorf("network failure carried status %d, want 0", transportErr.Status)
	}
}

func TestTransportClient_MissingCredential(t *testing.T) {
	server := testutil.StatusServer(t, http.StatusOK, "")
	defer server.Close()

	client := newTestTransport(t, server.URL, "")
	_, err := client.Send(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Send() without credential error = %v, want *AuthError", err)
	}
}

func TestTransportClient_CanceledContext(t *testing.T) {
	server := testutil.StatusServer(t, http.StatusOK, "")
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestTransport(t, server.URL, "sk-test")
	_, err := client.Send(ctx, []Message{{Role: RoleUser, Content: "hi"}})

	// Cancellation surfaces as a transport failure, never as an auth one.
	var authErr *AuthError
	if errors.As(err, &authErr) {
		t.Fatalf("canceled Send() returned *AuthError: %v", err)
	}
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("canceled Send() error = %v, want *TransportError", err)
	}
}

func TestTransportClient_NoThinkingConfig(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	creds := NewCredentialStore(db)
	if err := creds.Save("sk-test"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg := &Config{APIURL: server.URL, Model: "test-model"}
	client := NewTransportClient(cfg, creds)

	body, err := client.Send(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	defer body.Close()
	_, _ = io.ReadAll(body)

	if _, present := raw["thinking"]; present {
		t.Error("thinking field present in request despite empty config")
	}
}
