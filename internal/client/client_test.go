package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bugtrack/internal/bootstrap/config"
	"bugtrack/internal/domain/bug"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(config.ClientConfig{BaseURL: server.URL, APIKey: apiKey})
}

func TestCreateBugSendsKeyAndDecodesRecord(t *testing.T) {
	var gotKey, gotPath, gotMethod string
	c := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		gotKey = req.Header.Get("X-API-KEY")
		gotPath = req.URL.Path
		gotMethod = req.Method

		var body map[string]string
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["title"] != "Login Issue" {
			t.Errorf("title = %q", body["title"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc-123","title":"Login Issue","description":"Users cannot log in","priority":"Low","status":"Open","createdAt":"2026-08-01T12:00:00Z"}`))
	}, "secret")

	created, err := c.CreateBug(context.Background(), CreateBugRequest{
		Title:       "Login Issue",
		Description: "Users cannot log in",
	})
	if err != nil {
		t.Fatalf("CreateBug() error = %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/api/bugs" {
		t.Fatalf("request = %s %s, want POST /api/bugs", gotMethod, gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("X-API-KEY = %q, want secret", gotKey)
	}
	if created.ID != "abc-123" || created.Status != bug.StatusOpen {
		t.Fatalf("created = %+v", created)
	}
}

func TestValidationErrorDecoded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Title must be at least 5 characters","errors":{"title":"Title must be at least 5 characters"}}`))
	}, "")

	_, err := c.CreateBug(context.Background(), CreateBugRequest{Title: "Bug", Description: "short"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "Title must be at least 5 characters" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
	if apiErr.FieldErrors["title"] == "" {
		t.Fatalf("FieldErrors = %v, want title entry", apiErr.FieldErrors)
	}
	if Message(err, "fallback") != "Title must be at least 5 characters" {
		t.Fatalf("Message() should prefer server text")
	}
}

func TestNotFoundDecoded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Bug not found"}`))
	}, "")

	err := c.DeleteBug(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
	if Message(err, "fallback") != "Bug not found" {
		t.Fatalf("Message() = %q", Message(err, "fallback"))
	}
}

func TestTransportErrorFallsBackToGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // unreachable on purpose

	c := New(config.ClientConfig{BaseURL: server.URL})

	_, err := c.ListBugs(context.Background())
	if err == nil {
		t.Fatalf("ListBugs() error = nil, want transport error")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure decoded as APIError: %v", err)
	}
	if got := Message(err, "Failed to fetch bugs. Please try again."); got != "Failed to fetch bugs. Please try again." {
		t.Fatalf("Message() = %q, want fallback", got)
	}
}

func TestUndecodableErrorBodyStillCarriesStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}, "")

	_, err := c.ListBugs(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if Message(err, "fallback") != "fallback" {
		t.Fatalf("Message() = %q, want fallback for empty server message", Message(err, "fallback"))
	}
}
