package base

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", opts...), srv
}

func TestGetSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotUA, gotReqID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"ok":true}`))
	})

	body, status, err := c.Get(context.Background(), "/api/2.0/clusters/list")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %s", body)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotUA != "databricks-mcp-server/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID should be set")
	}
}

func TestPostEncodesJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Write([]byte(`{}`))
	})

	_, _, err := c.Post(context.Background(), "/api/2.1/jobs/create", map[string]any{"name": "etl"})
	if err != nil {
		t.Fatalf("Post error = %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["name"] != "etl" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestNonOKStatusIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error_code":"RESOURCE_DOES_NOT_EXIST","message":"no such job"}`))
	})

	body, status, err := c.Get(context.Background(), "/api/2.1/jobs/get?job_id=1")
	if err != nil {
		t.Fatalf("4xx must be returned to the caller, got err = %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if len(body) == 0 {
		t.Error("error body should be passed through")
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	})

	_, status, err := c.Get(context.Background(), "/api/2.0/clusters/list")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestRetryBudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, WithMaxRetries(2))

	_, _, err := c.Get(context.Background(), "/api/2.0/clusters/list")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestRetryAfterHeaderHonored(t *testing.T) {
	var calls atomic.Int32
	start := time.Now()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	})

	_, status, err := c.Get(context.Background(), "/api/2.0/sql/warehouses")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("request returned after %v, should have waited for Retry-After", elapsed)
	}
}

func TestPersistentRateLimitReturnsError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}, WithMaxRetries(2))

	body, status, err := c.Get(context.Background(), "/api/2.0/sql/warehouses")
	if err == nil {
		t.Fatal("expected error when every attempt is rate limited")
	}
	if status != 0 || body != nil {
		t.Errorf("got body=%q status=%d, want empty response with error", body, status)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestCircuitBreakerRejectsWhenOpen(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	for i := 0; i < 5; i++ {
		c.CircuitBreaker.RecordFailure()
	}

	_, _, err := c.Get(context.Background(), "/api/2.0/clusters/list")
	if err == nil {
		t.Fatal("open circuit should reject the request")
	}
}

func TestDeleteWithoutBody(t *testing.T) {
	var gotMethod string
	var bodyLen int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		bodyLen = r.ContentLength
		w.Write([]byte(`{}`))
	})

	_, _, err := c.Delete(context.Background(), "/api/2.0/secrets/scopes/delete", nil)
	if err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q", gotMethod)
	}
	if bodyLen > 0 {
		t.Errorf("nil payload should send no body, got %d bytes", bodyLen)
	}
}
