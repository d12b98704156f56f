package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lurelabs/lurebox/pkg/intel"
)

func TestWebhookDeliver(t *testing.T) {
	var received Final
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := intel.NewRecord()
	rec.Extract("urgent: verify at http://evil.tk")
	f := Build("sess-wh", true, 3, rec)

	wh := NewWebhook(srv.URL, "token-123")
	if err := wh.Deliver(context.Background(), f); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if received.SessionID != "sess-wh" {
		t.Errorf("received SessionID = %q", received.SessionID)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestWebhookDeliverNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "")
	err := wh.Deliver(context.Background(), Build("s", false, 1, nil))
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestWebhookDeliverUnreachable(t *testing.T) {
	wh := NewWebhook("http://127.0.0.1:1", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := wh.Deliver(ctx, Build("s", false, 1, nil)); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}
