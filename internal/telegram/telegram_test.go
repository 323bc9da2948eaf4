package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(Params{}); err == nil {
		t.Error("Expected an error for an empty token")
	}
}

func TestFetchUpdates(t *testing.T) {
	var gotPath, gotOffset, gotTimeout string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOffset = r.URL.Query().Get("offset")
		gotTimeout = r.URL.Query().Get("timeout")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":"hello","chat":{"id":42}}}]}`))
	}))
	defer srv.Close()

	c, err := New(Params{Token: "test-token", BaseURL: srv.URL, PollTimeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("Expected a client, got %v", err)
	}

	updates, err := c.FetchUpdates(context.Background(), 123, 25*time.Second)
	if err != nil {
		t.Fatalf("Expected updates, got %v", err)
	}
	if gotPath != "/bottest-token/getUpdates" {
		t.Errorf("Expected the token in the method path, got %s", gotPath)
	}
	if gotOffset != "123" || gotTimeout != "25" {
		t.Errorf("Expected offset=123 timeout=25, got offset=%s timeout=%s", gotOffset, gotTimeout)
	}
	if len(updates) != 1 || updates[0].UpdateID != 7 {
		t.Fatalf("Expected one update with id 7, got %v", updates)
	}
	if updates[0].Text() != "hello" || updates[0].ChatID() != 42 {
		t.Errorf("Expected text/chat to decode, got %q %d", updates[0].Text(), updates[0].ChatID())
	}
}

func TestFetchUpdatesWarmupTimeoutZero(t *testing.T) {
	var gotTimeout string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTimeout = r.URL.Query().Get("timeout")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":[]}`))
	}))
	defer srv.Close()

	c, _ := New(Params{Token: "t", BaseURL: srv.URL})
	updates, err := c.FetchUpdates(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Expected an empty result, got %v", err)
	}
	if len(updates) != 0 {
		t.Errorf("Expected no updates, got %v", updates)
	}
	if gotTimeout != "0" {
		t.Errorf("Expected timeout=0 for the warmup fetch, got %s", gotTimeout)
	}
}

func TestFetchUpdatesRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	c, _ := New(Params{Token: "t", BaseURL: srv.URL})
	_, err := c.FetchUpdates(context.Background(), 0, time.Second)
	if err == nil {
		t.Fatal("Expected an error for ok=false")
	}
	if !strings.Contains(err.Error(), "Unauthorized") {
		t.Errorf("Expected the API description in the error, got %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Expected a JSON body, got %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, _ := New(Params{Token: "t", BaseURL: srv.URL})
	if err := c.SendMessage(context.Background(), 42, "기입 완료"); err != nil {
		t.Fatalf("Expected the send to succeed, got %v", err)
	}
	if gotBody["chat_id"] != float64(42) || gotBody["text"] != "기입 완료" {
		t.Errorf("Expected chat_id/text in the body, got %v", gotBody)
	}
}
