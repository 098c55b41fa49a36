package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetMe(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottok/getMe" {
			t.Errorf("path = %q, want /bottok/getMe", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":99,"is_bot":true,"username":"evelyn_bot","first_name":"Evelyn"}}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.Client(), srv.URL, "tok")
	me, err := api.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if me.Username != "evelyn_bot" {
		t.Fatalf("GetMe() username = %q, want evelyn_bot", me.Username)
	}
}

func TestGetUpdatesAdvancesOffset(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":10,"message":{"message_id":1,"text":"hi","chat":{"id":5,"type":"private"}}},{"update_id":12,"message":{"message_id":2,"text":"yo","chat":{"id":5,"type":"private"}}}]}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.Client(), srv.URL, "tok")
	updates, next, err := api.GetUpdates(context.Background(), 0, time.Second)
	if err != nil {
		t.Fatalf("GetUpdates() error = %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("GetUpdates() len = %d, want 2", len(updates))
	}
	if next != 13 {
		t.Fatalf("GetUpdates() next offset = %d, want 13", next)
	}
}

func TestSendMessageMarkdownFallback(t *testing.T) {
	t.Parallel()

	var requests []sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		requests = append(requests, req)
		if req.ParseMode != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.Client(), srv.URL, "tok")
	if err := api.SendMessage(context.Background(), 5, "broken *markdown", 0); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("request count = %d, want markdown then plain", len(requests))
	}
	if requests[0].ParseMode != "Markdown" || requests[1].ParseMode != "" {
		t.Fatalf("parse modes = %q, %q; want Markdown then none", requests[0].ParseMode, requests[1].ParseMode)
	}
}

func TestSendMessageOtherErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.Client(), srv.URL, "tok")
	err := api.SendMessage(context.Background(), 5, "hello", 0)
	if err == nil {
		t.Fatalf("SendMessage() error = nil, want forbidden")
	}
	if calls != 1 {
		t.Fatalf("call count = %d, want 1", calls)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		user *User
		want string
	}{
		{"username wins", &User{Username: "kay", FirstName: "Kayla"}, "kay"},
		{"first name fallback", &User{FirstName: "Kayla"}, "Kayla"},
		{"unknown", &User{}, "Unknown"},
		{"nil user", nil, "Unknown"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.user.DisplayName(); got != tc.want {
				t.Fatalf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}
