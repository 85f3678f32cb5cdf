package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResendClientSend(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	client := NewResendClientWithBaseURL("re_test_key", server.URL)
	err := client.Send(context.Background(), &Email{
		From:    "NovaOS <feedback@novaos.app>",
		To:      "team@novaos.app",
		ReplyTo: "alice@example.com",
		Subject: "New feedback",
		Text:    "love the streaks feature",
	})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if gotAuth != "Bearer re_test_key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	to, ok := gotPayload["to"].([]any)
	if !ok || len(to) != 1 || to[0] != "team@novaos.app" {
		t.Errorf("to = %v, want [team@novaos.app]", gotPayload["to"])
	}
	if gotPayload["reply_to"] != "alice@example.com" {
		t.Errorf("reply_to = %v, want sender address", gotPayload["reply_to"])
	}
}

func TestResendClientSendAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	client := NewResendClientWithBaseURL("re_test_key", server.URL)
	err := client.Send(context.Background(), &Email{
		From:    "bad",
		To:      "team@novaos.app",
		Subject: "New feedback",
		Text:    "hello",
	})
	if err == nil {
		t.Fatal("Send() expected error for 422 response")
	}
}
