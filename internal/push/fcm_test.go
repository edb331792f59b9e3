package push

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFCMSend(t *testing.T) {
	var received fcmMessage
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": 1, "failure": 0}`))
	}))
	defer server.Close()

	client := NewFCMClient("test-key", WithFCMBaseURL(server.URL), WithFCMHTTPClient(server.Client()))

	err := client.Send(context.Background(), "device-token-1234567890", Notification{
		Title: "Cảnh báo hết hạn! ⏳",
		Body:  `"Sữa tươi" sẽ hết hạn vào ngày mai. Dùng ngay nhé!`,
		Data:  map[string]string{"action_id": "FIND_RECIPE", "ingredient": "Sữa tươi"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAuth != "key=test-key" {
		t.Errorf("authorization = %q, want %q", gotAuth, "key=test-key")
	}
	if received.To != "device-token-1234567890" {
		t.Errorf("to = %q, want device token", received.To)
	}
	if received.Notification.Title != "Cảnh báo hết hạn! ⏳" {
		t.Errorf("title = %q", received.Notification.Title)
	}
	if received.Data["action_id"] != "FIND_RECIPE" {
		t.Errorf("action_id = %q, want FIND_RECIPE", received.Data["action_id"])
	}
}

func TestFCMSendNotRegistered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": 0, "failure": 1, "results": [{"error": "NotRegistered"}]}`))
	}))
	defer server.Close()

	client := NewFCMClient("test-key", WithFCMBaseURL(server.URL))

	err := client.Send(context.Background(), "stale-token-1234567890", Notification{Title: "t", Body: "b"})
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestFCMSendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewFCMClient("test-key", WithFCMBaseURL(server.URL))

	err := client.Send(context.Background(), "device-token-1234567890", Notification{Title: "t", Body: "b"})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Fatal("server error must not be treated as invalid token")
	}
}

func TestFCMSendNotConfigured(t *testing.T) {
	client := NewFCMClient("")

	if client.Configured() {
		t.Error("expected Configured() = false")
	}
	err := client.Send(context.Background(), "token", Notification{Title: "t", Body: "b"})
	if err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}
