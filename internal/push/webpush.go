package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// WebPushSender delivers notifications to browser subscriptions. The device
// "token" for a web client is its JSON-serialized push subscription
// (endpoint + p256dh + auth keys).
type WebPushSender struct {
	publicKey  string
	privateKey string
}

func NewWebPushSender(vapidPublicKey, vapidPrivateKey string) *WebPushSender {
	return &WebPushSender{
		publicKey:  vapidPublicKey,
		privateKey: vapidPrivateKey,
	}
}

// Configured returns true if both VAPID keys are set.
func (s *WebPushSender) Configured() bool {
	return s.publicKey != "" && s.privateKey != ""
}

// VAPIDPublicKey returns the public key for client-side subscription.
func (s *WebPushSender) VAPIDPublicKey() string {
	return s.publicKey
}

type webPushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Send delivers a notification to a serialized web push subscription.
func (s *WebPushSender) Send(ctx context.Context, token string, n Notification) error {
	if !s.Configured() {
		return fmt.Errorf("webpush sender not configured: missing VAPID keys")
	}

	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(token), &sub); err != nil {
		return fmt.Errorf("parse subscription: %w", err)
	}
	if sub.Endpoint == "" {
		return ErrInvalidToken
	}

	data, err := json.Marshal(webPushPayload{Title: n.Title, Body: n.Body, Data: n.Data})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, data, &sub, &webpush.Options{
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		Subscriber:      "mailto:noreply@beptroly.app",
		TTL:             86400,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		return ErrInvalidToken
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}

	return nil
}
