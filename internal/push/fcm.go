package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultFCMURL = "https://fcm.googleapis.com/fcm/send"

// FCMClient sends notifications through Firebase Cloud Messaging.
type FCMClient struct {
	serverKey  string
	baseURL    string
	httpClient *http.Client
}

type FCMOption func(*FCMClient)

func WithFCMHTTPClient(c *http.Client) FCMOption {
	return func(cl *FCMClient) {
		cl.httpClient = c
	}
}

func WithFCMBaseURL(url string) FCMOption {
	return func(cl *FCMClient) {
		cl.baseURL = url
	}
}

func NewFCMClient(serverKey string, opts ...FCMOption) *FCMClient {
	c := &FCMClient{
		serverKey:  serverKey,
		baseURL:    defaultFCMURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server key is set.
func (c *FCMClient) Configured() bool {
	return c.serverKey != ""
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// Send delivers a notification to a single FCM registration token.
func (c *FCMClient) Send(ctx context.Context, token string, n Notification) error {
	if !c.Configured() {
		return fmt.Errorf("fcm client not configured: missing server key")
	}

	body, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return ErrInvalidToken
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("fcm API error: status %d", resp.StatusCode)
	}

	var fr fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if fr.Failure > 0 {
		if len(fr.Results) > 0 {
			switch fr.Results[0].Error {
			case "NotRegistered", "InvalidRegistration":
				return ErrInvalidToken
			}
			return fmt.Errorf("fcm rejected message: %s", fr.Results[0].Error)
		}
		return fmt.Errorf("fcm rejected message")
	}

	return nil
}
