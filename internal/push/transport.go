package push

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when the push service reports the device token
// as unregistered or expired. The caller should drop the stored token.
var ErrInvalidToken = errors.New("push token no longer valid")

// Notification is a single push message. Data travels alongside the visible
// notification so the app can deep-link (e.g. straight into recipe search).
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Transport delivers one notification to one device token.
type Transport interface {
	Send(ctx context.Context, token string, n Notification) error
}
