package push

import (
	"context"
	"strings"
)

// Router picks a transport by token shape: web push subscriptions are stored
// as JSON objects, FCM registration tokens are opaque strings.
type Router struct {
	fcm *FCMClient
	web *WebPushSender
}

func NewRouter(fcm *FCMClient, web *WebPushSender) *Router {
	return &Router{fcm: fcm, web: web}
}

// Configured returns true if at least one underlying transport can send.
func (r *Router) Configured() bool {
	return r.fcm.Configured() || r.web.Configured()
}

func (r *Router) Send(ctx context.Context, token string, n Notification) error {
	if strings.HasPrefix(strings.TrimSpace(token), "{") {
		return r.web.Send(ctx, token, n)
	}
	return r.fcm.Send(ctx, token, n)
}
