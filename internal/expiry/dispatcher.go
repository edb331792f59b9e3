package expiry

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/beptroly/notifier/internal/push"
)

const dispatchWorkers = 4

// TokenInvalidator drops a stored token the push service reported as dead.
type TokenInvalidator interface {
	ClearToken(userID int64) error
}

// Dispatcher fans targets out to the transport. Each recipient is
// independent: one failed send is logged and counted, never propagated.
type Dispatcher struct {
	transport   push.Transport
	invalidator TokenInvalidator
	logger      *slog.Logger
}

func NewDispatcher(transport push.Transport, invalidator TokenInvalidator, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{transport: transport, invalidator: invalidator, logger: logger}
}

// Dispatch sends one composed notification per target and returns how many
// sends succeeded. Sends run on a small worker pool; no retries.
func (d *Dispatcher) Dispatch(ctx context.Context, targets []*Target) int {
	jobs := make(chan *Target)

	var mu sync.Mutex
	sent := 0

	var wg sync.WaitGroup
	workers := dispatchWorkers
	if len(targets) < workers {
		workers = len(targets)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				if d.send(ctx, t) {
					mu.Lock()
					sent++
					mu.Unlock()
				}
			}
		}()
	}

	for _, t := range targets {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	return sent
}

func (d *Dispatcher) send(ctx context.Context, t *Target) bool {
	msg := Compose(t.Items)

	if err := d.transport.Send(ctx, t.Token, msg); err != nil {
		if errors.Is(err, push.ErrInvalidToken) && d.invalidator != nil {
			if cerr := d.invalidator.ClearToken(t.UserID); cerr != nil {
				d.logger.Error("clear dead token", "user_id", t.UserID, "error", cerr)
			}
		}
		d.logger.Error("send notification", "user_id", t.UserID, "error", err)
		return false
	}

	d.logger.Info("notification sent", "user_id", t.UserID, "items", len(t.Items))
	return true
}
