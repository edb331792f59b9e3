// Package expiry implements the expiry-scan-and-notify pipeline: find
// inventory items expiring tomorrow, resolve them through households to user
// accounts, group item names per user, and push one summary notification per
// user. Scans are stateless; re-running a scan over unchanged data notifies
// the same users again.
package expiry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beptroly/notifier/internal/model"
	"github.com/beptroly/notifier/internal/push"
)

// Status is a scan's terminal outcome.
type Status string

const (
	// StatusNoItems means nothing expires in the window.
	StatusNoItems Status = "no_items"
	// StatusNoRecipients means items were found but no resolved user had a
	// usable push token.
	StatusNoRecipients Status = "no_recipients"
	// StatusDispatched means notifications were handed to the transport.
	StatusDispatched Status = "dispatched"
)

// Result summarizes one scan. Partial delivery failures do not change the
// status; they only lower SentCount.
type Result struct {
	Status          Status `json:"status"`
	SentCount       int    `json:"sent_count"`
	TotalCandidates int    `json:"total_candidates"`
	ItemsFound      int    `json:"items_found"`
	ItemsSkipped    int    `json:"items_skipped"`
}

// ItemSource is the slice of the inventory store the scanner needs.
type ItemSource interface {
	ListExpiringBetween(start, end time.Time) ([]model.InventoryItem, error)
}

// Service runs the whole pipeline for one scan invocation.
type Service struct {
	items      ItemSource
	resolver   *Resolver
	dispatcher *Dispatcher
	loc        *time.Location
	logger     *slog.Logger
}

func NewService(items ItemSource, households HouseholdSource, users UserSource, transport push.Transport, invalidator TokenInvalidator, loc *time.Location, logger *slog.Logger) *Service {
	return &Service{
		items:      items,
		resolver:   NewResolver(households, users, logger),
		dispatcher: NewDispatcher(transport, invalidator, logger),
		loc:        loc,
		logger:     logger,
	}
}

// Run scans for items expiring on the day after ref and notifies their
// households' members. Store and transport lookups run against a read-only
// snapshot of the data; integrity problems skip rows, only infrastructure
// failures return an error.
func (s *Service) Run(ctx context.Context, ref time.Time) (Result, error) {
	window := NextDayWindow(ref, s.loc)
	s.logger.Info("expiry scan started", "window_start", window.Start, "window_end", window.End)

	items, err := s.items.ListExpiringBetween(window.Start, window.End)
	if err != nil {
		return Result{}, fmt.Errorf("scan inventory: %w", err)
	}
	if len(items) == 0 {
		s.logger.Info("no items expiring tomorrow")
		return Result{Status: StatusNoItems}, nil
	}

	owned, skipped := filterOwned(items, s.logger)

	targets, err := s.resolver.Resolve(owned)
	if err != nil {
		return Result{}, fmt.Errorf("resolve recipients: %w", err)
	}

	result := Result{
		ItemsFound:   len(items),
		ItemsSkipped: len(skipped),
	}

	if targets.Len() == 0 {
		s.logger.Info("items found but nobody to notify", "items", len(items))
		result.Status = StatusNoRecipients
		return result, nil
	}

	ordered := targets.Ordered()
	sent := s.dispatcher.Dispatch(ctx, ordered)

	result.Status = StatusDispatched
	result.SentCount = sent
	result.TotalCandidates = len(ordered)
	s.logger.Info("expiry scan finished", "sent", sent, "candidates", len(ordered))
	return result, nil
}
