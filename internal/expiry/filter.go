package expiry

import (
	"log/slog"

	"github.com/beptroly/notifier/internal/model"
)

// SkipReason explains why an item was dropped before resolution.
type SkipReason string

const (
	SkipNoHousehold SkipReason = "no_household"
)

// SkippedItem records one item excluded from a scan.
type SkippedItem struct {
	Item   model.InventoryItem
	Reason SkipReason
}

// filterOwned splits scanned items into those with an owning household and
// those without. Orphan items are a data problem, not a scan failure.
func filterOwned(items []model.InventoryItem, logger *slog.Logger) ([]model.InventoryItem, []SkippedItem) {
	var owned []model.InventoryItem
	var skipped []SkippedItem
	for _, item := range items {
		if item.HouseholdID == nil {
			logger.Warn("item has no household, skipping", "item_id", item.ID, "name", item.Name)
			skipped = append(skipped, SkippedItem{Item: item, Reason: SkipNoHousehold})
			continue
		}
		owned = append(owned, item)
	}
	return owned, skipped
}
