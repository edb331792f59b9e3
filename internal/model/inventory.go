package model

import "time"

// InventoryItem is a perishable item in a household's pantry or fridge.
// HouseholdID is a pointer because imports from the mobile app have produced
// orphan items with no owning household; the scan must tolerate them.
type InventoryItem struct {
	ID          int64     `json:"id"`
	HouseholdID *int64    `json:"household_id"`
	Name        string    `json:"name"`
	Quantity    string    `json:"quantity"`
	Category    string    `json:"category"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
