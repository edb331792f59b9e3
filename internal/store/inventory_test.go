package store

import (
	"testing"
	"time"
)

func TestInventoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	is := NewInventoryStore(db)
	hs := NewHouseholdStore(db)

	h, _ := hs.Create("Test")
	expires := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	item, err := is.Create(&h.ID, "Sữa tươi", "1", "Dairy", expires)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Name != "Sữa tươi" {
		t.Errorf("name = %q, want %q", item.Name, "Sữa tươi")
	}
	if item.HouseholdID == nil || *item.HouseholdID != h.ID {
		t.Errorf("household id = %v, want %d", item.HouseholdID, h.ID)
	}
	if !item.ExpiresAt.Equal(expires) {
		t.Errorf("expires_at = %v, want %v", item.ExpiresAt, expires)
	}
}

func TestInventoryOrphanItem(t *testing.T) {
	is := NewInventoryStore(setupTestDB(t))

	item, err := is.Create(nil, "Trứng gà", "", "", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("create orphan item: %v", err)
	}
	if item.HouseholdID != nil {
		t.Errorf("household id = %v, want nil", item.HouseholdID)
	}
}

func TestListExpiringBetween(t *testing.T) {
	db := setupTestDB(t)
	is := NewInventoryStore(db)
	hs := NewHouseholdStore(db)

	h, _ := hs.Create("Test")
	dayStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(2026, 3, 15, 23, 59, 59, 999000000, time.UTC)

	is.Create(&h.ID, "Before", "", "", dayStart.Add(-time.Second))
	inWindow1, _ := is.Create(&h.ID, "AtStart", "", "", dayStart)
	inWindow2, _ := is.Create(&h.ID, "Midday", "", "", dayStart.Add(12*time.Hour))
	inWindow3, _ := is.Create(&h.ID, "AtEnd", "", "", dayEnd)
	is.Create(&h.ID, "After", "", "", dayEnd.Add(time.Second))

	items, err := is.ListExpiringBetween(dayStart, dayEnd)
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items in window, got %d", len(items))
	}
	wantIDs := []int64{inWindow1.ID, inWindow2.ID, inWindow3.ID}
	for i, want := range wantIDs {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, want)
		}
	}
}

func TestListExpiringBetweenEmpty(t *testing.T) {
	is := NewInventoryStore(setupTestDB(t))

	items, err := is.ListExpiringBetween(time.Now(), time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}
