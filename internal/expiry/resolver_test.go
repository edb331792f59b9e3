package expiry

import (
	"testing"

	"github.com/beptroly/notifier/internal/model"
)

const validToken = "fcm-token-abcdef123456"

func TestResolveGroupsItemsPerUser(t *testing.T) {
	households := &mockHouseholdSource{
		households: map[int64]*model.Household{1: {ID: 1, Name: "A"}},
		members:    map[int64][]int64{1: {10, 20}},
	}
	users := &mockUserSource{users: map[int64]*model.User{
		10: user(10, validToken),
		20: user(20, ""), // no token
	}}

	r := NewResolver(households, users, discardLogger())
	targets, err := r.Resolve([]model.InventoryItem{
		item(1, "Milk", ptr(1)),
		item(2, "Eggs", ptr(1)),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if targets.Len() != 1 {
		t.Fatalf("targets = %d, want 1", targets.Len())
	}
	got := targets.Ordered()[0]
	if got.UserID != 10 {
		t.Errorf("target user = %d, want 10", got.UserID)
	}
	if len(got.Items) != 2 || got.Items[0] != "Milk" || got.Items[1] != "Eggs" {
		t.Errorf("items = %v, want [Milk Eggs] in scan order", got.Items)
	}
}

func TestResolveFetchesEachUserOnce(t *testing.T) {
	households := &mockHouseholdSource{
		households: map[int64]*model.Household{1: {ID: 1}, 2: {ID: 2}},
		members:    map[int64][]int64{1: {10}, 2: {10}},
	}
	users := &mockUserSource{users: map[int64]*model.User{10: user(10, validToken)}}

	r := NewResolver(households, users, discardLogger())
	targets, err := r.Resolve([]model.InventoryItem{
		item(1, "Milk", ptr(1)),
		item(2, "Eggs", ptr(1)),
		item(3, "Tofu", ptr(2)),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if users.calls[10] != 1 {
		t.Errorf("user 10 fetched %d times, want 1", users.calls[10])
	}
	if got := targets.Ordered()[0].Items; len(got) != 3 {
		t.Errorf("items = %v, want 3 entries", got)
	}
}

func TestResolveDoesNotRefetchNonNotifiableUser(t *testing.T) {
	households := &mockHouseholdSource{
		households: map[int64]*model.Household{1: {ID: 1}},
		members:    map[int64][]int64{1: {20}},
	}
	users := &mockUserSource{users: map[int64]*model.User{20: user(20, "short")}}

	r := NewResolver(households, users, discardLogger())
	targets, err := r.Resolve([]model.InventoryItem{
		item(1, "Milk", ptr(1)),
		item(2, "Eggs", ptr(1)),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if users.calls[20] != 1 {
		t.Errorf("user 20 fetched %d times, want 1", users.calls[20])
	}
	if targets.Len() != 0 {
		t.Errorf("targets = %d, want 0 for token below plausibility length", targets.Len())
	}
}

func TestResolveMissingUserRecord(t *testing.T) {
	households := &mockHouseholdSource{
		households: map[int64]*model.Household{1: {ID: 1}},
		members:    map[int64][]int64{1: {99}},
	}
	users := &mockUserSource{users: map[int64]*model.User{}}

	r := NewResolver(households, users, discardLogger())
	targets, err := r.Resolve([]model.InventoryItem{item(1, "Milk", ptr(1))})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if targets.Len() != 0 {
		t.Errorf("targets = %d, want 0 for missing user record", targets.Len())
	}
	if users.calls[99] != 1 {
		t.Errorf("user 99 fetched %d times, want 1", users.calls[99])
	}
}

func TestResolveMissingHouseholdSkipsItem(t *testing.T) {
	households := &mockHouseholdSource{
		households: map[int64]*model.Household{1: {ID: 1}},
		members:    map[int64][]int64{1: {10}},
	}
	users := &mockUserSource{users: map[int64]*model.User{10: user(10, validToken)}}

	r := NewResolver(households, users, discardLogger())
	targets, err := r.Resolve([]model.InventoryItem{
		item(1, "Milk", ptr(404)), // household gone
		item(2, "Eggs", ptr(1)),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := targets.Ordered()
	if len(got) != 1 || len(got[0].Items) != 1 || got[0].Items[0] != "Eggs" {
		t.Fatalf("targets = %+v, want only Eggs for user 10", got)
	}
}

func TestResolveEmptyMemberList(t *testing.T) {
	households := &mockHouseholdSource{
		households: map[int64]*model.Household{1: {ID: 1}},
		members:    map[int64][]int64{1: {}},
	}
	users := &mockUserSource{}

	r := NewResolver(households, users, discardLogger())
	targets, err := r.Resolve([]model.InventoryItem{item(1, "Milk", ptr(1))})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if targets.Len() != 0 {
		t.Errorf("targets = %d, want 0 for empty member list", targets.Len())
	}
	if len(users.calls) != 0 {
		t.Errorf("user lookups = %v, want none", users.calls)
	}
}

func TestResolveStoreErrorAborts(t *testing.T) {
	households := &mockHouseholdSource{
		households: map[int64]*model.Household{1: {ID: 1}},
		members:    map[int64][]int64{1: {10}},
	}
	users := &mockUserSource{err: errStore}

	r := NewResolver(households, users, discardLogger())
	if _, err := r.Resolve([]model.InventoryItem{item(1, "Milk", ptr(1))}); err == nil {
		t.Fatal("expected error when user store fails")
	}
}

func TestFilterOwned(t *testing.T) {
	items := []model.InventoryItem{
		item(1, "Milk", ptr(1)),
		item(2, "Orphan", nil),
		item(3, "Eggs", ptr(1)),
	}

	owned, skipped := filterOwned(items, discardLogger())
	if len(owned) != 2 || owned[0].Name != "Milk" || owned[1].Name != "Eggs" {
		t.Errorf("owned = %v, want [Milk Eggs]", owned)
	}
	if len(skipped) != 1 || skipped[0].Item.Name != "Orphan" || skipped[0].Reason != SkipNoHousehold {
		t.Errorf("skipped = %+v, want Orphan/no_household", skipped)
	}
}
