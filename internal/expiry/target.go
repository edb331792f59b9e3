package expiry

// Target accumulates the expiring item names for one notifiable user during
// a single scan. Targets exist only for the lifetime of the scan; nothing is
// persisted between invocations.
type Target struct {
	UserID int64
	Token  string
	Items  []string
}

// TargetSet is the per-scan working set, keyed by user id. It also remembers
// users that were fetched and found non-notifiable so each user record is
// read at most once per scan no matter how many items reference them.
// A set belongs to one scan goroutine; it is not safe for concurrent writes.
type TargetSet struct {
	targets   map[int64]*Target
	attempted map[int64]bool
	order     []int64
}

func NewTargetSet() *TargetSet {
	return &TargetSet{
		targets:   make(map[int64]*Target),
		attempted: make(map[int64]bool),
	}
}

// Attempted reports whether a user lookup already happened this scan.
func (ts *TargetSet) Attempted(userID int64) bool {
	return ts.attempted[userID]
}

// MarkAttempted records that a user lookup happened, whatever its outcome.
func (ts *TargetSet) MarkAttempted(userID int64) {
	ts.attempted[userID] = true
}

// Add creates the target for a user. First creation wins; the insertion
// order is preserved for dispatch.
func (ts *TargetSet) Add(userID int64, token string) {
	if _, ok := ts.targets[userID]; ok {
		return
	}
	ts.targets[userID] = &Target{UserID: userID, Token: token}
	ts.order = append(ts.order, userID)
}

// Append adds an item name to the user's target, if the user has one.
// Returns false for users without a target (non-notifiable or never seen).
func (ts *TargetSet) Append(userID int64, itemName string) bool {
	t, ok := ts.targets[userID]
	if !ok {
		return false
	}
	t.Items = append(t.Items, itemName)
	return true
}

// Len returns the number of targets.
func (ts *TargetSet) Len() int {
	return len(ts.targets)
}

// Ordered returns targets in creation order.
func (ts *TargetSet) Ordered() []*Target {
	out := make([]*Target, 0, len(ts.order))
	for _, id := range ts.order {
		out = append(out, ts.targets[id])
	}
	return out
}
