package expiry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/beptroly/notifier/internal/model"
	"github.com/beptroly/notifier/internal/push"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockItemSource struct {
	items []model.InventoryItem
	err   error
	calls int
}

func (m *mockItemSource) ListExpiringBetween(start, end time.Time) ([]model.InventoryItem, error) {
	m.calls++
	return m.items, m.err
}

type mockHouseholdSource struct {
	households  map[int64]*model.Household
	members     map[int64][]int64
	getCalls    int
	memberCalls int
}

func (m *mockHouseholdSource) GetByID(id int64) (*model.Household, error) {
	m.getCalls++
	return m.households[id], nil
}

func (m *mockHouseholdSource) ListMemberIDs(householdID int64) ([]int64, error) {
	m.memberCalls++
	return m.members[householdID], nil
}

type mockUserSource struct {
	users map[int64]*model.User
	calls map[int64]int
	err   error
}

func (m *mockUserSource) GetByID(id int64) (*model.User, error) {
	if m.calls == nil {
		m.calls = make(map[int64]int)
	}
	m.calls[id]++
	if m.err != nil {
		return nil, m.err
	}
	return m.users[id], nil
}

type sentMessage struct {
	Token string
	Msg   push.Notification
}

type mockTransport struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
}

func (m *mockTransport) Send(ctx context.Context, token string, n push.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[token]; ok {
		return err
	}
	m.sent = append(m.sent, sentMessage{Token: token, Msg: n})
	return nil
}

func (m *mockTransport) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type mockInvalidator struct {
	mu      sync.Mutex
	cleared []int64
}

func (m *mockInvalidator) ClearToken(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = append(m.cleared, userID)
	return nil
}

var errStore = errors.New("store unavailable")

func ptr(v int64) *int64 { return &v }

func user(id int64, token string) *model.User {
	return &model.User{ID: id, Name: "u", Email: "u@example.com", FCMToken: token}
}

func item(id int64, name string, householdID *int64) model.InventoryItem {
	return model.InventoryItem{ID: id, Name: name, HouseholdID: householdID}
}
