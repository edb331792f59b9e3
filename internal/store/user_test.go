package store

import "testing"

func TestUserCreateAndGet(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	u, err := us.Create("An", "an@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Name != "An" {
		t.Errorf("name = %q, want %q", u.Name, "An")
	}
	if u.FCMToken != "" {
		t.Errorf("new user token = %q, want empty", u.FCMToken)
	}
	if u.Notifiable() {
		t.Error("new user should not be notifiable")
	}

	got, err := us.GetByEmail("an@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatalf("get by email = %v, want id %d", got, u.ID)
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	got, err := us.GetByID(9999)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent user")
	}
}

func TestUserSetAndClearToken(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	u, _ := us.Create("Binh", "binh@example.com")

	u, err := us.SetToken(u.ID, "fcm-token-abcdef123456")
	if err != nil {
		t.Fatalf("set token: %v", err)
	}
	if !u.Notifiable() {
		t.Error("expected notifiable after SetToken")
	}

	if err := us.ClearToken(u.ID); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	u, _ = us.GetByID(u.ID)
	if u.FCMToken != "" {
		t.Errorf("token after clear = %q, want empty", u.FCMToken)
	}
}

func TestUserShortTokenNotNotifiable(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	u, _ := us.Create("Chi", "chi@example.com")
	u, err := us.SetToken(u.ID, "short")
	if err != nil {
		t.Fatalf("set token: %v", err)
	}
	if u.Notifiable() {
		t.Error("short token should not be notifiable")
	}
}
