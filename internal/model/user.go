package model

import "time"

// MinTokenLength is the shortest FCM token we treat as plausible. Anything
// at or below this is stored client garbage (empty strings, "null", test
// placeholders) and the user is not notifiable.
const MinTokenLength = 10

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	FCMToken  string    `json:"fcm_token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notifiable reports whether the user has a plausible push token.
func (u *User) Notifiable() bool {
	return len(u.FCMToken) > MinTokenLength
}
