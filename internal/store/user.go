package store

import (
	"database/sql"
	"fmt"

	"github.com/beptroly/notifier/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Name, &u.Email, &u.FCMToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, name, email, fcm_token, created_at, updated_at`

func (s *UserStore) Create(name, email string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (name, email) VALUES (?, ?)`,
		name, email,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// SetToken stores the device push token for a user. An empty token is
// allowed and means the user is no longer notifiable.
func (s *UserStore) SetToken(id int64, token string) (*model.User, error) {
	_, err := s.db.Exec(
		`UPDATE users SET fcm_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		token, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set token: %w", err)
	}
	return s.GetByID(id)
}

// ClearToken removes a user's push token. Called when the push service
// reports the token as no longer registered.
func (s *UserStore) ClearToken(id int64) error {
	_, err := s.db.Exec(
		`UPDATE users SET fcm_token = '', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
