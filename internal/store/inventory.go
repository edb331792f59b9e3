package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/beptroly/notifier/internal/model"
)

type InventoryStore struct {
	db *sql.DB
}

func NewInventoryStore(db *sql.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

func scanInventoryItem(scanner interface{ Scan(...any) error }) (*model.InventoryItem, error) {
	var item model.InventoryItem
	var householdID sql.NullInt64

	err := scanner.Scan(
		&item.ID, &householdID, &item.Name, &item.Quantity, &item.Category,
		&item.ExpiresAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if householdID.Valid {
		item.HouseholdID = &householdID.Int64
	}
	return &item, nil
}

const inventoryCols = `id, household_id, name, quantity, category, expires_at, created_at, updated_at`

func (s *InventoryStore) Create(householdID *int64, name, quantity, category string, expiresAt time.Time) (*model.InventoryItem, error) {
	var hID sql.NullInt64
	if householdID != nil {
		hID = sql.NullInt64{Int64: *householdID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO inventory_items (household_id, name, quantity, category, expires_at) VALUES (?, ?, ?, ?, ?)`,
		hID, name, quantity, category, expiresAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *InventoryStore) GetByID(id int64) (*model.InventoryItem, error) {
	row := s.db.QueryRow(`SELECT `+inventoryCols+` FROM inventory_items WHERE id = ?`, id)
	item, err := scanInventoryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListExpiringBetween returns items across all households whose expiry falls
// inside [start, end], inclusive on both ends, oldest insert first.
func (s *InventoryStore) ListExpiringBetween(start, end time.Time) ([]model.InventoryItem, error) {
	rows, err := s.db.Query(
		`SELECT `+inventoryCols+` FROM inventory_items WHERE expires_at >= ? AND expires_at <= ? ORDER BY created_at ASC, id ASC`,
		start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list expiring items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
