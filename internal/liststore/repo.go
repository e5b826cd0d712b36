package liststore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chefassist/marketrun/internal/models"
)

// Get returns the stored state for a user. Missing rows decode to a zero
// state so first use needs no provisioning step.
func (db *DB) Get(userID string) (models.ListState, error) {
	var raw string
	err := db.conn.QueryRow(`SELECT state FROM grocery_lists WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ListState{}, nil
	}
	if err != nil {
		return models.ListState{}, fmt.Errorf("liststore: get state: %w", err)
	}
	var state models.ListState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.ListState{}, fmt.Errorf("liststore: decode state: %w", err)
	}
	return state, nil
}

// Save upserts the full state document for a user.
func (db *DB) Save(userID string, state models.ListState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("liststore: encode state: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO grocery_lists (user_id, state, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			state      = excluded.state,
			updated_at = CURRENT_TIMESTAMP
	`, userID, string(raw))
	if err != nil {
		return fmt.Errorf("liststore: save state: %w", err)
	}
	return nil
}

// Delete drops the stored state for a user.
func (db *DB) Delete(userID string) error {
	if _, err := db.conn.Exec(`DELETE FROM grocery_lists WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("liststore: delete state: %w", err)
	}
	return nil
}
