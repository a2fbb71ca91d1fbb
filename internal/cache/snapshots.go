package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Slot names a cached dataset.
type Slot string

const (
	SlotTasks      Slot = "tasks"
	SlotNotes      Slot = "notes"
	SlotTimerStats Slot = "timer-stats"
)

// Put serializes v as JSON into slot, replacing what was there.
func (c *Cache) Put(slot Slot, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", slot, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = c.db.Exec(
		`INSERT INTO snapshots (slot, payload, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		string(slot), string(data), now,
	)
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", slot, err)
	}
	return nil
}

// Get decodes slot into v. It reports false, leaving v untouched, when the
// slot was never written.
func (c *Cache) Get(slot Slot, v any) (bool, error) {
	var payload string
	err := c.db.QueryRow(`SELECT payload FROM snapshots WHERE slot = ?`, string(slot)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s snapshot: %w", slot, err)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return false, fmt.Errorf("decode %s snapshot: %w", slot, err)
	}
	return true, nil
}
