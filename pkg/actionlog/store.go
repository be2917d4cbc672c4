package actionlog

import (
	"context"
	"database/sql"

	"holdem-server/pkg/db"
)

const entryColumns = `
action_log.id,
action_log.hand_id,
action_log.hand_number,
action_log.player_id,
action_log.kind,
action_log.amount,
action_log.status,
action_log.stage,
action_log.created`

// Store reads and writes the action log
type Store struct {
	db *sql.DB
}

// NewStore returns a store backed by dbh
func NewStore(dbh *sql.DB) *Store {
	return &Store{db: dbh}
}

func getEntryByRow(row db.Scanner) (*Entry, error) {
	var e Entry
	if err := row.Scan(&e.ID, &e.HandID, &e.HandNumber, &e.PlayerID, &e.Kind, &e.Amount, &e.Status, &e.Stage, &e.Created); err != nil {
		return nil, err
	}

	return &e, nil
}

// Insert appends an entry
// On success, entry.ID and entry.Created are populated
func (s *Store) Insert(ctx context.Context, entry *Entry) error {
	const query = `
INSERT INTO action_log (hand_id, hand_number, player_id, kind, amount, status, stage)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created`

	row := s.db.QueryRowContext(ctx, query, entry.HandID, entry.HandNumber, entry.PlayerID, entry.Kind, entry.Amount, entry.Status, entry.Stage)
	return row.Scan(&entry.ID, &entry.Created)
}

// ListByHand returns every entry for the hand in the order they were applied
func (s *Store) ListByHand(ctx context.Context, handID string) ([]*Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM action_log
WHERE hand_id = $1
ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, handID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		e, err := getEntryByRow(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// LatestHandID returns the hand ID of the most recent entry
// sql.ErrNoRows is returned if the log is empty
func (s *Store) LatestHandID(ctx context.Context) (string, error) {
	const query = `
SELECT hand_id
FROM action_log
ORDER BY id DESC
LIMIT 1`

	var handID string
	err := s.db.QueryRowContext(ctx, query).Scan(&handID)
	return handID, err
}
