// Package activity keeps a local log of searches and document creations
// made through the browser.
package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/docbrowser/internal/db"
)

const timestampLayout = "2006-01-02 15:04:05.000000"

// Entry is a single activity record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"` // search term or document uuid
	Target    string    `json:"target"`  // path the user was sent to
}

// Filter controls which entries List returns.
type Filter struct {
	Action string
	Limit  int
}

// Store persists activity entries.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Record inserts a new entry.
func (s *Store) Record(ctx context.Context, action, subject, target string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_entries (id, timestamp, action, subject, target) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(),
		s.now().UTC().Format(timestampLayout),
		action, subject, target,
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}
	return nil
}

// List returns entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, filter.Action)
	}

	query := "SELECT id, timestamp, action, subject, target FROM activity_entries"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Action, &e.Subject, &e.Target); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}
		if t, err := time.Parse(timestampLayout, ts); err == nil {
			e.Timestamp = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
