package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("merge not found")

const selectColumns = `id, seq, input_hash, input, strict, check_unused, zone, resolver, status, result, passes, engine_version`

// Read returns the entry with the given id.
func (s *Store) Read(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM merges WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("read merge %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("read merge %s: %w", id, err)
	}
	return e, nil
}

// ListOptions filters List. Zero values mean no filter.
type ListOptions struct {
	Status    string
	InputHash string
	Limit     int
}

// List returns entries in journal order.
// Results are ordered by seq ASC, id ASC with COLLATE BINARY.
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opts.Status)
	}
	if opts.InputHash != "" {
		where = append(where, "input_hash = ?")
		args = append(args, opts.InputHash)
	}

	query := `SELECT ` + selectColumns + ` FROM merges`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list merges: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan merge: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merges: %w", err)
	}
	return entries, nil
}

// FindByInputHash returns every entry recorded for the same input and
// context, in journal order.
func (s *Store) FindByInputHash(ctx context.Context, hash string) ([]Entry, error) {
	return s.List(ctx, ListOptions{InputHash: hash})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var (
		e                   Entry
		input               string
		strict, checkUnused int
	)
	err := r.Scan(&e.ID, &e.Seq, &e.InputHash, &input, &strict, &checkUnused, &e.Zone, &e.Resolver,
		&e.Outcome.Status, &e.Outcome.Result, &e.Outcome.Passes, &e.EngineVersion)
	if err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(input), &e.Input); err != nil {
		return Entry{}, fmt.Errorf("decode input: %w", err)
	}
	if e.Input == nil {
		e.Input = map[string]int64{}
	}
	e.Strict = strict != 0
	e.CheckUnused = checkUnused != 0
	return e, nil
}
