package store

import (
	"context"
	"fmt"
)

// Record appends a merge to the journal and returns the stored entry.
//
// The id is generated when empty. Seq and InputHash are always assigned by
// the store. Recording an id that already exists is a no-op and returns the
// existing entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Input == nil {
		e.Input = map[string]int64{}
	}
	if e.Outcome.Status == "" {
		return Entry{}, fmt.Errorf("record merge: outcome status is required")
	}
	if e.ID == "" {
		e.ID = s.ids.Generate()
	}

	input, err := MarshalCanonical(e.Input)
	if err != nil {
		return Entry{}, fmt.Errorf("record merge: marshal input: %w", err)
	}
	hash, err := InputHash(e.Input, e.Strict, e.CheckUnused, e.Zone, e.Resolver)
	if err != nil {
		return Entry{}, fmt.Errorf("record merge: %w", err)
	}
	e.InputHash = hash

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM merges`).Scan(&e.Seq); err != nil {
		return Entry{}, fmt.Errorf("next seq: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO merges (id, seq, input_hash, input, strict, check_unused, zone, resolver, status, result, passes, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, e.ID, e.Seq, e.InputHash, string(input), boolToInt(e.Strict), boolToInt(e.CheckUnused),
		e.Zone, e.Resolver, e.Outcome.Status, e.Outcome.Result, e.Outcome.Passes, e.EngineVersion)
	if err != nil {
		return Entry{}, fmt.Errorf("write merge: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.Read(ctx, e.ID)
	}
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
