package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, owner_id, file_name, created_at, is_favorite, overall_score, overall_range, best_score, best_range, analysis`

type rowScanner interface {
	Scan(dest ...any) error
}

// Save inserts the entry, propagates the best score and trims old entries in one transaction.
func (r *PGRepo) Save(ctx context.Context, e Entry, keep int) (Entry, error) {
	analysis, err := json.Marshal(e.Analysis)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal analysis: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback()

	// Serialize saves per owner so the best score is computed over a stable set.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, e.OwnerID); err != nil {
		return Entry{}, err
	}

	var best int
	if err := tx.QueryRowContext(ctx,
		`SELECT GREATEST(COALESCE(MAX(overall_score), 0), $2) FROM resume_history WHERE owner_id = $1`,
		e.OwnerID, e.Score.OverallScore,
	).Scan(&best); err != nil {
		return Entry{}, err
	}
	e = withBest(e, best)

	if _, err := tx.ExecContext(ctx, `
INSERT INTO resume_history (`+selectColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID,
		e.OwnerID,
		e.FileName,
		e.CreatedAt,
		e.IsFavorite,
		e.Score.OverallScore,
		e.Score.OverallScoreRange,
		e.Score.BestScore,
		e.Score.BestScoreRange,
		analysis,
	); err != nil {
		return Entry{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE resume_history SET best_score = $2, best_range = $3 WHERE owner_id = $1`,
		e.OwnerID, e.Score.BestScore, e.Score.BestScoreRange,
	); err != nil {
		return Entry{}, err
	}

	if keep > 0 {
		if _, err := tx.ExecContext(ctx, `
DELETE FROM resume_history
WHERE owner_id = $1 AND id IN (
	SELECT id FROM resume_history WHERE owner_id = $1 ORDER BY created_at DESC, id DESC OFFSET $2
)`, e.OwnerID, keep); err != nil {
			return Entry{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns the owner's entries, newest first.
func (r *PGRepo) List(ctx context.Context, ownerID string) ([]Entry, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT `+selectColumns+`
FROM resume_history
WHERE owner_id = $1
ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns a single entry.
func (r *PGRepo) Get(ctx context.Context, ownerID, id string) (Entry, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT `+selectColumns+`
FROM resume_history
WHERE owner_id = $1 AND id = $2`, ownerID, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// ToggleFavorite flips the favorite flag and returns the updated entry.
func (r *PGRepo) ToggleFavorite(ctx context.Context, ownerID, id string) (Entry, error) {
	row := r.DB.QueryRowContext(ctx, `
UPDATE resume_history SET is_favorite = NOT is_favorite
WHERE owner_id = $1 AND id = $2
RETURNING `+selectColumns, ownerID, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// Delete removes one entry.
func (r *PGRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_history WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry the owner has.
func (r *PGRepo) Clear(ctx context.Context, ownerID string) (int, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_history WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var analysis []byte
	if err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.FileName,
		&e.CreatedAt,
		&e.IsFavorite,
		&e.Score.OverallScore,
		&e.Score.OverallScoreRange,
		&e.Score.BestScore,
		&e.Score.BestScoreRange,
		&analysis,
	); err != nil {
		return Entry{}, err
	}
	if len(analysis) > 0 {
		if err := json.Unmarshal(analysis, &e.Analysis); err != nil {
			return Entry{}, fmt.Errorf("decode analysis %s: %w", e.ID, err)
		}
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

var _ Repo = (*PGRepo)(nil)
