package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/translation"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, original, translation, category, user_id, usage_count, created_at, updated_at`

func scanMapping(s scanner) (*translation.Mapping, error) {
	var m translation.Mapping

	var category sql.NullString

	if err := s.Scan(
		&m.ID, &m.Original, &m.Translation, &category, &m.UserID,
		&m.UsageCount, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Category = category.String

	return &m, nil
}

func (s *Store) FindByOriginal(ctx context.Context, original string) (*translation.Mapping, error) {
	query := `SELECT ` + selectColumns + ` FROM translation_mappings WHERE original = $1`

	m, err := scanMapping(s.db.QueryRowContext(ctx, query, original))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, translation.ErrNotFound
		}

		return nil, fmt.Errorf("finding translation: %w", err)
	}

	return m, nil
}

func (s *Store) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE translation_mappings SET usage_count = usage_count + 1, updated_at = NOW() WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("incrementing usage: %w", err)
	}

	return nil
}

func (s *Store) Upsert(ctx context.Context, m *translation.Mapping) error {
	query := `
		INSERT INTO translation_mappings (original, translation, category, user_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NOW(), NOW())
		ON CONFLICT (original) DO UPDATE
		SET translation = EXCLUDED.translation,
			category = EXCLUDED.category,
			user_id = COALESCE(EXCLUDED.user_id, translation_mappings.user_id),
			updated_at = NOW()
		RETURNING id, usage_count, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, m.Original, m.Translation, m.Category, m.UserID).
		Scan(&m.ID, &m.UsageCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting translation: %w", err)
	}

	return nil
}

func (s *Store) InsertMissing(ctx context.Context, ms []translation.Mapping) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO translation_mappings (original, translation, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (original) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing seed: %w", err)
	}
	defer stmt.Close()

	inserted := 0

	for _, m := range ms {
		res, err := stmt.ExecContext(ctx, m.Original, m.Translation)
		if err != nil {
			return 0, fmt.Errorf("seeding %q: %w", m.Original, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("seeding %q: %w", m.Original, err)
		}

		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}

	return inserted, nil
}

func (s *Store) List(ctx context.Context, filter translation.ListFilter) ([]*translation.Mapping, error) {
	var (
		where []string
		args  []any
	)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(original ILIKE $%[1]d OR translation ILIKE $%[1]d)", len(args)))
	}

	query := `SELECT ` + selectColumns + ` FROM translation_mappings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}

	query += ` ORDER BY usage_count DESC, original ASC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing translations: %w", err)
	}
	defer rows.Close()

	var out []*translation.Mapping

	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning translation: %w", err)
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*translation.Mapping, error) {
	query := `SELECT ` + selectColumns + ` FROM translation_mappings WHERE id = $1`

	m, err := scanMapping(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, translation.ErrNotFound
		}

		return nil, fmt.Errorf("getting translation: %w", err)
	}

	return m, nil
}

func (s *Store) Update(ctx context.Context, m *translation.Mapping) error {
	query := `
		UPDATE translation_mappings
		SET translation = $2, category = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, m.ID, m.Translation, m.Category).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return translation.ErrNotFound
		}

		return fmt.Errorf("updating translation: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_mappings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting translation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting translation: %w", err)
	}

	if n == 0 {
		return translation.ErrNotFound
	}

	return nil
}
