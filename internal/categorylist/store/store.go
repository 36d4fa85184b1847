package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/tally/internal/categorylist"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, name, categories, is_default, created_at, updated_at`

func scanList(s scanner) (*categorylist.List, error) {
	var l categorylist.List

	var categories []byte

	if err := s.Scan(&l.ID, &l.Name, &categories, &l.IsDefault, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(categories, &l.Categories); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}

	return &l, nil
}

func mapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return categorylist.ErrDuplicateName
	}

	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) CreateList(ctx context.Context, l *categorylist.List) error {
	categories, err := json.Marshal(l.Categories)
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}

	query := `
		INSERT INTO category_lists (name, categories, is_default, created_at, updated_at)
		VALUES ($1, $2, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query, l.Name, string(categories)).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return mapWriteErr("creating category list", err)
	}

	return nil
}

func (s *Store) getOne(ctx context.Context, op, where string, args ...any) (*categorylist.List, error) {
	query := `SELECT ` + selectColumns + ` FROM category_lists WHERE ` + where

	l, err := scanList(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, categorylist.ErrNotFound
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

func (s *Store) GetList(ctx context.Context, id uuid.UUID) (*categorylist.List, error) {
	return s.getOne(ctx, "getting category list", `id = $1`, id)
}

func (s *Store) GetDefault(ctx context.Context) (*categorylist.List, error) {
	return s.getOne(ctx, "getting default category list", `is_default LIMIT 1`)
}

func (s *Store) FindByName(ctx context.Context, name string) (*categorylist.List, error) {
	return s.getOne(ctx, "finding category list", `name = $1`, name)
}

func (s *Store) query(ctx context.Context, op, query string, args ...any) ([]*categorylist.List, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*categorylist.List

	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category list: %w", err)
		}

		out = append(out, l)
	}

	return out, rows.Err()
}

func (s *Store) ListAll(ctx context.Context) ([]*categorylist.List, error) {
	return s.query(ctx, "listing category lists",
		`SELECT `+selectColumns+` FROM category_lists ORDER BY created_at DESC`)
}

func (s *Store) Search(ctx context.Context, q string) ([]*categorylist.List, error) {
	return s.query(ctx, "searching category lists",
		`SELECT `+selectColumns+` FROM category_lists WHERE name ILIKE '%' || $1 || '%' ORDER BY name ASC`, q)
}

func (s *Store) UpdateList(ctx context.Context, l *categorylist.List) error {
	categories, err := json.Marshal(l.Categories)
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}

	query := `
		UPDATE category_lists
		SET name = $2, categories = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = s.db.QueryRowContext(ctx, query, l.ID, l.Name, string(categories)).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return categorylist.ErrNotFound
		}

		return mapWriteErr("updating category list", err)
	}

	return nil
}

// SetDefault clears the current default and sets id in one transaction.
func (s *Store) SetDefault(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE category_lists SET is_default = FALSE WHERE is_default AND id <> $1`, id); err != nil {
		return fmt.Errorf("clearing default: %w", err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE category_lists SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("setting default: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting default: %w", err)
	}

	if n == 0 {
		return categorylist.ErrNotFound
	}

	return tx.Commit()
}

func (s *Store) DeleteList(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category list: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category list: %w", err)
	}

	if n == 0 {
		return categorylist.ErrNotFound
	}

	return nil
}
