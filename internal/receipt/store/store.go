package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/receipt"
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

// Expected column order: id, user_id, user_ids, items, total, store, date, created_at, updated_at
const selectColumns = `id, user_id, user_ids, items, total, store, date, created_at, updated_at`

func scanReceipt(s scanner) (*receipt.Receipt, error) {
	var r receipt.Receipt

	var userIDs, items []byte

	var store sql.NullString

	if err := s.Scan(
		&r.ID, &r.UserID, &userIDs, &items, &r.Total, &store,
		&r.Date, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(userIDs, &r.UserIDs); err != nil {
		return nil, fmt.Errorf("decoding user ids: %w", err)
	}

	if err := json.Unmarshal(items, &r.Items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	r.Store = store.String

	return &r, nil
}

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	userIDs, err := json.Marshal(r.UserIDs)
	if err != nil {
		return fmt.Errorf("encoding user ids: %w", err)
	}

	items, err := json.Marshal(r.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO receipts (user_id, user_ids, items, total, store, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		r.UserID, string(userIDs), string(items), r.Total, r.Store, r.Date,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	return nil
}

func (s *Store) GetReceipt(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error) {
	query := `SELECT ` + selectColumns + ` FROM receipts WHERE id = $1`

	r, err := scanReceipt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, receipt.ErrNotFound
		}

		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	return r, nil
}

// ListByUser returns receipts the user owns or shares, newest first.
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]*receipt.Receipt, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM receipts
		WHERE user_id = $1 OR user_ids @> jsonb_build_array($1::text)
		ORDER BY date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	defer rows.Close()

	var out []*receipt.Receipt

	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}

		out = append(out, r)
	}

	return out, rows.Err()
}

func (s *Store) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	if n == 0 {
		return receipt.ErrNotFound
	}

	return nil
}
