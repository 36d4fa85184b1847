// Package translation is the translation memory for receipt lines: raw
// store text mapped to a readable label, with usage counts. Lines without a
// memorized label go through the rule-based Transliterate.
package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/metrics"
)

var (
	ErrNotFound = errors.New("translation not found")
	ErrInvalid  = errors.New("invalid translation")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=translation
type Repository interface {
	FindByOriginal(ctx context.Context, original string) (*Mapping, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error

	Upsert(ctx context.Context, mapping *Mapping) error
	InsertMissing(ctx context.Context, ms []Mapping) (int, error)

	List(ctx context.Context, filter ListFilter) ([]*Mapping, error)
	Get(ctx context.Context, id uuid.UUID) (*Mapping, error)
	Update(ctx context.Context, mapping *Mapping) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	UserID *uuid.UUID
	Query  string
	Limit  int
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Translate returns the memorized label for raw and bumps its usage count.
// Storage failures are logged and fall through to Transliterate; they never
// reach the caller.
func (s *Service) Translate(ctx context.Context, raw string) string {
	m, err := s.repo.FindByOriginal(ctx, raw)

	switch {
	case err == nil:
		metrics.TranslationLookups.WithLabelValues(metrics.LookupHit).Inc()

		if err := s.repo.IncrementUsage(ctx, m.ID); err != nil {
			slog.Warn("failed to record translation usage", "original", raw, "error", err)
		}

		return m.Translation
	case errors.Is(err, ErrNotFound):
		metrics.TranslationLookups.WithLabelValues(metrics.LookupMiss).Inc()
	default:
		metrics.TranslationLookups.WithLabelValues(metrics.LookupError).Inc()
		slog.Warn("translation lookup failed", "original", raw, "error", err)
	}

	return Transliterate(raw)
}

type UpsertParams struct {
	Original    string
	Translation string
	Category    string
	UserID      *uuid.UUID
}

// Learn stores or replaces the translation for an original string.
func (s *Service) Learn(ctx context.Context, params UpsertParams) (*Mapping, error) {
	original := strings.TrimSpace(params.Original)
	translated := strings.TrimSpace(params.Translation)

	if original == "" || translated == "" {
		return nil, fmt.Errorf("%w: original and translation are required", ErrInvalid)
	}

	m := &Mapping{
		Original:    original,
		Translation: translated,
		Category:    strings.TrimSpace(params.Category),
		UserID:      params.UserID,
	}

	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Mapping, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Mapping, error) {
	return s.repo.Get(ctx, id)
}

type UpdateParams struct {
	Translation *string
	Category    *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Mapping, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Translation != nil {
		t := strings.TrimSpace(*params.Translation)
		if t == "" {
			return nil, fmt.Errorf("%w: translation is required", ErrInvalid)
		}

		m.Translation = t
	}

	if params.Category != nil {
		m.Category = strings.TrimSpace(*params.Category)
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// EnsureDefaults inserts the built-in grocery mappings that are not stored
// yet and returns how many were added.
func (s *Service) EnsureDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.InsertMissing(ctx, Defaults())
	if err != nil {
		return 0, fmt.Errorf("seeding translations: %w", err)
	}

	return n, nil
}
