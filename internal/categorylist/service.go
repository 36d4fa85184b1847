// Package categorylist stores named taxonomies and picks the one a
// categorize call runs against.
package categorylist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

var (
	ErrNotFound      = errors.New("category list not found")
	ErrDuplicateName = errors.New("category list with this name already exists")
	ErrInvalid       = errors.New("invalid category list")
	ErrNoDefault     = errors.New("no default category list found")
)

const (
	minNameLen = 2
	maxNameLen = 100

	DefaultName = "Default Categories"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorylist
type Repository interface {
	CreateList(ctx context.Context, l *List) error
	GetList(ctx context.Context, id uuid.UUID) (*List, error)
	GetDefault(ctx context.Context) (*List, error)
	FindByName(ctx context.Context, name string) (*List, error)
	ListAll(ctx context.Context) ([]*List, error)
	Search(ctx context.Context, query string) ([]*List, error)
	UpdateList(ctx context.Context, l *List) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	DeleteList(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name       string
	Categories taxonomy.Taxonomy
	IsDefault  bool
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)

	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return "", fmt.Errorf("%w: name must be %d to %d characters", ErrInvalid, minNameLen, maxNameLen)
	}

	return name, nil
}

// ensureUniqueName fails when another list, other than self, uses name.
func (s *Service) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)

	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrDuplicateName
	default:
		return nil
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*List, error) {
	name, err := validateName(params.Name)
	if err != nil {
		return nil, err
	}

	if params.Categories.IsEmpty() {
		return nil, fmt.Errorf("%w: categories are required", ErrInvalid)
	}

	if err := s.ensureUniqueName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	l := &List{Name: name, Categories: params.Categories}

	if err := s.repo.CreateList(ctx, l); err != nil {
		return nil, err
	}

	if params.IsDefault {
		if err := s.repo.SetDefault(ctx, l.ID); err != nil {
			return nil, err
		}

		l.IsDefault = true
	}

	return l, nil
}

// List returns every list, newest first.
func (s *Service) List(ctx context.Context) ([]*List, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*List, error) {
	return s.repo.GetList(ctx, id)
}

func (s *Service) GetDefault(ctx context.Context) (*List, error) {
	l, err := s.repo.GetDefault(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoDefault
	}

	return l, err
}

// Search matches names case-insensitively, sorted by name.
func (s *Service) Search(ctx context.Context, query string) ([]*List, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

type UpdateParams struct {
	Name       *string
	Categories *taxonomy.Taxonomy
	IsDefault  *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*List, error) {
	l, err := s.repo.GetList(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name, err := validateName(*params.Name)
		if err != nil {
			return nil, err
		}

		if err := s.ensureUniqueName(ctx, name, id); err != nil {
			return nil, err
		}

		l.Name = name
	}

	if params.Categories != nil {
		if params.Categories.IsEmpty() {
			return nil, fmt.Errorf("%w: categories are required", ErrInvalid)
		}

		l.Categories = *params.Categories
	}

	if err := s.repo.UpdateList(ctx, l); err != nil {
		return nil, err
	}

	if params.IsDefault != nil && *params.IsDefault && !l.IsDefault {
		if err := s.repo.SetDefault(ctx, id); err != nil {
			return nil, err
		}

		l.IsDefault = true
	}

	return l, nil
}

// SetDefault makes id the only default list.
func (s *Service) SetDefault(ctx context.Context, id uuid.UUID) (*List, error) {
	if err := s.repo.SetDefault(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.GetList(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteList(ctx, id)
}

// EnsureDefault guarantees a default list exists: an existing list is
// promoted when there is one, otherwise the built-in taxonomy is stored.
func (s *Service) EnsureDefault(ctx context.Context) (*List, error) {
	l, err := s.repo.GetDefault(ctx)
	if err == nil {
		return l, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(all) > 0 {
		return s.SetDefault(ctx, all[len(all)-1].ID)
	}

	return s.Create(ctx, CreateParams{Name: DefaultName, Categories: taxonomy.Default(), IsDefault: true})
}

// Resolve picks the taxonomy for a categorize call: the list id when set,
// else inline categories, else the default list.
func (s *Service) Resolve(ctx context.Context, listID *uuid.UUID, inline *taxonomy.Taxonomy) (taxonomy.Taxonomy, error) {
	switch {
	case listID != nil:
		l, err := s.repo.GetList(ctx, *listID)
		if err != nil {
			return taxonomy.Taxonomy{}, err
		}

		return l.Categories, nil
	case inline != nil:
		return *inline, nil
	default:
		l, err := s.GetDefault(ctx)
		if err != nil {
			return taxonomy.Taxonomy{}, err
		}

		return l.Categories, nil
	}
}
