package receipt

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/metrics"
)

var (
	ErrNotFound = errors.New("receipt not found")
	ErrNoItems  = errors.New("receipt has no items")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	CreateReceipt(ctx context.Context, r *Receipt) error
	GetReceipt(ctx context.Context, id uuid.UUID) (*Receipt, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Receipt, error)
	DeleteReceipt(ctx context.Context, id uuid.UUID) error
}

const defaultWorkers = 8

type Service struct {
	repo       Repository
	translator Translator
	workers    int
}

type Option func(*Service)

// WithWorkers bounds the number of concurrent translation lookups per parse.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func NewService(repo Repository, translator Translator, opts ...Option) *Service {
	s := &Service{repo: repo, translator: translator, workers: defaultWorkers}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Parse tokenizes lines and translates every item. Translations run
// concurrently; items keep line order.
func (s *Service) Parse(ctx context.Context, lines []string) ([]Item, error) {
	metrics.ReceiptLines.Add(float64(len(lines)))

	items, err := Resolve(ctx, Tokenize(lines), s.translator, s.workers)
	if err != nil {
		return nil, err
	}

	metrics.ReceiptItems.Add(float64(len(items)))

	return items, nil
}

// ParseCSV reads the EPICERIE column of a receipt export and parses it.
func (s *Service) ParseCSV(ctx context.Context, r io.Reader) ([]Item, error) {
	lines, err := importer.ParseReceipt(r)
	if err != nil {
		return nil, err
	}

	return s.Parse(ctx, lines)
}

type SaveParams struct {
	Items  []Item
	UserID *uuid.UUID
	Store  string
	Date   time.Time
}

func (s *Service) Save(ctx context.Context, params SaveParams) (*Receipt, error) {
	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	for i, it := range params.Items {
		if !it.split() {
			continue
		}

		if err := SplitCustom(&params.Items[i], i, it.UserSplits); err != nil {
			return nil, err
		}
	}

	r := &Receipt{
		UserID: params.UserID,
		Items:  params.Items,
		Store:  strings.TrimSpace(params.Store),
		Date:   params.Date,
	}

	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}

	r.CalculateTotal()
	r.RefreshUserIDs()

	if err := s.repo.CreateReceipt(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Receipt, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteReceipt(ctx, id)
}
