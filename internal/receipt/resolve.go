package receipt

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Translator turns a raw receipt string into a readable label. It must be
// safe for concurrent use.
type Translator interface {
	Translate(ctx context.Context, raw string) string
}

// Resolve translates token keys and assembles items in token order.
func Resolve(ctx context.Context, tokens []Token, tr Translator, workers int) ([]Item, error) {
	items := make([]Item, len(tokens))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, tok := range tokens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			items[i] = tok.Item(tr.Translate(ctx, tok.Key))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("translating receipt: %w", err)
	}

	return items, nil
}
