package categorize

import (
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

type rule struct {
	path     taxonomy.Path
	keywords []string
}

// matcher holds the taxonomy with keywords normalized once per call.
type matcher struct {
	rules []rule
}

func newMatcher(tax taxonomy.Taxonomy) *matcher {
	m := &matcher{}

	for p, keywords := range tax.All() {
		r := rule{path: p}

		for _, k := range keywords {
			// An empty keyword would match every transaction.
			if n := Normalize(k); n != "" {
				r.keywords = append(r.keywords, n)
			}
		}

		m.rules = append(m.rules, r)
	}

	return m
}

// match returns the first path, in taxonomy order, with a keyword contained
// in the normalized text.
func (m *matcher) match(text string) (taxonomy.Path, bool) {
	text = Normalize(text)

	for _, r := range m.rules {
		for _, k := range r.keywords {
			if strings.Contains(text, k) {
				return r.path, true
			}
		}
	}

	return taxonomy.Path{}, false
}

// grouping collects entries per path. Columns follow taxonomy order; buckets
// the taxonomy does not declare are appended in first-use order.
type grouping struct {
	order   []taxonomy.Path
	entries map[taxonomy.Path][]report.Entry
}

func newGrouping(tax taxonomy.Taxonomy) *grouping {
	return &grouping{
		order:   tax.Paths(),
		entries: make(map[taxonomy.Path][]report.Entry),
	}
}

func (g *grouping) add(p taxonomy.Path, e report.Entry) {
	if _, seen := g.entries[p]; !seen && !slices.Contains(g.order, p) {
		g.order = append(g.order, p)
	}

	g.entries[p] = append(g.entries[p], e)
}

func (g *grouping) columns() []report.Column {
	out := make([]report.Column, 0, len(g.order))
	for _, p := range g.order {
		out = append(out, report.Column{Label: p.Label(), Entries: g.entries[p]})
	}

	return out
}
