// Package taxonomy defines the keyword taxonomy used to classify bank
// transactions: an ordered set of main categories, each holding an ordered
// set of sub-categories, each holding an ordered keyword list.
//
// A Taxonomy is a value. Once built it is never mutated, so a single instance
// can be shared between concurrent categorize calls and always yields the
// same column order.
package taxonomy

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var ErrInvalid = errors.New("invalid taxonomy")

// Path addresses one sub-category.
type Path struct {
	Main string
	Sub  string
}

// Label is the report header text for the path.
func (p Path) Label() string {
	return p.Main + " → " + p.Sub
}

// Sub is a sub-category and its keywords.
type Sub struct {
	Name     string
	Keywords []string
}

// Main is a main category and its sub-categories.
type Main struct {
	Name string
	Subs []Sub
}

// NewSub is a convenience constructor for literal taxonomies.
func NewSub(name string, keywords ...string) Sub {
	return Sub{Name: name, Keywords: keywords}
}

// NewMain is a convenience constructor for literal taxonomies.
func NewMain(name string, subs ...Sub) Main {
	return Main{Name: name, Subs: subs}
}

type Taxonomy struct {
	mains []Main
}

// New validates and deep-copies mains into a Taxonomy.
func New(mains ...Main) (Taxonomy, error) {
	seenMain := make(map[string]struct{}, len(mains))
	out := make([]Main, 0, len(mains))

	for _, m := range mains {
		if strings.TrimSpace(m.Name) == "" {
			return Taxonomy{}, fmt.Errorf("%w: empty main category name", ErrInvalid)
		}

		if _, dup := seenMain[m.Name]; dup {
			return Taxonomy{}, fmt.Errorf("%w: duplicate main category %q", ErrInvalid, m.Name)
		}

		seenMain[m.Name] = struct{}{}

		seenSub := make(map[string]struct{}, len(m.Subs))
		subs := make([]Sub, 0, len(m.Subs))

		for _, s := range m.Subs {
			if strings.TrimSpace(s.Name) == "" {
				return Taxonomy{}, fmt.Errorf("%w: empty sub-category name under %q", ErrInvalid, m.Name)
			}

			if _, dup := seenSub[s.Name]; dup {
				return Taxonomy{}, fmt.Errorf("%w: duplicate sub-category %q under %q", ErrInvalid, s.Name, m.Name)
			}

			seenSub[s.Name] = struct{}{}
			subs = append(subs, Sub{Name: s.Name, Keywords: slices.Clone(s.Keywords)})
		}

		out = append(out, Main{Name: m.Name, Subs: subs})
	}

	return Taxonomy{mains: out}, nil
}

// MustNew is New for package-level literals. It panics on invalid input.
func MustNew(mains ...Main) Taxonomy {
	t, err := New(mains...)
	if err != nil {
		panic(err)
	}

	return t
}

// All iterates every sub-category in insertion order. The keyword slice is
// shared with the taxonomy and must not be modified.
func (t Taxonomy) All() iter.Seq2[Path, []string] {
	return func(yield func(Path, []string) bool) {
		for _, m := range t.mains {
			for _, s := range m.Subs {
				if !yield(Path{Main: m.Name, Sub: s.Name}, s.Keywords) {
					return
				}
			}
		}
	}
}

// Paths lists every sub-category path in insertion order.
func (t Taxonomy) Paths() []Path {
	var paths []Path
	for p := range t.All() {
		paths = append(paths, p)
	}

	return paths
}

// Keywords returns a copy of the keywords at p.
func (t Taxonomy) Keywords(p Path) ([]string, bool) {
	for path, kws := range t.All() {
		if path == p {
			return slices.Clone(kws), true
		}
	}

	return nil, false
}

// Has reports whether p exists.
func (t Taxonomy) Has(p Path) bool {
	_, ok := t.Keywords(p)
	return ok
}

// Mains returns a deep copy of the categories.
func (t Taxonomy) Mains() []Main {
	out := make([]Main, len(t.mains))
	for i, m := range t.mains {
		subs := make([]Sub, len(m.Subs))
		for j, s := range m.Subs {
			subs[j] = Sub{Name: s.Name, Keywords: slices.Clone(s.Keywords)}
		}

		out[i] = Main{Name: m.Name, Subs: subs}
	}

	return out
}

// IsEmpty reports whether the taxonomy has no main categories.
func (t Taxonomy) IsEmpty() bool {
	return len(t.mains) == 0
}
