package engine

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

// ErrInvalidTaxonomy is returned when a taxonomy document fails validation.
var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// Category is a named group of related skill keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is an ordered, read-only skill catalog. Build one with LoadTaxonomy or
// DefaultTaxonomy; it is never mutated after construction.
type Taxonomy struct {
	categories []Category
}

type taxonomyDocument struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

var defaultTaxonomy = sync.OnceValues(func() (*Taxonomy, error) {
	return parseTaxonomy(defaultTaxonomyYAML)
})

// DefaultTaxonomy returns the built-in catalog, parsed once per process.
func DefaultTaxonomy() (*Taxonomy, error) {
	return defaultTaxonomy()
}

// MustDefaultTaxonomy is DefaultTaxonomy for callers that cannot recover from a broken build.
func MustDefaultTaxonomy() *Taxonomy {
	tax, err := DefaultTaxonomy()
	if err != nil {
		panic(err)
	}
	return tax
}

// LoadTaxonomy parses a YAML taxonomy document.
func LoadTaxonomy(r io.Reader) (*Taxonomy, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return parseTaxonomy(raw)
}

func parseTaxonomy(raw []byte) (*Taxonomy, error) {
	var doc taxonomyDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaxonomy, err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTaxonomy)
	}

	seen := make(map[string]struct{}, len(doc.Categories))
	categories := make([]Category, 0, len(doc.Categories))
	for i, c := range doc.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", ErrInvalidTaxonomy, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTaxonomy, name)
		}
		seen[name] = struct{}{}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("%w: category %q has no keywords", ErrInvalidTaxonomy, name)
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("%w: category %q has an empty keyword", ErrInvalidTaxonomy, name)
			}
			keywords = append(keywords, kw)
		}
		categories = append(categories, Category{Name: name, Keywords: keywords})
	}
	return &Taxonomy{categories: categories}, nil
}

// Len reports the number of categories.
func (t *Taxonomy) Len() int {
	return len(t.categories)
}

// Names returns category names in catalog order.
func (t *Taxonomy) Names() []string {
	out := make([]string, len(t.categories))
	for i, c := range t.categories {
		out[i] = c.Name
	}
	return out
}

// Categories returns a deep copy of the catalog.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}
