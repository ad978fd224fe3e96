// Package catalog reads the reading-challenge catalog: the authoritative list
// of books and their movie adaptations.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Another0Noob/reading-challenge/internal/document"
)

// ErrInvalid marks a catalog whose shape or invariants are broken.
var ErrInvalid = errors.New("invalid catalog")

// Year keys an adaptation within its book. It is compared as text, never parsed.
type Year string

func (y *Year) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || document.IsNull(n) {
		return fmt.Errorf("line %d: year must be a scalar", n.Line)
	}
	*y = Year(n.Value)
	return nil
}

type Movie struct {
	Year  Year   `yaml:"year"`
	Title string `yaml:"title"`
	IMDb  string `yaml:"imdb"`
}

type Book struct {
	Slug   string  `yaml:"slug"`
	Title  string  `yaml:"title"`
	Author string  `yaml:"author"`
	Movies []Movie `yaml:"movies"`

	// HasMoviesKey is set when the entry declares a movies key, even an empty one.
	HasMoviesKey bool `yaml:"-"`
	Line         int  `yaml:"-"`
}

func (b *Book) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: book entry must be a mapping", n.Line)
	}
	type plain Book
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*b = Book(p)
	_, b.HasMoviesKey = document.Lookup(n, "movies")
	b.Line = n.Line
	return nil
}

// DeclaresMovies reports whether the book lists adaptations, counting an
// explicit empty movies key.
func (b Book) DeclaresMovies() bool {
	return b.HasMoviesKey || len(b.Movies) > 0
}

// Years returns the set of adaptation years declared by the book.
func (b Book) Years() map[Year]struct{} {
	years := make(map[Year]struct{}, len(b.Movies))
	for _, m := range b.Movies {
		years[m.Year] = struct{}{}
	}
	return years
}

type Catalog struct {
	Books []Book `yaml:"books"`

	bySlug map[string]int
}

// Load reads and validates the catalog at path.
func Load(path string, codec document.Codec) (*Catalog, error) {
	doc, err := codec.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	c, err := FromNode(doc)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// FromNode builds a catalog from a decoded YAML document.
func FromNode(doc *yaml.Node) (*Catalog, error) {
	root := document.Root(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalid)
	}
	books, ok := document.Lookup(root, "books")
	if !ok {
		return nil, fmt.Errorf("%w: missing books key", ErrInvalid)
	}
	if !document.IsNull(books) && books.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: books must be a list", ErrInvalid, books.Line)
	}

	var c Catalog
	if err := root.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

// New builds a catalog from in-memory books, enforcing the same invariants as Load.
func New(books []Book) (*Catalog, error) {
	c := &Catalog{Books: books}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) index() error {
	c.bySlug = make(map[string]int, len(c.Books))

	var problems []error
	for i, b := range c.Books {
		slug := strings.TrimSpace(b.Slug)
		if slug == "" {
			problems = append(problems, fmt.Errorf("%w: line %d: book without slug", ErrInvalid, b.Line))
			continue
		}
		if prev, dup := c.bySlug[slug]; dup {
			problems = append(problems, fmt.Errorf("%w: line %d: slug %q already used on line %d",
				ErrInvalid, b.Line, slug, c.Books[prev].Line))
			continue
		}
		c.bySlug[slug] = i
		c.Books[i].Slug = slug

		seen := make(map[Year]struct{}, len(b.Movies))
		for _, m := range b.Movies {
			if m.Year == "" {
				problems = append(problems, fmt.Errorf("%w: %s: movie %q without year", ErrInvalid, slug, m.Title))
				continue
			}
			if _, dup := seen[m.Year]; dup {
				problems = append(problems, fmt.Errorf("%w: %s: year %s listed twice", ErrInvalid, slug, m.Year))
				continue
			}
			seen[m.Year] = struct{}{}
		}
	}
	return errors.Join(problems...)
}

// Book returns the entry for slug.
func (c *Catalog) Book(slug string) (Book, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Book{}, false
	}
	return c.Books[i], true
}

func (c *Catalog) Has(slug string) bool {
	_, ok := c.bySlug[slug]
	return ok
}

// Slugs returns every slug in catalog order.
func (c *Catalog) Slugs() []string {
	out := make([]string, 0, len(c.Books))
	for _, b := range c.Books {
		out = append(out, b.Slug)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.Books)
}
