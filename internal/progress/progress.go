// Package progress holds the personal read/watched log. It keeps the parsed
// YAML node tree next to a typed view so that edits can be written back
// without disturbing comments or formatting.
package progress

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/document"
)

// EntriesKey is the top-level key holding the per-book entries.
const EntriesKey = "read|watched"

// ErrInvalid marks a personal log whose structure cannot be interpreted.
var ErrInvalid = errors.New("invalid personal log")

type MovieState struct {
	Year    catalog.Year
	Watched bool
}

type Entry struct {
	Slug   string
	Book   bool
	Movies []MovieState
}

// WatchedCount returns how many movie years are marked as watched.
func (e Entry) WatchedCount() int {
	n := 0
	for _, m := range e.Movies {
		if m.Watched {
			n++
		}
	}
	return n
}

// Watched reports the state for year and whether the year is listed at all.
func (e Entry) Watched(year catalog.Year) (watched, listed bool) {
	for _, m := range e.Movies {
		if m.Year == year {
			return m.Watched, true
		}
	}
	return false, false
}

type tracked struct {
	Entry
	node *yaml.Node
}

type Log struct {
	doc     *yaml.Node
	entries *yaml.Node
	list    []tracked
	bySlug  map[string]int
}

// Load reads and validates the personal log at path.
func Load(path string, codec document.Codec) (*Log, error) {
	doc, err := codec.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load personal log %s: %w", path, err)
	}
	l, err := FromNode(doc)
	if err != nil {
		return nil, fmt.Errorf("load personal log %s: %w", path, err)
	}
	return l, nil
}

// Save writes the whole document back to path.
func (l *Log) Save(path string, codec document.Codec) error {
	if err := codec.SaveFile(path, l.doc); err != nil {
		return fmt.Errorf("save personal log %s: %w", path, err)
	}
	return nil
}

// FromNode interprets a decoded YAML document as a personal log.
func FromNode(doc *yaml.Node) (*Log, error) {
	root := document.Root(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalid)
	}
	entries, ok := document.Lookup(root, EntriesKey)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", ErrInvalid, EntriesKey)
	}
	if document.IsNull(entries) {
		toMapping(entries)
	}
	if entries.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: %q must be a mapping", ErrInvalid, entries.Line, EntriesKey)
	}

	l := &Log{
		doc:     doc,
		entries: entries,
		bySlug:  make(map[string]int, len(entries.Content)/2),
	}

	var problems []error
	for i := 0; i+1 < len(entries.Content); i += 2 {
		key, value := entries.Content[i], entries.Content[i+1]
		entry, err := parseEntry(key, value)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := l.bySlug[entry.Slug]; dup {
			problems = append(problems, fmt.Errorf("%w: line %d: %s listed twice", ErrInvalid, key.Line, entry.Slug))
			continue
		}
		l.bySlug[entry.Slug] = len(l.list)
		l.list = append(l.list, tracked{Entry: entry, node: value})
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return l, nil
}

func parseEntry(key, value *yaml.Node) (Entry, error) {
	if key.Kind != yaml.ScalarNode || key.Value == "" {
		return Entry{}, fmt.Errorf("%w: line %d: entry key must be a slug", ErrInvalid, key.Line)
	}
	entry := Entry{Slug: key.Value}
	if value.Kind != yaml.MappingNode {
		return entry, fmt.Errorf("%w: line %d: %s must be a mapping", ErrInvalid, value.Line, entry.Slug)
	}

	if book, ok := document.Lookup(value, "book"); ok {
		read, err := parseBool(book)
		if err != nil {
			return entry, fmt.Errorf("%w: %s.book: %w", ErrInvalid, entry.Slug, err)
		}
		entry.Book = read
	}

	movies, ok := document.Lookup(value, "movies")
	if !ok || document.IsNull(movies) {
		return entry, nil
	}
	if movies.Kind != yaml.MappingNode {
		return entry, fmt.Errorf("%w: line %d: %s.movies must be a mapping", ErrInvalid, movies.Line, entry.Slug)
	}
	for i := 0; i+1 < len(movies.Content); i += 2 {
		yk, yv := movies.Content[i], movies.Content[i+1]
		if yk.Kind != yaml.ScalarNode {
			return entry, fmt.Errorf("%w: line %d: %s movie year must be a scalar", ErrInvalid, yk.Line, entry.Slug)
		}
		watched, err := parseBool(yv)
		if err != nil {
			return entry, fmt.Errorf("%w: %s.movies.%s: %w", ErrInvalid, entry.Slug, yk.Value, err)
		}
		entry.Movies = append(entry.Movies, MovieState{Year: catalog.Year(yk.Value), Watched: watched})
	}
	return entry, nil
}

func parseBool(n *yaml.Node) (bool, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		return false, fmt.Errorf("line %d: expected true or false, got %q", n.Line, n.Value)
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return b, nil
}

func toMapping(n *yaml.Node) {
	n.Kind = yaml.MappingNode
	n.Tag = "!!map"
	n.Value = ""
	n.Content = nil
}

// Entries returns the tracked entries in document order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.list))
	for i, t := range l.list {
		out[i] = t.Entry
	}
	return out
}

func (l *Log) Entry(slug string) (Entry, bool) {
	i, ok := l.bySlug[slug]
	if !ok {
		return Entry{}, false
	}
	return l.list[i].Entry, true
}

func (l *Log) Has(slug string) bool {
	_, ok := l.bySlug[slug]
	return ok
}

func (l *Log) Len() int {
	return len(l.list)
}

// Node returns the underlying document.
func (l *Log) Node() *yaml.Node {
	return l.doc
}

// MarkWatched sets year of slug to watched, creating the entry (book: false)
// and its movies mapping as needed. It reports whether anything changed; an
// already watched year is left alone.
func (l *Log) MarkWatched(slug string, year catalog.Year) bool {
	i, ok := l.bySlug[slug]
	if !ok {
		node := document.MappingNode()
		document.Append(node, document.StringNode("book"), document.BoolNode(false))
		document.Append(l.entries, document.StringNode(slug), node)

		i = len(l.list)
		l.bySlug[slug] = i
		l.list = append(l.list, tracked{Entry: Entry{Slug: slug}, node: node})
	}
	t := &l.list[i]

	movies, ok := document.Lookup(t.node, "movies")
	if !ok {
		movies = document.MappingNode()
		document.Append(t.node, document.StringNode("movies"), movies)
	} else if document.IsNull(movies) {
		toMapping(movies)
	}

	for j := 0; j+1 < len(movies.Content); j += 2 {
		if movies.Content[j].Value != string(year) {
			continue
		}
		value := movies.Content[j+1]
		if watched, _ := parseBool(value); watched {
			return false
		}
		value.Tag = "!!bool"
		value.Value = "true"
		for k := range t.Movies {
			if t.Movies[k].Year == year {
				t.Movies[k].Watched = true
			}
		}
		return true
	}

	document.Append(movies, document.PlainNode(string(year)), document.BoolNode(true))
	t.Movies = append(t.Movies, MovieState{Year: year, Watched: true})
	return true
}
