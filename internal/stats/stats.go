// Package stats summarizes challenge progress and renders it as a Mermaid
// Sankey diagram.
package stats

import (
	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/progress"
)

// Bucket is the completion state of one book. Every catalog book falls in
// exactly one bucket.
type Bucket int

const (
	Neither Bucket = iota
	FullyCompleted
	PartiallyCompleted
	ReadOnly
	MoviesOnly
)

func (b Bucket) String() string {
	switch b {
	case FullyCompleted:
		return "Read + All Movies"
	case PartiallyCompleted:
		return "Read + Some Movies"
	case ReadOnly:
		return "Read Only"
	case MoviesOnly:
		return "Movies Only"
	default:
		return "Neither"
	}
}

// Classify places a book by read state, adaptations available in the catalog
// and adaptations marked watched.
func Classify(read bool, available, watched int) Bucket {
	switch {
	case read && available > 0 && watched == available:
		return FullyCompleted
	case read && available > 0 && watched > 0:
		return PartiallyCompleted
	case read:
		return ReadOnly
	case watched > 0:
		return MoviesOnly
	default:
		return Neither
	}
}

type Buckets struct {
	FullyCompleted     int
	PartiallyCompleted int
	ReadOnly           int
	MoviesOnly         int
	Neither            int
}

func (b *Buckets) add(bucket Bucket, n int) {
	switch bucket {
	case FullyCompleted:
		b.FullyCompleted += n
	case PartiallyCompleted:
		b.PartiallyCompleted += n
	case ReadOnly:
		b.ReadOnly += n
	case MoviesOnly:
		b.MoviesOnly += n
	default:
		b.Neither += n
	}
}

func (b Buckets) Total() int {
	return b.FullyCompleted + b.PartiallyCompleted + b.ReadOnly + b.MoviesOnly + b.Neither
}

type Stats struct {
	TotalBooks           int
	BooksWithAdaptations int
	TotalAdaptations     int

	BooksRead     int
	BooksNotRead  int
	MoviesWatched int
	// AvailableMovies counts adaptations of the tracked books only.
	AvailableMovies int

	Buckets Buckets

	// Untracked catalog books missing from the log; counted as not read.
	Untracked int
	// Skipped log entries without a catalog book.
	Skipped int
}

// Compute walks the personal log once, then adds every catalog book the log
// does not mention as not read with nothing watched.
func Compute(c *catalog.Catalog, log *progress.Log) Stats {
	var s Stats

	s.TotalBooks = c.Len()
	for _, b := range c.Books {
		if len(b.Movies) > 0 {
			s.BooksWithAdaptations++
		}
		s.TotalAdaptations += len(b.Movies)
	}

	for _, e := range log.Entries() {
		book, ok := c.Book(e.Slug)
		if !ok {
			s.Skipped++
			continue
		}

		watched := e.WatchedCount()
		available := len(book.Movies)
		s.AvailableMovies += available
		s.MoviesWatched += watched

		if e.Book {
			s.BooksRead++
		} else {
			s.BooksNotRead++
		}
		s.Buckets.add(Classify(e.Book, available, watched), 1)
	}

	for _, slug := range c.Slugs() {
		if !log.Has(slug) {
			s.Untracked++
		}
	}
	s.Buckets.add(Neither, s.Untracked)
	s.BooksNotRead += s.Untracked

	return s
}

// MoviesNotWatched may go negative when the log marks years the catalog does
// not list; run check first.
func (s Stats) MoviesNotWatched() int {
	return s.TotalAdaptations - s.MoviesWatched
}

func (s Stats) BooksReadPct() float64 {
	return percent(s.BooksRead, s.TotalBooks)
}

// BooksNotReadPct is the complement of BooksReadPct, so it is 100 for an
// empty catalog.
func (s Stats) BooksNotReadPct() float64 {
	return 100 - s.BooksReadPct()
}

func (s Stats) MoviesWatchedPct() float64 {
	return percent(s.MoviesWatched, s.TotalAdaptations)
}

func (s Stats) MoviesNotWatchedPct() float64 {
	return 100 - s.MoviesWatchedPct()
}

func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
