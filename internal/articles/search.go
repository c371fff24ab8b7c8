// Package articles implements keyword search over a remote collection
// of Markdown articles. A search lists the store once, fetches every
// candidate article concurrently, and filters by filename substring or
// exact tag match. Each search is fully independent; nothing is cached
// between invocations.
package articles

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/ayalane/mdshelf/internal/domain"
)

// DocExtension is the article file extension candidates are restricted to.
const DocExtension = ".md"

// DefaultConcurrency is the fallback cap for parallel content fetches.
const DefaultConcurrency = 4

// Store is the remote document store consumed by the searcher.
type Store interface {
	// List enumerates the store entries in listing order.
	List(ctx context.Context) ([]domain.Document, error)

	// Fetch retrieves the raw text content of one document.
	Fetch(ctx context.Context, doc domain.Document) (string, error)

	// BrowseURL builds the navigation address for a document path.
	BrowseURL(path string) string
}

// Options tunes a searcher instance.
type Options struct {
	// Concurrency caps parallel content fetches per search.
	Concurrency int

	// Lenient treats a failed article fetch as "no match" with a logged
	// warning instead of failing the whole search.
	Lenient bool

	// MaxResults caps full-text content search results.
	MaxResults int
}

// Searcher performs stateless searches against a document store.
type Searcher struct {
	store Store
	opts  Options
}

// NewSearcher creates a searcher over the given store.
func NewSearcher(store Store, opts Options) *Searcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 20
	}
	return &Searcher{store: store, opts: opts}
}

// Article is one fetched document with its parsed tag set.
type Article struct {
	Doc     domain.Document
	Content string
	Tags    []string
}

// Candidates lists the plain .md files of the store in listing order.
// Directories are excluded even when named misleadingly.
func (s *Searcher) Candidates(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}

	var candidates []domain.Document
	for _, doc := range docs {
		if doc.Type != domain.TypeFile {
			continue
		}
		if !strings.HasSuffix(doc.Name, DocExtension) {
			continue
		}
		candidates = append(candidates, doc)
	}
	return candidates, nil
}

// FetchAll retrieves and parses every candidate article. Fetches run
// concurrently and the join is all-or-nothing: any single failure fails
// the whole batch with zero results. In lenient mode a failed article is
// dropped with a logged warning instead. Listing order is preserved.
func (s *Searcher) FetchAll(ctx context.Context) ([]Article, error) {
	docs, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	fetched := make([]*Article, len(docs))
	sem := make(chan struct{}, s.opts.Concurrency)
	errChan := make(chan error, len(docs))
	var wg sync.WaitGroup

	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc domain.Document) {
			defer wg.Done()
			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			content, err := s.store.Fetch(ctx, doc)
			if err != nil {
				if s.opts.Lenient {
					slog.Warn("Skipping unreachable article", "name", doc.Name, "error", err)
					return
				}
				errChan <- err
				return
			}
			fetched[i] = &Article{
				Doc:     doc,
				Content: content,
				Tags:    ExtractTags(content),
			}
		}(i, doc)
	}

	wg.Wait()
	close(errChan)

	// First fetch error aborts the batch; a drained channel yields nil.
	if err := <-errChan; err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(docs))
	for _, a := range fetched {
		if a != nil {
			articles = append(articles, *a)
		}
	}
	return articles, nil
}

// Search returns the articles whose filename contains the query as a
// substring or whose tag set contains it exactly, in store listing
// order. An empty query matches every candidate article.
func (s *Searcher) Search(ctx context.Context, query string) ([]domain.Match, error) {
	articles, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []domain.Match
	for _, a := range articles {
		if !Matches(q, a.Doc.Name, a.Tags) {
			continue
		}
		matches = append(matches, domain.Match{
			Name: DisplayName(a.Doc.Name),
			URL:  s.store.BrowseURL(a.Doc.Path),
		})
	}
	return matches, nil
}

// Matches reports whether a lowercase query is a substring of the
// lowercased filename or an exact member of the tag set.
func Matches(query, name string, tags []string) bool {
	if strings.Contains(strings.ToLower(name), query) {
		return true
	}
	return slices.Contains(tags, query)
}

// DisplayName converts a stored filename to its display form: the
// extension is stripped and underscores become spaces.
// Example: "Difference_between_angle_brackets.md" -> "Difference between angle brackets"
func DisplayName(name string) string {
	name = strings.TrimSuffix(name, DocExtension)
	return strings.ReplaceAll(name, "_", " ")
}
