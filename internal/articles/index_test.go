package articles

import (
	"context"
	"testing"

	"github.com/ayalane/mdshelf/internal/domain"
)

func TestSearchContent_FindsBodyText(t *testing.T) {
	store := newFakeStore()
	store.add("Header_inclusion.md", domain.TypeFile,
		"tags: include\n---\nAngle brackets search the system include directories first.")
	store.add("Iterator_notes.md", domain.TypeFile,
		"tags: iterator\n---\nA const_iterator forbids mutation of the pointed-to element.")

	searcher := NewSearcher(store, Options{})
	hits, err := searcher.SearchContent(context.Background(), "angle brackets", 0)
	if err != nil {
		t.Fatalf("SearchContent failed: %v", err)
	}

	if len(hits) == 0 {
		t.Fatal("Expected at least one hit")
	}
	if hits[0].Name != "Header inclusion" {
		t.Errorf("Top hit = %q, want %q", hits[0].Name, "Header inclusion")
	}
	if hits[0].URL == "" {
		t.Error("Expected hit to carry a browse URL")
	}
}

func TestSearchContent_TagBoost(t *testing.T) {
	store := newFakeStore()
	// "iterator" appears once in the body of the first article but as a
	// tag of the second; the tag match should rank first.
	store.add("Passing_mention.md", domain.TypeFile,
		"An iterator shows up once in passing here.")
	store.add("Dedicated_article.md", domain.TypeFile,
		"tags: iterator\n---\nAll about traversal.")

	searcher := NewSearcher(store, Options{})
	hits, err := searcher.SearchContent(context.Background(), "iterator", 0)
	if err != nil {
		t.Fatalf("SearchContent failed: %v", err)
	}

	if len(hits) == 0 {
		t.Fatal("Expected hits")
	}
	if hits[0].Name != "Dedicated article" {
		t.Errorf("Top hit = %q, want the tagged article first", hits[0].Name)
	}
}

func TestSearchContent_LimitApplied(t *testing.T) {
	store := newFakeStore()
	store.add("A.md", domain.TypeFile, "shared topic text")
	store.add("B.md", domain.TypeFile, "shared topic text")
	store.add("C.md", domain.TypeFile, "shared topic text")

	searcher := NewSearcher(store, Options{})
	hits, err := searcher.SearchContent(context.Background(), "topic", 2)
	if err != nil {
		t.Fatalf("SearchContent failed: %v", err)
	}
	if len(hits) > 2 {
		t.Errorf("Expected at most 2 hits, got %d", len(hits))
	}
}

func TestSearchContent_EmptyQueryRejected(t *testing.T) {
	searcher := NewSearcher(newFakeStore(), Options{})
	if _, err := searcher.SearchContent(context.Background(), "  ", 0); err == nil {
		t.Fatal("Expected error for blank query")
	}
}

func TestSearchContent_FetchFailureAborts(t *testing.T) {
	store := newFakeStore()
	store.add("Good.md", domain.TypeFile, "fine")
	store.add("Bad.md", domain.TypeFile, "unused")
	store.failing["Bad.md"] = true

	searcher := NewSearcher(store, Options{})
	if _, err := searcher.SearchContent(context.Background(), "fine", 0); err == nil {
		t.Fatal("Expected error when one fetch fails")
	}
}

func TestCreateIndexMapping(t *testing.T) {
	if mapping := CreateIndexMapping(); mapping == nil {
		t.Fatal("Expected a mapping")
	}
}
