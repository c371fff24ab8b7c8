package articles

import (
	"context"
	"strings"
	"testing"

	"github.com/ayalane/mdshelf/internal/domain"
)

func TestReadHandler_FetchesArticle(t *testing.T) {
	store := newFakeStore()
	store.add("Iterator_notes.md", domain.TypeFile, "tags: iterator\n---\n# Iterators\n\nBody text.")

	handler := NewReadHandler(NewSearcher(store, Options{}))
	result, _, err := handler.Handle(context.Background(), nil, ReadArgument{Name: "Iterator_notes.md"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Iterator notes") {
		t.Errorf("Expected display name, got: %s", text)
	}
	if !strings.Contains(text, "**Tags**: iterator") {
		t.Errorf("Expected tags header, got: %s", text)
	}
	if !strings.Contains(text, "Body text.") {
		t.Errorf("Expected article body, got: %s", text)
	}
}

func TestReadHandler_ExtensionOptional(t *testing.T) {
	store := newFakeStore()
	store.add("Iterator_notes.md", domain.TypeFile, "body")

	handler := NewReadHandler(NewSearcher(store, Options{}))
	result, _, err := handler.Handle(context.Background(), nil, ReadArgument{Name: "Iterator_notes"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success without extension, got: %s", resultText(t, result))
	}
}

func TestReadHandler_EmptyName(t *testing.T) {
	handler := NewReadHandler(NewSearcher(newFakeStore(), Options{}))
	result, _, err := handler.Handle(context.Background(), nil, ReadArgument{Name: "  "})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for empty name")
	}
}

func TestReadHandler_NotFound(t *testing.T) {
	store := newFakeStore()
	store.add("A.md", domain.TypeFile, "body")

	handler := NewReadHandler(NewSearcher(store, Options{}))
	result, _, err := handler.Handle(context.Background(), nil, ReadArgument{Name: "Missing.md"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for unknown article")
	}
	if !strings.Contains(resultText(t, result), "not found") {
		t.Errorf("Expected not-found message, got: %s", resultText(t, result))
	}
}

func TestReadHandler_FetchFailure(t *testing.T) {
	store := newFakeStore()
	store.add("A.md", domain.TypeFile, "body")
	store.failing["A.md"] = true

	handler := NewReadHandler(NewSearcher(store, Options{}))
	result, _, err := handler.Handle(context.Background(), nil, ReadArgument{Name: "A.md"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result when fetch fails")
	}
}
