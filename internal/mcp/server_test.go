package mcp

import (
	"context"
	"testing"

	"github.com/ayalane/mdshelf/internal/articles"
	"github.com/ayalane/mdshelf/internal/domain"
)

func TestCreateServer(t *testing.T) {
	cfg := ServerConfig{
		Name:    "test-server",
		Version: "1.0.0",
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created")
	}
}

func TestCreateServer_EmptyConfig(t *testing.T) {
	cfg := ServerConfig{}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created even with empty config")
	}
}

func TestCreateServer_WithoutSearcher(t *testing.T) {
	cfg := ServerConfig{
		Name:     "test-server",
		Version:  "1.0.0",
		Searcher: nil,
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created without a searcher")
	}
}

func TestCreateServer_WithSearcher(t *testing.T) {
	searcher := articles.NewSearcher(emptyStore{}, articles.Options{})

	cfg := ServerConfig{
		Name:     "test-server",
		Version:  "1.0.0",
		Searcher: searcher,
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created with tools registered")
	}
}

type emptyStore struct{}

func (emptyStore) List(context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (emptyStore) Fetch(context.Context, domain.Document) (string, error) {
	return "", nil
}

func (emptyStore) BrowseURL(path string) string {
	return "https://github.com/cpp/articles/blob/master/" + path
}
