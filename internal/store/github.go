// Package store implements the remote article store backed by the
// GitHub contents API. It exposes the two read operations the search
// core needs: a flat directory listing and per-document raw content
// retrieval by download URL.
package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ayalane/mdshelf/internal/config"
	"github.com/ayalane/mdshelf/internal/domain"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHub is a read-only client for one fixed owner/repo/branch.
type GitHub struct {
	settings *config.StoreSettings
	client   *github.Client
	http     *http.Client
}

// NewGitHub creates a store client. A token is optional; when set it is
// used for both API calls and raw content fetches, which raises the
// unauthenticated rate limit of the contents API.
func NewGitHub(ctx context.Context, settings *config.StoreSettings) (*GitHub, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	httpClient := http.DefaultClient
	if settings.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if settings.APIBaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(settings.APIBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL: %w", err)
		}
		client.BaseURL = base
	}

	return &GitHub{
		settings: settings,
		client:   client,
		http:     httpClient,
	}, nil
}

// List enumerates the entries of the store root in listing order.
// With the recursive setting enabled, subdirectories are walked as well;
// directory entries themselves are still reported so callers can filter
// by type.
func (g *GitHub) List(ctx context.Context) ([]domain.Document, error) {
	return g.list(ctx, "")
}

func (g *GitHub) list(ctx context.Context, path string) ([]domain.Document, error) {
	opts := &github.RepositoryContentGetOptions{Ref: g.settings.Branch}
	_, entries, _, err := g.client.Repositories.GetContents(ctx, g.settings.Owner, g.settings.Repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents of %q: %w", displayPath(path), err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%q is not a directory", displayPath(path))
	}

	docs := make([]domain.Document, 0, len(entries))
	for _, entry := range entries {
		doc := domain.Document{
			Name:        entry.GetName(),
			Path:        entry.GetPath(),
			Type:        entry.GetType(),
			DownloadURL: entry.GetDownloadURL(),
		}
		docs = append(docs, doc)

		if doc.Type == domain.TypeDir && g.settings.Recursive {
			children, err := g.list(ctx, doc.Path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, children...)
		}
	}

	return docs, nil
}

// Fetch retrieves the raw text content of one document.
func (g *GitHub) Fetch(ctx context.Context, doc domain.Document) (string, error) {
	if doc.DownloadURL == "" {
		return "", fmt.Errorf("document %q has no download URL", doc.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %q: %w", doc.Name, err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %q: %w", doc.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %q: unexpected status %s", doc.Name, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read content of %q: %w", doc.Name, err)
	}

	return string(content), nil
}

// BrowseURL builds the navigation address for a document path.
// Format: https://<host>/<owner>/<repo>/blob/<branch>/<path>
func (g *GitHub) BrowseURL(path string) string {
	return fmt.Sprintf("https://%s/%s/%s/blob/%s/%s",
		g.settings.Host, g.settings.Owner, g.settings.Repo, g.settings.Branch, path)
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
