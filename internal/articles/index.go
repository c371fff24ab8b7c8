package articles

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/ayalane/mdshelf/internal/domain"
)

// CreateIndexMapping creates the Bleve index mapping for article documents.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Content field - analyzed for full-text search
	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = standard.Name
	contentField.Store = true
	contentField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(domain.ArticleFieldContent, contentField)

	// Tags - keyword (not analyzed), stored for retrieval
	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = keyword.Name
	tagsField.Store = true
	docMapping.AddFieldMappingsAt(domain.ArticleFieldTags, tagsField)

	// Name - analyzed, stored
	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = standard.Name
	nameField.Store = true
	docMapping.AddFieldMappingsAt(domain.ArticleFieldName, nameField)

	// URL - stored but not indexed
	urlField := bleve.NewTextFieldMapping()
	urlField.Index = false
	urlField.Store = true
	docMapping.AddFieldMappingsAt(domain.ArticleFieldURL, urlField)

	// ID - stored but not indexed (we use the document ID)
	idField := bleve.NewTextFieldMapping()
	idField.Index = false
	idField.Store = true
	docMapping.AddFieldMappingsAt(domain.ArticleFieldID, idField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// buildIndex indexes a batch of fetched articles in memory.
func (s *Searcher) buildIndex(articles []Article) (bleve.Index, error) {
	index, err := bleve.NewMemOnly(CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	batch := index.NewBatch()
	for _, a := range articles {
		doc := domain.ArticleDocument{
			ID:      a.Doc.Path,
			Name:    DisplayName(a.Doc.Name),
			URL:     s.store.BrowseURL(a.Doc.Path),
			Tags:    a.Tags,
			Content: a.Content,
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index %q: %w", a.Doc.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("batch index failed: %w", err)
	}

	return index, nil
}

// ContentHit is one full-text search result.
type ContentHit struct {
	Name      string
	URL       string
	Score     float64
	Fragments []string
}

// SearchContent runs a full-text query over article content and tags.
// The index is built in memory from a fresh fetch on every invocation
// and discarded afterwards, so nothing is shared between searches.
// A limit of zero or less falls back to the configured result cap.
func (s *Searcher) SearchContent(ctx context.Context, query string, limit int) ([]ContentHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if limit <= 0 || limit > s.opts.MaxResults {
		limit = s.opts.MaxResults
	}

	articles, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	index, err := s.buildIndex(articles)
	if err != nil {
		return nil, err
	}
	defer func() { _ = index.Close() }()

	// Content query
	contentQuery := bleve.NewMatchQuery(query)
	contentQuery.SetField(domain.ArticleFieldContent)

	// Tags query with boost
	tagsQuery := bleve.NewMatchQuery(strings.ToLower(query))
	tagsQuery.SetField(domain.ArticleFieldTags)
	tagsQuery.SetBoost(5.0)

	// Combined search query (Disjunction - OR)
	searchQuery := bleve.NewDisjunctionQuery(contentQuery, tagsQuery)

	searchReq := bleve.NewSearchRequest(searchQuery)
	searchReq.Size = limit
	searchReq.Fields = []string{domain.ArticleFieldName, domain.ArticleFieldURL}
	searchReq.Highlight = bleve.NewHighlight()
	searchReq.Highlight.AddField(domain.ArticleFieldContent)

	results, err := index.SearchInContext(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]ContentHit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		h := ContentHit{Score: hit.Score}
		if val, ok := hit.Fields[domain.ArticleFieldName].(string); ok {
			h.Name = val
		}
		if val, ok := hit.Fields[domain.ArticleFieldURL].(string); ok {
			h.URL = val
		}
		if fragments, ok := hit.Fragments[domain.ArticleFieldContent]; ok {
			h.Fragments = fragments
		}
		hits = append(hits, h)
	}
	return hits, nil
}
