package articles

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgument defines keyword search parameters.
type SearchArgument struct {
	Query string `json:"query" jsonschema_description:"Keyword matched against article filenames (substring) and tags (exact match). An empty query lists every article."`
}

// SearchHandler handles the keyword search MCP tool.
type SearchHandler struct {
	searcher *Searcher
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searcher *Searcher) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
	}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	matches, err := h.searcher.Search(ctx, args.Query)
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	if len(matches) == 0 {
		return textResult(fmt.Sprintf("No articles found for query: %s", args.Query)), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d articles for '%s':\n\n", len(matches), args.Query))
	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, m.Name, m.URL))
	}

	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_articles",
		Description: "Search the article collection by filename or tag keyword",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, searcher *Searcher) {
	handler := NewSearchHandler(searcher)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
