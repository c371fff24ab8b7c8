package articles

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ContentSearchArgument defines full-text search parameters.
type ContentSearchArgument struct {
	Query string `json:"query" jsonschema_description:"Full-text query matched against article content and tags"`
	Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum number of results (defaults to the configured cap)"`
}

// ContentSearchHandler handles the full-text search MCP tool.
type ContentSearchHandler struct {
	searcher *Searcher
}

// NewContentSearchHandler creates a new content search handler.
func NewContentSearchHandler(searcher *Searcher) *ContentSearchHandler {
	return &ContentSearchHandler{
		searcher: searcher,
	}
}

// Handle executes the full-text search and returns formatted results.
func (h *ContentSearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ContentSearchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	hits, err := h.searcher.SearchContent(ctx, args.Query, args.Limit)
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	if len(hits) == 0 {
		return textResult(fmt.Sprintf("No articles match query: %s", args.Query)), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d articles matching '%s':\n\n", len(hits), args.Query))
	for i, hit := range hits {
		sb.WriteString(fmt.Sprintf("### %d. [%s](%s)\n", i+1, hit.Name, hit.URL))
		sb.WriteString(fmt.Sprintf("**Score**: %.4f\n\n", hit.Score))

		if len(hit.Fragments) > 0 {
			sb.WriteString("```\n")
			for _, fragment := range hit.Fragments {
				sb.WriteString(fragment)
				sb.WriteString("\n")
			}
			sb.WriteString("```\n")
		}

		sb.WriteString("\n")
	}

	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ContentSearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_content",
		Description: "Full-text search over article content using an in-memory index",
	}
}

// RegisterContentSearchTool registers the content search tool with an MCP server.
func RegisterContentSearchTool(server *mcp.Server, searcher *Searcher) {
	handler := NewContentSearchHandler(searcher)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
