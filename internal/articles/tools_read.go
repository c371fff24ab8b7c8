package articles

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReadArgument defines read parameters.
type ReadArgument struct {
	Name string `json:"name" jsonschema_description:"Article filename, e.g. My_Article.md (the .md extension may be omitted)"`
}

// ReadHandler handles the read MCP tool.
type ReadHandler struct {
	searcher *Searcher
}

// NewReadHandler creates a new read handler.
func NewReadHandler(searcher *Searcher) *ReadHandler {
	return &ReadHandler{
		searcher: searcher,
	}
}

// Handle fetches a single article and returns formatted content.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgument) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return errorResult("Name cannot be empty"), nil, nil
	}
	if !strings.HasSuffix(name, DocExtension) {
		name += DocExtension
	}

	candidates, err := h.searcher.Candidates(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to list articles: %s", err)), nil, nil
	}

	for _, doc := range candidates {
		if doc.Name != name && doc.Path != name {
			continue
		}

		content, err := h.searcher.store.Fetch(ctx, doc)
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to fetch article: %s", err)), nil, nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("**Article**: %s\n", DisplayName(doc.Name)))
		sb.WriteString(fmt.Sprintf("**URL**: %s\n", h.searcher.store.BrowseURL(doc.Path)))
		if tags := ExtractTags(content); len(tags) > 0 {
			sb.WriteString(fmt.Sprintf("**Tags**: %s\n", strings.Join(tags, ", ")))
		}
		sb.WriteString(fmt.Sprintf("**Size**: %d bytes\n\n", len(content)))
		sb.WriteString(fmt.Sprintf("```markdown\n%s\n```", content))

		return textResult(sb.String()), nil, nil
	}

	return errorResult(fmt.Sprintf("Article not found: %s", name)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ReadHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "read_article",
		Description: "Read one article from the collection by filename",
	}
}

// RegisterReadTool registers the read tool with an MCP server.
func RegisterReadTool(server *mcp.Server, searcher *Searcher) {
	handler := NewReadHandler(searcher)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
