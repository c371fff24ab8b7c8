package domain

// Entry type markers as reported by the document store listing.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// Document is a single entry of the remote store listing.
type Document struct {
	// Name is the base filename, unique within the store root.
	// Example: "Difference_between_angle_brackets.md"
	Name string

	// Path is the path relative to the repository root. Equals Name for
	// root-level entries; longer when recursive listing is enabled.
	Path string

	// Type marks the entry as a plain file or a directory.
	Type string

	// DownloadURL is the resolvable address of the raw document content.
	DownloadURL string
}

// Match is a display-ready search result for one document.
type Match struct {
	// Name is the display name: extension stripped, underscores
	// replaced by spaces. Example: "Difference between angle brackets"
	Name string

	// URL is the constructed browse address of the document.
	URL string
}

// ArticleDocument represents one fetched article in the Bleve content index.
type ArticleDocument struct {
	// ID is the document path within the store.
	ID string `json:"id"`

	// Name is the display name of the article.
	Name string `json:"name"`

	// URL is the constructed browse address.
	URL string `json:"url"`

	// Tags is the lowercase tag set declared in the article metadata.
	Tags []string `json:"tags"`

	// Content is the full article text used for indexing and snippets.
	Content string `json:"content"`
}

// Bleve field name constants for consistent field references in queries and mappings.
const (
	ArticleFieldID      = "id"
	ArticleFieldName    = "name"
	ArticleFieldURL     = "url"
	ArticleFieldTags    = "tags"
	ArticleFieldContent = "content"
)
