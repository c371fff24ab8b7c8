package articles

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractTags parses the tag set declared in an article's leading
// metadata block. Tags are trimmed, lowercased and de-duplicated.
//
// Two metadata forms are recognized:
//
//   - a bare "tags:" line of comma-separated values, scanned until a
//     "---" line, a blank line, or end of input
//   - a YAML frontmatter block opened and closed with "---", where the
//     tags key may be a comma-separated scalar or a YAML list
//
// An article without tag metadata yields an empty set; that is not an
// error.
func ExtractTags(content string) []string {
	if strings.HasPrefix(content, "---\n") || strings.HasPrefix(content, "---\r\n") {
		if tags, ok := frontmatterTags(content); ok {
			return tags
		}
	}
	return scanTagsLine(content)
}

// scanTagsLine implements the bare metadata form: the scan stops at the
// first "---" line, blank line, or end of input.
func scanTagsLine(content string) []string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "---" || trimmed == "" {
			break
		}
		if rest, ok := strings.CutPrefix(line, "tags:"); ok {
			return splitTags(rest)
		}
	}
	return nil
}

// frontmatterTags parses a YAML frontmatter block. Returns ok=false when
// the block is unterminated or not valid YAML, so the caller can fall
// back to the line scan.
func frontmatterTags(content string) ([]string, bool) {
	body, ok := frontmatterBlock(content)
	if !ok {
		return nil, false
	}

	var meta struct {
		Tags any `yaml:"tags"`
	}
	if err := yaml.Unmarshal([]byte(body), &meta); err != nil {
		return nil, false
	}

	switch tags := meta.Tags.(type) {
	case nil:
		return nil, true
	case string:
		return splitTags(tags), true
	case []any:
		values := make([]string, 0, len(tags))
		for _, t := range tags {
			values = append(values, fmt.Sprintf("%v", t))
		}
		return normalizeTags(values), true
	default:
		return nil, true
	}
}

// frontmatterBlock returns the YAML text between the opening and closing
// "---" delimiters.
func frontmatterBlock(content string) (string, bool) {
	rest, _ := strings.CutPrefix(content, "---\r\n")
	rest, _ = strings.CutPrefix(rest, "---\n")
	if rest == content {
		return "", false
	}

	if end := strings.Index(rest, "\n---\n"); end >= 0 {
		return rest[:end], true
	}
	if end := strings.Index(rest, "\n---\r\n"); end >= 0 {
		return rest[:end], true
	}
	if trimmed, ok := strings.CutSuffix(rest, "\n---"); ok {
		return trimmed, true
	}
	return "", false
}

// splitTags splits a comma-separated tag value list.
func splitTags(raw string) []string {
	return normalizeTags(strings.Split(raw, ","))
}

// normalizeTags trims, lowercases, and de-duplicates tag values,
// preserving first-seen order and dropping empties.
func normalizeTags(values []string) []string {
	var tags []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		tag := strings.ToLower(strings.TrimSpace(v))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
