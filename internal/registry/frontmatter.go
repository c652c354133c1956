package registry

import (
	"strings"

	"go.yaml.in/yaml/v3"
)

const frontmatterFence = "---"

// SplitFrontmatter separates a markdown document into its YAML frontmatter
// mapping and the remaining body. Documents without a leading "---" fence,
// without a closing fence, or with frontmatter that is not a YAML mapping
// are treated as having no frontmatter at all; the body is then the full
// content and the caller falls back to defaults.
func SplitFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, frontmatterFence+"\n") {
		return nil, content
	}

	rest := content[len(frontmatterFence)+1:]
	var raw, body string
	if idx := strings.Index(rest, "\n"+frontmatterFence+"\n"); idx != -1 {
		raw = rest[:idx]
		body = rest[idx+len(frontmatterFence)+2:]
	} else if strings.HasSuffix(rest, "\n"+frontmatterFence) {
		raw = rest[:len(rest)-len(frontmatterFence)-1]
	} else {
		return nil, content
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return nil, content
	}
	return fields, body
}

// firstBodyLine returns the first line of body that is neither blank, a
// heading, nor a list item. Used as a description fallback for skills whose
// frontmatter omits one.
func firstBodyLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return ""
}
