package utils

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// CleanMarkdown strips an outer markdown code fence from model output
// so the text can be appended to the conversation log as-is.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	for _, fence := range []string{"```markdown", "```md", "```"} {
		if strings.HasPrefix(cleaned, fence) && strings.HasSuffix(cleaned, "```") && len(cleaned) > len(fence)+3 {
			cleaned = strings.TrimPrefix(cleaned, fence)
			cleaned = strings.TrimSuffix(cleaned, "```")
			cleaned = strings.TrimSpace(cleaned)
			break
		}
	}

	return cleaned
}

// ValidateMarkdown reports whether the input parses as Markdown.
// Goldmark is very permissive, so this is a sanity check rather than
// a strict validation.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	return parser.Parse(reader) != nil
}
