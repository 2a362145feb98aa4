package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMarkdown(t *testing.T) {
	assert.Equal(t, "xin chào", CleanMarkdown("  xin chào \n"))
	assert.Equal(t, "## Phân tích", CleanMarkdown("```markdown\n## Phân tích\n```"))
	assert.Equal(t, "nội dung", CleanMarkdown("```\nnội dung\n```"))
	// Inner fences survive, only the outer wrapper is stripped.
	assert.Equal(t, "a\n```go\nb\n```\nc", CleanMarkdown("```markdown\na\n```go\nb\n```\nc\n```"))
}

func TestValidateMarkdown(t *testing.T) {
	assert.True(t, ValidateMarkdown("| a | b |\n|---|---|\n| 1 | 2 |"))
	assert.True(t, ValidateMarkdown(""))
}
