package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownRendersEmphasis(t *testing.T) {
	out := string(inlineMarkdown("cut response times by **45%**"))
	assert.Equal(t, "cut response times by <strong>45%</strong>", out)
}

func TestMarkdownOutputIsSanitized(t *testing.T) {
	out := string(markdown("[site](https://example.com) <img src=x onerror=alert(1)>"))

	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `rel="nofollow"`)
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "<!--")
}
