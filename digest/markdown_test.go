package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdownLinks_SingleLink(t *testing.T) {
	got := StripMarkdownLinks("[title](http://x)")

	assert.Equal(t, "title: http://x", got)
	assert.NotContains(t, got, "[")
	assert.NotContains(t, got, "]")
}

func TestStripMarkdownLinks_MultipleLinks(t *testing.T) {
	in := "• Opened PR: [fix parser](https://github.com/a/b/pull/1) (a/b)\n• Starred [a/b](https://github.com/a/b)"

	got := StripMarkdownLinks(in)

	assert.Contains(t, got, "fix parser: https://github.com/a/b/pull/1")
	assert.Contains(t, got, "a/b: https://github.com/a/b")
	assert.NotContains(t, got, "](")
}

func TestStripMarkdownLinks_PlainTextUntouched(t *testing.T) {
	in := "• Walked 10,000 steps ✅\n• Slept 7.5 hours"

	assert.Equal(t, in, StripMarkdownLinks(in))
}
