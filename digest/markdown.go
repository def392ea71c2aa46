package digest

import "regexp"

var markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// StripMarkdownLinks rewrites every markdown link "[label](url)" as
// "label: url" for delivery surfaces that render plain text only.
func StripMarkdownLinks(s string) string {
	return markdownLinkPattern.ReplaceAllString(s, "$1: $2")
}
