package digest

import (
	"fmt"
	"strings"

	"github.com/daybrief/daybrief/enums"
)

const (
	separator      = "━━━━━━━━━━━━━━━━━━━━"
	maxErrorsShown = 3
)

// Render composes the final digest text: day header, year progress, one
// block per present source in the fixed order, and up to the first three
// failures. The output depends only on the report, so rendering the same
// report twice yields identical documents.
func Render(r *Report) string {
	t := r.GeneratedAt
	sections := make([]string, 0, len(r.Sources)+8)

	header := fmt.Sprintf("🌅 Good morning! Today is %s\n\nDay %d of the year",
		t.Format("Monday, January 2, 2006"), t.YearDay())
	sections = append(sections, header)

	sections = append(sections, separator)
	sections = append(sections, fmt.Sprintf("📊 %d Year Progress\n%s", t.Year(), YearProgress(t)))
	sections = append(sections, separator)

	for _, source := range enums.SourceOrder {
		record, ok := r.Sources[source]
		if !ok {
			continue
		}
		block := record.Block()
		if block == "" {
			continue
		}
		sections = append(sections, block)
	}

	if len(r.Errors) > 0 {
		sections = append(sections, separator)
		sections = append(sections, "⚠️ Some data could not be fetched:")
		for _, message := range r.Errors[:min(len(r.Errors), maxErrorsShown)] {
			sections = append(sections, "• "+message)
		}
	}

	return strings.Join(sections, "\n\n")
}
