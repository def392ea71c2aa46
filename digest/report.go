package digest

import (
	"fmt"
	"time"

	"github.com/daybrief/daybrief/enums"
)

// Record is one source's contribution to the digest: the parsed summary
// numbers plus a pure rendering of its own section.
type Record interface {
	Source() enums.Source
	Block() string
}

// Report is the outcome of a single collection run. Every enabled source
// lands in exactly one place: Sources on success, Errors on failure.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Sources     map[enums.Source]Record
	Errors      []string
}

func NewReport(runID string, generatedAt time.Time) *Report {
	return &Report{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Sources:     make(map[enums.Source]Record),
	}
}

func (r *Report) Add(record Record) {
	r.Sources[record.Source()] = record
}

func (r *Report) AddError(source enums.Source, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", source, err.Error()))
}
