package models

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/daybrief/daybrief/enums"
)

// HealthRecord carries manually reported step and sleep numbers.
type HealthRecord struct {
	Steps      int
	SleepHours float64
	StepGoal   int
	SleepGoal  float64
}

func (HealthRecord) Source() enums.Source { return enums.SourceHealth }

func (r HealthRecord) Block() string {
	lines := []string{"💪 Health"}

	if r.Steps == 0 && r.SleepHours == 0 {
		lines = append(lines, "• No health data reported")
		return strings.Join(lines, "\n")
	}

	if r.Steps > 0 {
		mark := "📊"
		if r.Steps >= r.StepGoal {
			mark = "✅"
		}
		lines = append(lines, fmt.Sprintf("• Walked %s steps %s", humanize.Comma(int64(r.Steps)), mark))
	}
	if r.SleepHours > 0 {
		mark := "⚠️"
		if r.SleepHours >= r.SleepGoal {
			mark = "✅"
		}
		lines = append(lines, fmt.Sprintf("• Slept %.1f hours %s", r.SleepHours, mark))
	}

	return strings.Join(lines, "\n")
}
