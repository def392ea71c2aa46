package digest

import (
	"fmt"
	"strings"
	"time"
)

const progressBarWidth = 20

// YearProgress renders how far through the year the given day is, as a
// 20-block bar, for example "████░░░░░░░░░░░░░░░░ 20.5% (75/366)".
func YearProgress(t time.Time) string {
	dayOfYear := t.YearDay()

	totalDays := 365
	if isLeapYear(t.Year()) {
		totalDays = 366
	}

	percent := float64(dayOfYear) / float64(totalDays) * 100
	filled := dayOfYear * progressBarWidth / totalDays

	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return fmt.Sprintf("%s %.1f%% (%d/%d)", bar, percent, dayOfYear, totalDays)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
