package models

import (
	"fmt"
	"strings"

	"github.com/daybrief/daybrief/enums"
)

type WeReadReadInfo struct {
	YesterdayReadingTime int `json:"yesterdayReadingTime"`
	WeekReadingTime      int `json:"weekReadingTime"`
	MonthReadingTime     int `json:"monthReadingTime"`
	TotalReadingTime     int `json:"totalReadingTime"`
	FinishedBookCount    int `json:"finishedBookCount"`
}

type WeReadShelf struct {
	Books []WeReadShelfBook `json:"books"`
}

type WeReadShelfBook struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Cover           string  `json:"cover"`
	ReadingProgress float64 `json:"readingProgress"`
}

// WeReadBook is an in-progress title surfaced in the digest.
type WeReadBook struct {
	Title    string
	Author   string
	Progress float64
}

// WeReadRecord summarizes reading stats from the WeRead account.
type WeReadRecord struct {
	YesterdayMinutes int
	WeeklyMinutes    int
	MonthlyMinutes   int
	TotalHours       int
	FinishedBooks    int
	CurrentBooks     []WeReadBook
}

func (WeReadRecord) Source() enums.Source { return enums.SourceWeRead }

func (r WeReadRecord) Block() string {
	lines := []string{"📚 Reading"}

	if r.YesterdayMinutes > 0 {
		lines = append(lines, fmt.Sprintf("• Read %s yesterday", formatMinutes(r.YesterdayMinutes)))
	} else {
		lines = append(lines, "• No reading yesterday")
	}
	for _, book := range limit(r.CurrentBooks, 2) {
		lines = append(lines, fmt.Sprintf("• Reading \"%s\" (%.0f%%)", book.Title, book.Progress))
	}
	if r.MonthlyMinutes > 0 {
		lines = append(lines, fmt.Sprintf("• This month: %s", formatMinutes(r.MonthlyMinutes)))
	}
	if r.TotalHours > 0 {
		lines = append(lines, fmt.Sprintf("• All time: %d hours", r.TotalHours))
	}
	if r.FinishedBooks > 0 {
		lines = append(lines, fmt.Sprintf("• Books finished: %d", r.FinishedBooks))
	}

	return strings.Join(lines, "\n")
}

func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
