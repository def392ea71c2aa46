package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes_UnderAnHour(t *testing.T) {
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "1m", formatMinutes(1))
}

func TestFormatMinutes_HoursAndMinutes(t *testing.T) {
	assert.Equal(t, "1h 15m", formatMinutes(75))
	assert.Equal(t, "2h 0m", formatMinutes(120))
}

func TestWeReadRecordBlock_ReadingDay(t *testing.T) {
	record := WeReadRecord{
		YesterdayMinutes: 75,
		MonthlyMinutes:   600,
		TotalHours:       120,
		FinishedBooks:    8,
		CurrentBooks: []WeReadBook{
			{Title: "三体", Author: "刘慈欣", Progress: 42},
		},
	}

	block := record.Block()

	assert.Contains(t, block, "📚 Reading")
	assert.Contains(t, block, "• Read 1h 15m yesterday")
	assert.Contains(t, block, "• Reading \"三体\" (42%)")
	assert.Contains(t, block, "• This month: 10h 0m")
	assert.Contains(t, block, "• All time: 120 hours")
	assert.Contains(t, block, "• Books finished: 8")
}

func TestWeReadRecordBlock_NoReading(t *testing.T) {
	record := WeReadRecord{}

	assert.Contains(t, record.Block(), "• No reading yesterday")
}

func TestWeReadRecordBlock_CurrentBooksCappedAtTwo(t *testing.T) {
	record := WeReadRecord{
		YesterdayMinutes: 10,
		CurrentBooks: []WeReadBook{
			{Title: "one", Progress: 10},
			{Title: "two", Progress: 20},
			{Title: "three", Progress: 30},
		},
	}

	block := record.Block()

	assert.Equal(t, 2, strings.Count(block, "• Reading \""))
	assert.NotContains(t, block, "three")
}
