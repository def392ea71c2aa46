package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuolingoRecordBlock_GoalDone(t *testing.T) {
	record := DuolingoRecord{
		Streak:           365,
		XPToday:          30,
		XPGoal:           30,
		TotalXP:          123456,
		LearningLanguage: "ja",
		CompletedToday:   true,
	}

	block := record.Block()

	assert.Contains(t, block, "🌍 Language")
	assert.Contains(t, block, "• Daily goal done ✅ (365 day streak)")
	assert.Contains(t, block, "• Learning Japanese")
	assert.Contains(t, block, "• Total XP: 123,456")
}

func TestDuolingoRecordBlock_PartialProgress(t *testing.T) {
	record := DuolingoRecord{Streak: 10, XPToday: 15, XPGoal: 30}

	assert.Contains(t, record.Block(), "• Today: 15/30 XP (10 day streak)")
}

func TestDuolingoRecordBlock_NotPracticed(t *testing.T) {
	record := DuolingoRecord{Streak: 10}

	assert.Contains(t, record.Block(), "• Not practiced yet ⚠️ (10 day streak)")
}

func TestDuolingoRecordBlock_UnknownLanguageCodeKeptRaw(t *testing.T) {
	record := DuolingoRecord{LearningLanguage: "eo"}

	assert.Contains(t, record.Block(), "• Learning eo")
}
