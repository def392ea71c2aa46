package models

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/daybrief/daybrief/enums"
)

type DuolingoUser struct {
	ID int64 `json:"id"`
}

type DuolingoUserDetail struct {
	Streak           int    `json:"streak"`
	XPGainedToday    int64  `json:"xpGainedToday"`
	TotalXP          int64  `json:"totalXp"`
	XPGoal           int64  `json:"xpGoal"`
	LearningLanguage string `json:"learningLanguage"`
}

var duolingoLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// DuolingoRecord summarizes today's language practice.
type DuolingoRecord struct {
	Streak           int
	XPToday          int64
	XPGoal           int64
	TotalXP          int64
	LearningLanguage string
	CompletedToday   bool
}

func (DuolingoRecord) Source() enums.Source { return enums.SourceDuolingo }

func (r DuolingoRecord) Block() string {
	lines := []string{"🌍 Language"}

	switch {
	case r.CompletedToday:
		lines = append(lines, fmt.Sprintf("• Daily goal done ✅ (%d day streak)", r.Streak))
	case r.XPToday > 0:
		lines = append(lines, fmt.Sprintf("• Today: %d/%d XP (%d day streak)", r.XPToday, r.XPGoal, r.Streak))
	default:
		lines = append(lines, fmt.Sprintf("• Not practiced yet ⚠️ (%d day streak)", r.Streak))
	}

	if r.LearningLanguage != "" {
		language := duolingoLanguages[r.LearningLanguage]
		if language == "" {
			language = r.LearningLanguage
		}
		lines = append(lines, fmt.Sprintf("• Learning %s", language))
	}
	if r.TotalXP > 0 {
		lines = append(lines, fmt.Sprintf("• Total XP: %s", humanize.Comma(r.TotalXP)))
	}

	return strings.Join(lines, "\n")
}
