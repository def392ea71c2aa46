package models

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/daybrief/daybrief/enums"
)

type ZeppTokenResponse struct {
	TokenInfo   *ZeppTokenInfo `json:"token_info"`
	AccessToken string         `json:"access_token"`
}

type ZeppTokenInfo struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

type ZeppDataResponse struct {
	Data ZeppDailyData `json:"data"`
}

type ZeppDailyData struct {
	Steps            int   `json:"steps"`
	Distance         int   `json:"distance"`
	TotalStayBedTime int   `json:"total_stay_bed_time"`
	DeepSleepTime    int   `json:"deep_sleep_time"`
	Start            int64 `json:"start"`
}

// ZeppRecord carries yesterday's sleep and activity from the Zepp band.
type ZeppRecord struct {
	Steps      int
	DistanceKm float64
	SleepHours float64
	DeepHours  float64
	SleepStart string
	SleepGoal  float64
}

func (ZeppRecord) Source() enums.Source { return enums.SourceZepp }

func (r ZeppRecord) Block() string {
	var sections []string

	if r.SleepHours > 0 {
		lines := []string{"😴 Sleep"}
		mark := "✅"
		if r.SleepHours < r.SleepGoal {
			mark = "⚠️"
		}
		lines = append(lines, fmt.Sprintf("• Slept %.1f hours %s", r.SleepHours, mark))
		if r.DeepHours > 0 {
			lines = append(lines, fmt.Sprintf("• Deep sleep %.1f hours", r.DeepHours))
		}
		if r.SleepStart != "" {
			lines = append(lines, fmt.Sprintf("• In bed by %s", r.SleepStart))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if r.Steps > 0 || r.SleepHours > 0 {
		lines := []string{"🏃 Activity"}
		if r.Steps > 0 {
			lines = append(lines, fmt.Sprintf("• Walked %s steps", humanize.Comma(int64(r.Steps))))
			if r.DistanceKm > 0 {
				lines = append(lines, fmt.Sprintf("• Covered %.1f km", r.DistanceKm))
			}
		} else {
			lines = append(lines, "• No activity yesterday")
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}
