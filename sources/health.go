package sources

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

const (
	maxSteps      = 100000
	maxSleepHours = 24.0
)

// Health reads step and sleep numbers handed over through the environment,
// typically filled in by a phone automation. No network calls.
type Health struct {
	logger    *slog.Logger
	rawSteps  string
	rawSleep  string
	stepGoal  int
	sleepGoal float64
}

func NewHealth(logger *slog.Logger, rawSteps, rawSleep string, stepGoal int, sleepGoal float64) *Health {
	return &Health{
		logger:    logger,
		rawSteps:  rawSteps,
		rawSleep:  rawSleep,
		stepGoal:  stepGoal,
		sleepGoal: sleepGoal,
	}
}

func (s *Health) Name() enums.Source { return enums.SourceHealth }

// Fetch never fails: malformed values are logged and treated as zero.
func (s *Health) Fetch(ctx context.Context) (digest.Record, error) {
	record := models.HealthRecord{
		Steps:      s.parseSteps(),
		SleepHours: s.parseSleep(),
		StepGoal:   s.stepGoal,
		SleepGoal:  s.sleepGoal,
	}

	s.logger.Info("health data parsed", "steps", record.Steps, "sleep_hours", record.SleepHours)

	return record, nil
}

func (s *Health) parseSteps() int {
	if s.rawSteps == "" {
		return 0
	}
	steps, err := strconv.Atoi(s.rawSteps)
	if err != nil {
		s.logger.Warn("health: invalid steps value", "value", s.rawSteps)
		return 0
	}
	return clampInt(steps, 0, maxSteps)
}

func (s *Health) parseSleep() float64 {
	if s.rawSleep == "" {
		return 0
	}
	hours, err := strconv.ParseFloat(s.rawSleep, 64)
	if err != nil {
		s.logger.Warn("health: invalid sleep value", "value", s.rawSleep)
		return 0
	}
	return clampFloat(hours, 0, maxSleepHours)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
