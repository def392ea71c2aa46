package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bpradana/weave"
	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/sources"
)

// Collector fans out over the enabled sources, waits for all of them, and
// folds the outcomes into one report. A failing source costs its own entry
// and nothing else.
type Collector struct {
	logger   *slog.Logger
	runID    string
	location *time.Location
	sources  []sources.Source
}

func New(logger *slog.Logger, runID string, location *time.Location, srcs ...sources.Source) *Collector {
	return &Collector{
		logger:   logger,
		runID:    runID,
		location: location,
		sources:  srcs,
	}
}

type taskEntry struct {
	source sources.Source
	handle *weave.Handle[digest.Record]
}

func (c *Collector) Collect(ctx context.Context) *digest.Report {
	report := digest.NewReport(c.runID, time.Now().In(c.location))

	if len(c.sources) == 0 {
		c.logger.Warn("no sources enabled")
		return report
	}

	graph := weave.NewGraph()
	entries := make([]taskEntry, 0, len(c.sources))
	for _, src := range c.sources {
		src := src
		handle, err := weave.AddTask(graph, string(src.Name()),
			func(ctx context.Context, _ weave.DependencyResolver) (digest.Record, error) {
				return src.Fetch(ctx)
			})
		if err != nil {
			report.AddError(src.Name(), err)
			continue
		}
		entries = append(entries, taskEntry{source: src, handle: handle})
	}

	start := time.Now()
	results, metrics, err := graph.Run(ctx,
		weave.WithErrorStrategy(weave.ContinueOnError),
		weave.WithDispatcher(weave.NewWorkerPoolDispatcher(len(c.sources))),
	)
	if err != nil {
		// Run reports the first task failure even under ContinueOnError;
		// the per-task state below decides the report. Log and move on.
		c.logger.Debug("some sources failed", "error", err)
	}

	for _, entry := range entries {
		name := entry.source.Name()
		if results.Status(entry.handle) != weave.StatusSucceeded {
			report.AddError(name, taskError(results.Error(entry.handle)))
			continue
		}
		record, err := entry.handle.Value(results)
		if err != nil {
			report.AddError(name, taskError(err))
			continue
		}
		report.Add(record)
	}

	c.logger.Info("collection finished",
		"succeeded", metrics.TasksSucceeded,
		"failed", metrics.TasksFailed,
		"duration_ms", time.Since(start).Milliseconds())

	return report
}

// taskError rewrites recovered panics so report entries read
// "<source>: panic: <value>".
func taskError(err error) error {
	if err == nil {
		return errors.New("task did not complete")
	}
	var panicErr weave.TaskPanicError
	if errors.As(err, &panicErr) {
		return fmt.Errorf("panic: %v", panicErr.Value)
	}
	return err
}
