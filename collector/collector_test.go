package collector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
	"github.com/daybrief/daybrief/sources"
)

type fakeRecord struct {
	source enums.Source
}

func (r fakeRecord) Source() enums.Source { return r.source }
func (r fakeRecord) Block() string        { return "block " + string(r.source) }

type fakeSource struct {
	name   enums.Source
	err    error
	panics bool
}

func (s fakeSource) Name() enums.Source { return s.name }

func (s fakeSource) Fetch(ctx context.Context) (digest.Record, error) {
	if s.panics {
		panic("boom")
	}
	if s.err != nil {
		return nil, s.err
	}
	return fakeRecord{source: s.name}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCollect_AllSourcesSucceed(t *testing.T) {
	coll := New(testLogger(), "run-1", time.UTC,
		fakeSource{name: enums.SourceZepp},
		fakeSource{name: enums.SourceGitHub},
		fakeSource{name: enums.SourcePoem},
	)

	report := coll.Collect(context.Background())

	assert.Len(t, report.Sources, 3)
	assert.Empty(t, report.Errors)
	assert.Contains(t, report.Sources, enums.SourceZepp)
	assert.Contains(t, report.Sources, enums.SourceGitHub)
	assert.Contains(t, report.Sources, enums.SourcePoem)
}

func TestCollect_FailureIsolatedToOneSource(t *testing.T) {
	coll := New(testLogger(), "run-1", time.UTC,
		fakeSource{name: enums.SourceZepp},
		fakeSource{name: enums.SourceGitHub, err: errors.New("network down")},
		fakeSource{name: enums.SourcePoem},
	)

	report := coll.Collect(context.Background())

	assert.Len(t, report.Sources, 2)
	assert.Contains(t, report.Sources, enums.SourceZepp)
	assert.Contains(t, report.Sources, enums.SourcePoem)
	assert.Equal(t, []string{"github: network down"}, report.Errors)
}

func TestCollect_PanicRecordedAsFailure(t *testing.T) {
	coll := New(testLogger(), "run-1", time.UTC,
		fakeSource{name: enums.SourceSteam, panics: true},
		fakeSource{name: enums.SourceHealth},
	)

	report := coll.Collect(context.Background())

	assert.Len(t, report.Sources, 1)
	assert.Contains(t, report.Sources, enums.SourceHealth)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, "steam: panic: boom", report.Errors[0])
}

func TestCollect_EverySourceLandsExactlyOnce(t *testing.T) {
	srcs := []sources.Source{
		fakeSource{name: enums.SourceZepp},
		fakeSource{name: enums.SourceHealth, err: errors.New("bad value")},
		fakeSource{name: enums.SourceGitHub},
		fakeSource{name: enums.SourceWeRead, err: errors.New("cookie expired")},
		fakeSource{name: enums.SourceDuolingo},
		fakeSource{name: enums.SourceSteam, panics: true},
		fakeSource{name: enums.SourcePoem},
	}
	coll := New(testLogger(), "run-1", time.UTC, srcs...)

	report := coll.Collect(context.Background())

	assert.Equal(t, len(srcs), len(report.Sources)+len(report.Errors))
	for _, src := range srcs {
		_, succeeded := report.Sources[src.Name()]
		failed := false
		for _, message := range report.Errors {
			if len(message) >= len(src.Name()) && message[:len(src.Name())] == string(src.Name()) {
				failed = true
			}
		}
		assert.True(t, succeeded != failed, "source %s must appear exactly once", src.Name())
	}
}

func TestCollect_ErrorsInRegistrationOrder(t *testing.T) {
	coll := New(testLogger(), "run-1", time.UTC,
		fakeSource{name: enums.SourceZepp, err: errors.New("first")},
		fakeSource{name: enums.SourceWeRead, err: errors.New("second")},
	)

	report := coll.Collect(context.Background())

	assert.Equal(t, []string{"zepp: first", "weread: second"}, report.Errors)
}

func TestCollect_NoSourcesYieldsEmptyReport(t *testing.T) {
	coll := New(testLogger(), "run-1", time.UTC)

	report := coll.Collect(context.Background())

	assert.Empty(t, report.Sources)
	assert.Empty(t, report.Errors)
}

func TestCollect_ReportCarriesRunMetadata(t *testing.T) {
	coll := New(testLogger(), "run-42", time.UTC, fakeSource{name: enums.SourcePoem})

	before := time.Now()
	report := coll.Collect(context.Background())

	assert.Equal(t, "run-42", report.RunID)
	assert.False(t, report.GeneratedAt.Before(before.Truncate(time.Second)))
	assert.Equal(t, time.UTC, report.GeneratedAt.Location())
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("simulated timeout")
}

// A run with only the poem source enabled and its upstream unreachable must
// still deliver a poem: the source falls back to the default text instead of
// failing, so the report stays clean.
func TestCollect_PoemFallsBackWhenUpstreamFails(t *testing.T) {
	client := &http.Client{Transport: failingTransport{}}
	poem := sources.NewPoem(testLogger(), client)
	coll := New(testLogger(), "run-1", time.UTC, poem)

	report := coll.Collect(context.Background())

	assert.Len(t, report.Sources, 1)
	assert.Empty(t, report.Errors)

	record, ok := report.Sources[enums.SourcePoem].(models.PoemRecord)
	assert.True(t, ok)
	assert.Contains(t, record.Text, "苦笋")

	rendered := digest.Render(report)
	assert.Contains(t, rendered, "📝 Poem of the Day")
	assert.NotContains(t, rendered, "Some data could not be fetched")
}
