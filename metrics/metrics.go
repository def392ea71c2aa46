package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/daybrief/daybrief/digest"
)

const pushJobName = "daybrief"

// Recorder tracks per-run gauges and pushes them to a Pushgateway when one
// is configured. Each run is a batch job, so gauges carry the whole story.
type Recorder struct {
	registry *prometheus.Registry

	runDuration      prometheus.Gauge
	sourcesSucceeded prometheus.Gauge
	sourcesFailed    prometheus.Gauge
	deliverySuccess  prometheus.Gauge
	lastRun          prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "daybrief_run_duration_seconds",
			Help: "Wall time of the last collection run.",
		}),
		sourcesSucceeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "daybrief_sources_succeeded",
			Help: "Sources that produced a record in the last run.",
		}),
		sourcesFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "daybrief_sources_failed",
			Help: "Sources that ended up in the error list in the last run.",
		}),
		deliverySuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "daybrief_delivery_success",
			Help: "1 when the report was delivered, 0 otherwise.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "daybrief_last_run_timestamp",
			Help: "Unix time of the last run.",
		}),
	}

	r.registry.MustRegister(
		r.runDuration,
		r.sourcesSucceeded,
		r.sourcesFailed,
		r.deliverySuccess,
		r.lastRun,
	)
	return r
}

func (r *Recorder) ObserveRun(report *digest.Report, duration time.Duration) {
	r.runDuration.Set(duration.Seconds())
	r.sourcesSucceeded.Set(float64(len(report.Sources)))
	r.sourcesFailed.Set(float64(len(report.Errors)))
	r.lastRun.Set(float64(report.GeneratedAt.Unix()))
}

func (r *Recorder) ObserveDelivery(ok bool) {
	if ok {
		r.deliverySuccess.Set(1)
	} else {
		r.deliverySuccess.Set(0)
	}
}

// Push sends the gauges to a Pushgateway. An empty URL disables metrics;
// push failures are logged, never fatal.
func (r *Recorder) Push(url string) {
	if url == "" {
		slog.Debug("no pushgateway configured, skipping metrics push")
		return
	}
	if err := push.New(url, pushJobName).Gatherer(r.registry).Push(); err != nil {
		slog.Warn("metrics push failed", "error", err)
		return
	}
	slog.Info("metrics pushed", "url", url)
}

// Registry exposes the underlying registry for tests and scraping.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
