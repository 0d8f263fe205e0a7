// Package metrics provides Prometheus metrics for pipeline runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "yt_summarize"

// Metrics holds the pipeline collectors and the registry they live in.
// All Record methods are safe on a nil receiver so one-shot runs can skip
// metrics entirely.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal     *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec

	TranscriptionChunks  prometheus.Counter
	LLMFallbacks         prometheus.Counter
	SummaryChunkFailures prometheus.Counter
	DegradedSummaries    prometheus.Counter
	SpeechFailures       prometheus.Counter
	EventPublishTotal    *prometheus.CounterVec
	EventPublishErrors   *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by result",
		}, []string{"result"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}, []string{"stage"}),
		TranscriptionChunks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_chunks_total",
			Help:      "Total number of audio segments transcribed after splitting",
		}),
		LLMFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_fallback_total",
			Help:      "Total number of retries on the fallback model after a context length error",
		}),
		SummaryChunkFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_chunk_failures_total",
			Help:      "Total number of transcript chunks replaced by a placeholder",
		}),
		DegradedSummaries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_summaries_total",
			Help:      "Total number of summaries returned as concatenated chunk summaries",
		}),
		SpeechFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "speech_failures_total",
			Help:      "Total number of skipped audio summaries",
		}),
		EventPublishTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_total",
			Help:      "Total number of completion events published",
		}, []string{"topic"}),
		EventPublishErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_errors_total",
			Help:      "Total number of completion event publish errors",
		}, []string{"topic"}),
	}
}

// RecordRun records a finished pipeline run; result is "success" or "failure".
func (m *Metrics) RecordRun(result string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(result).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordTranscriptionChunk records one transcribed audio segment.
func (m *Metrics) RecordTranscriptionChunk() {
	if m == nil {
		return
	}
	m.TranscriptionChunks.Inc()
}

// RecordLLMFallback records a retry on the fallback model.
func (m *Metrics) RecordLLMFallback() {
	if m == nil {
		return
	}
	m.LLMFallbacks.Inc()
}

// RecordSummaryChunkFailure records a chunk replaced by a placeholder.
func (m *Metrics) RecordSummaryChunkFailure() {
	if m == nil {
		return
	}
	m.SummaryChunkFailures.Inc()
}

// RecordDegradedSummary records a summary flagged with a degradation note.
func (m *Metrics) RecordDegradedSummary() {
	if m == nil {
		return
	}
	m.DegradedSummaries.Inc()
}

// RecordSpeechFailure records a skipped audio summary.
func (m *Metrics) RecordSpeechFailure() {
	if m == nil {
		return
	}
	m.SpeechFailures.Inc()
}

// RecordEventPublish records a completion event publish attempt.
func (m *Metrics) RecordEventPublish(topic string, err error) {
	if m == nil {
		return
	}
	m.EventPublishTotal.WithLabelValues(topic).Inc()
	if err != nil {
		m.EventPublishErrors.WithLabelValues(topic).Inc()
	}
}
