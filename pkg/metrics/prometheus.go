package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerCalls   *prometheus.CounterVec
	callLatency     *prometheus.HistogramVec
	queueDepth      *prometheus.GaugeVec
	phaseDuration   *prometheus.HistogramVec
	phaseOutcomes   *prometheus.CounterVec
	predictionsMade *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picker_provider_calls_total",
				Help: "Outbound provider calls by endpoint and status",
			},
			[]string{"provider", "endpoint", "status"},
		),
		callLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "picker_provider_call_seconds",
				Help:    "Outbound provider call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "endpoint"},
		),
		queueDepth: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "picker_scheduler_queue_depth",
				Help: "Queued units per provider scheduler",
			},
			[]string{"provider"},
		),
		phaseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "picker_collection_phase_seconds",
				Help:    "Collection phase duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		phaseOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picker_collection_phases_total",
				Help: "Collection phase outcomes",
			},
			[]string{"phase", "status"},
		),
		predictionsMade: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picker_predictions_total",
				Help: "Generated predictions by confidence tier",
			},
			[]string{"confidence"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picker_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordProviderCall records one outbound call with its latency.
func (r *Recorder) RecordProviderCall(provider, endpoint, status string, seconds float64) {
	r.providerCalls.WithLabelValues(provider, endpoint, status).Inc()
	r.callLatency.WithLabelValues(provider, endpoint).Observe(seconds)
}

// RecordQueueDepth records the scheduler queue depth for a provider.
func (r *Recorder) RecordQueueDepth(provider string, depth int) {
	r.queueDepth.WithLabelValues(provider).Set(float64(depth))
}

// RecordPhase records a collection phase outcome and duration.
func (r *Recorder) RecordPhase(phase, status string, seconds float64) {
	r.phaseOutcomes.WithLabelValues(phase, status).Inc()
	r.phaseDuration.WithLabelValues(phase).Observe(seconds)
}

// RecordPrediction records one generated prediction.
func (r *Recorder) RecordPrediction(confidence string) {
	r.predictionsMade.WithLabelValues(confidence).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
