package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records metadata for the bill processing pipeline.
type PipelineMetrics struct {
	uploadDuration      *prometheus.HistogramVec
	billsProcessed      *prometheus.CounterVec
	classifierFallbacks prometheus.Counter
	listsGenerated      prometheus.Counter
	listsRejected       *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	uploadDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bill_upload_duration_seconds",
		Help:    "Duration of bill upload processing in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	billsProcessed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bills_processed",
		Help: "Bill uploads by outcome.",
	}, []string{"outcome"})
	classifierFallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "classifier_fallbacks",
		Help: "Line items assigned the fallback category after a classifier failure.",
	})
	listsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shopping_lists_generated",
		Help: "Shopping lists generated and persisted.",
	})
	listsRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopping_lists_rejected",
		Help: "Shopping list generations rejected by reason.",
	}, []string{"reason"})
	reg.MustRegister(uploadDuration, billsProcessed, classifierFallbacks, listsGenerated, listsRejected)
	return &PipelineMetrics{
		uploadDuration:      uploadDuration,
		billsProcessed:      billsProcessed,
		classifierFallbacks: classifierFallbacks,
		listsGenerated:      listsGenerated,
		listsRejected:       listsRejected,
	}
}

// ObserveUploadStage records the duration for one stage of the upload pipeline.
func (p *PipelineMetrics) ObserveUploadStage(stage string, duration time.Duration) {
	if p == nil || p.uploadDuration == nil {
		return
	}
	p.uploadDuration.WithLabelValues(normalizeLabel(stage)).Observe(duration.Seconds())
}

// IncBillsProcessed increments the processed counter for the given outcome.
func (p *PipelineMetrics) IncBillsProcessed(outcome string) {
	if p == nil || p.billsProcessed == nil {
		return
	}
	p.billsProcessed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncClassifierFallbacks increments the fallback-category counter.
func (p *PipelineMetrics) IncClassifierFallbacks() {
	if p == nil || p.classifierFallbacks == nil {
		return
	}
	p.classifierFallbacks.Inc()
}

// IncListsGenerated increments the generated shopping list counter.
func (p *PipelineMetrics) IncListsGenerated() {
	if p == nil || p.listsGenerated == nil {
		return
	}
	p.listsGenerated.Inc()
}

// IncListsRejected increments the rejected counter for the given reason.
func (p *PipelineMetrics) IncListsRejected(reason string) {
	if p == nil || p.listsRejected == nil {
		return
	}
	p.listsRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
