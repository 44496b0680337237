package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	EngineScoring        = "scoring"
	EnginePricing        = "pricing"
	EngineUsage          = "usage"
	EngineRecommendation = "recommendation"
	EngineContract       = "contract"
)

var (
	// Wall time of one top-level engine computation
	EngineDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "purchasing_engine_duration_seconds",
		Help:    "Duration of purchasing engine computations",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})

	VendorAnalyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchasing_vendor_analyses_total",
		Help: "Vendor scoring runs by outcome",
	}, []string{"outcome"})

	RecommendationSets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchasing_recommendation_sets_total",
		Help: "Recommendation sets produced, by whether a split order was offered",
	}, []string{"split_offered"})

	ContractAlerts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchasing_contract_alerts_total",
		Help: "Contract alerts emitted by severity",
	}, []string{"severity"})

	UsageSignals = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchasing_usage_signals_total",
		Help: "Usage analyzer alerts, opportunities and anomalies by kind",
	}, []string{"kind"})
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			EngineDuration,
			VendorAnalyses,
			RecommendationSets,
			ContractAlerts,
			UsageSignals,
		)
	})
}

// ObserveSince records the time elapsed since start for engine.
func ObserveSince(engine string, start time.Time) {
	EngineDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
}

func RecordVendorAnalysis(outcome string) {
	VendorAnalyses.WithLabelValues(outcome).Inc()
}

func RecordRecommendationSet(splitOffered bool) {
	RecommendationSets.WithLabelValues(strconv.FormatBool(splitOffered)).Inc()
}

func RecordContractAlert(severity string) {
	ContractAlerts.WithLabelValues(severity).Inc()
}

func RecordUsageSignal(kind string) {
	UsageSignals.WithLabelValues(kind).Inc()
}
