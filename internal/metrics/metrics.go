package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leadscout_search_runs_total",
		Help: "Total post searches",
	})
	LLMCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_llm_calls_total",
		Help: "Total LLM gateway calls",
	}, []string{"provider"})
	LLMErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_llm_errors_total",
		Help: "Total LLM gateway failures (soft, absorbed by callers)",
	}, []string{"provider"})
	RepliesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leadscout_replies_sent_total",
		Help: "Total reply dispatches that succeeded",
	})
	RepliesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leadscout_replies_failed_total",
		Help: "Total reply dispatches that failed",
	})
	AnalyzeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadscout_analyze_duration_seconds",
		Help:    "Analyze flow duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	PromoteDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadscout_promote_duration_seconds",
		Help:    "Promote flow duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_command_runs_total",
		Help: "Total CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_command_errors_total",
		Help: "Total CLI command failures",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(
		SearchRuns, LLMCalls, LLMErrors, RepliesSent, RepliesFailed,
		AnalyzeDuration, PromoteDuration, CommandRuns, CommandErrors,
	)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// ObserveAnalyzeDuration records one analyze run duration.
func ObserveAnalyzeDuration(start time.Time) { AnalyzeDuration.Observe(time.Since(start).Seconds()) }

// ObservePromoteDuration records one promote run duration.
func ObservePromoteDuration(start time.Time) { PromoteDuration.Observe(time.Since(start).Seconds()) }

// IncCommandRun counts a CLI command invocation.
func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd).Inc() }

// IncCommandError counts a CLI command failure.
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }
