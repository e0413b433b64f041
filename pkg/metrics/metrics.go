// Package metrics provides Prometheus metrics collection for completion requests.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/lewisedginton/llm_completions/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	subsystem = "completions"
)

// Outcome labels for completion request counters.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics provides Prometheus metrics collection for completion requests.
type Metrics struct {
	reg *prometheus.Registry

	CompletionRequests *prometheus.CounterVec
	CompletionDuration *prometheus.HistogramVec
	PromptTokens       *prometheus.CounterVec
	CompletionTokens   *prometheus.CounterVec

	stopChan chan os.Signal
	errChan  chan error
	log      logger.Logger
}

// NewMetrics creates a new Metrics instance with completion collectors registered.
func NewMetrics(l logger.Logger) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		log: l,
	}

	m.CompletionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Total completion requests by provider and outcome",
	}, []string{"provider", "outcome"})
	m.reg.MustRegister(m.CompletionRequests)

	m.CompletionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Completion request duration in seconds",
		Buckets:   []float64{0.1, 0.3, 0.5, 0.7, 1.0, 3.0, 5.0, 7.0, 10.0, 30.0},
	}, []string{"provider"})
	m.reg.MustRegister(m.CompletionDuration)

	m.PromptTokens = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "prompt_tokens_total",
		Help:      "Total prompt tokens consumed by provider",
	}, []string{"provider"})
	m.reg.MustRegister(m.PromptTokens)

	m.CompletionTokens = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "completion_tokens_total",
		Help:      "Total completion tokens produced by provider",
	}, []string{"provider"})
	m.reg.MustRegister(m.CompletionTokens)

	return m
}

// ObserveCompletion records one completion request with its duration and token usage.
func (m *Metrics) ObserveCompletion(provider string, err error, duration time.Duration, promptTokens, completionTokens int64) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.CompletionRequests.WithLabelValues(provider, outcome).Inc()
	m.CompletionDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if promptTokens > 0 {
		m.PromptTokens.WithLabelValues(provider).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.CompletionTokens.WithLabelValues(provider).Add(float64(completionTokens))
	}
}

// AddCustomMetric registers an additional collector on the registry.
func (m *Metrics) AddCustomMetric(c prometheus.Collector) {
	m.reg.MustRegister(c)
}

// Handler returns the HTTP handler serving the /metrics payload.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Listen starts a metrics HTTP listener on the given port.
func (m *Metrics) Listen(port int) {
	m.log.Info("Starting metrics listener", logger.IntField("port", port))
	mux := http.NewServeMux()
	mux.Handle("/", http.NotFoundHandler())
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           m.log.HTTPMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal)
	errChan := make(chan error)
	go func() {
		errChan <- server.ListenAndServe()
	}()
	go func() {
		for {
			sig := <-sigChan
			if sig == os.Interrupt {
				m.log.Info("Stopping metrics listener")
				_ = server.Shutdown(context.Background())
				return
			}
		}
	}()
	m.errChan = errChan
	m.stopChan = sigChan
}

// Stop signals the metrics listener to shut down and waits for the server
// goroutine to exit.
func (m *Metrics) Stop() {
	if m.stopChan == nil {
		return
	}
	m.stopChan <- os.Interrupt
	if m.errChan != nil {
		<-m.errChan
	}
}
