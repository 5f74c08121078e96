// Package metrics exposes Prometheus collectors for the HTTP surface and the
// auth and sentiment paths.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services and middleware depend on.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordAuthEvent(event, outcome string)
	RecordSentiment(source string)
}

type Collector struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	authEvents *prometheus.CounterVec
	sentiment  *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindcare_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindcare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindcare_auth_events_total",
			Help: "Login, register, refresh and logout outcomes.",
		}, []string{"event", "outcome"}),
		sentiment: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindcare_sentiment_classifications_total",
			Help: "Sentiment classifications by source (llm or keyword fallback).",
		}, []string{"source"}),
	}

	reg.MustRegister(c.requests, c.latency, c.authEvents, c.sentiment)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordAuthEvent(event, outcome string) {
	c.authEvents.WithLabelValues(event, outcome).Inc()
}

func (c *Collector) RecordSentiment(source string) {
	c.sentiment.WithLabelValues(source).Inc()
}

// Handler returns the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordAuthEvent(string, string) {}
func (Nop) RecordSentiment(string) {}
