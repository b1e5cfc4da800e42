package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ReviewsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "created_total", Help: "Reviews accepted by POST."},
		[]string{"location"},
	)
	Queries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "reviews", Name: "queries_total", Help: "Filter/rank queries served."},
	)
	SentimentCompound = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "sentiment_compound",
			Help:    "Compound score of every scored review.",
			Buckets: prometheus.LinearBuckets(-1, 0.25, 9),
		},
	)
	StoreSize = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "reviews", Name: "store_size", Help: "Reviews held in memory."},
	)
	PublishEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "publish_events_total", Help: "Review event publishes."},
		[]string{"channel", "result"}, // result: ok|error
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ReviewsCreated, Queries, SentimentCompound, StoreSize, PublishEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveCreated(location string, compound float64, storeSize int) {
	ReviewsCreated.WithLabelValues(location).Inc()
	SentimentCompound.Observe(compound)
	StoreSize.Set(float64(storeSize))
}

func ObserveQuery(compounds []float64) {
	Queries.Inc()
	for _, c := range compounds {
		SentimentCompound.Observe(c)
	}
}

func ObservePublish(channel string, err error) {
	PublishEvents.WithLabelValues(channel, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
