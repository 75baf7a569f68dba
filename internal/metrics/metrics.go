package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	VotesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "votes_total",
			Help: "Total upvotes recorded",
		},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"}, // ok|bad_email|bad_password
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(VotesTotal)
	prometheus.MustRegister(LoginsTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
