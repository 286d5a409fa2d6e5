package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// callsTotal counts runtime calls by kind (query/update) and outcome
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogstore_calls_total",
		Help: "Total calls executed by the runtime",
	}, []string{"kind", "result"})

	// callDuration tracks time spent executing a call, excluding queueing
	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogstore_call_duration_seconds",
		Help:    "Call execution time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	}, []string{"kind"})

	checkpointFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogstore_checkpoint_failures_total",
		Help: "Checkpoints that could not be saved after an update",
	})

	// upgradesTotal counts read-entry responses replayed on the write entry
	upgradesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogstore_http_upgrades_total",
		Help: "HTTP requests upgraded from the read to the write entry",
	})

	httpResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogstore_http_responses_total",
		Help: "HTTP gateway responses by method and status code",
	}, []string{"method", "status"})

	rpcCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogstore_rpc_calls_total",
		Help: "RPC calls by method name",
	}, []string{"method"})
)
