package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	quoteSetsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotewise_quote_sets_created_total",
		Help: "Number of quote sets created over HTTP.",
	})

	comparisonsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotewise_comparisons_total",
		Help: "Number of comparisons executed over HTTP.",
	})

	questionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotewise_questions_total",
		Help: "Number of advisor questions answered over HTTP.",
	})
)
