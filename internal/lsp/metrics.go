package lsp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricDocumentsScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lexdfa",
		Subsystem: "lsp",
		Name:      "documents_scanned_total",
	})
	metricLexicalErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lexdfa",
		Subsystem: "lsp",
		Name:      "lexical_errors_total",
	})
	metricAutomatonCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexdfa",
		Subsystem: "lsp",
		Name:      "automaton_cache_total",
	}, []string{"result"})
	metricAutomatonStates = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lexdfa",
		Subsystem: "lsp",
		Name:      "automaton_states",
	})
	metricOpenDocuments = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lexdfa",
		Subsystem: "lsp",
		Name:      "open_documents",
	})
)
