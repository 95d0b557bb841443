// Package metrics exposes prometheus instruments for tracker operations.
package metrics

import (
	"strings"

	"github.com/aquametric/aquatrack/internal/config"
	trackerdomain "github.com/aquametric/aquatrack/internal/tracker/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics counts tracker operations by outcome and rejection code.
type Metrics struct {
	operations *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

// New builds and registers the tracker instruments.
func New(cfg config.Config, registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "aquatrack"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     cfg.Environment,
	}

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "aquatrack_operations_total",
		Help:        "Tracker operations by name and outcome.",
		ConstLabels: constLabels,
	}, []string{"op", "outcome"})

	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "aquatrack_rejections_total",
		Help:        "Tracker rejections by operation and error reason.",
		ConstLabels: constLabels,
	}, []string{"op", "reason"})

	registerer.MustRegister(operations, rejections)

	return &Metrics{
		operations: operations,
		rejections: rejections,
	}
}

// RecordOperation classifies one finished operation.
func (m *Metrics) RecordOperation(op string, err error) {
	if m == nil {
		return
	}
	switch typed := err.(type) {
	case nil:
		m.operations.WithLabelValues(op, OutcomeOK).Inc()
	case *trackerdomain.Error:
		m.operations.WithLabelValues(op, OutcomeRejected).Inc()
		m.rejections.WithLabelValues(op, typed.Reason).Inc()
	default:
		m.operations.WithLabelValues(op, OutcomeError).Inc()
	}
}
