package api

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warp/payroll-engine/payroll"
)

// Metrics holds the API's Prometheus collectors. Each Metrics owns its
// registry so several handlers can coexist in one process (tests).
type Metrics struct {
	Registry *prometheus.Registry

	PaymentsComputed prometheus.Counter
	PaymentErrors    *prometheus.CounterVec
	PaidHours        prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PaymentsComputed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payroll",
			Name:      "payments_computed_total",
			Help:      "Payments computed successfully.",
		}),
		PaymentErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payroll",
			Name:      "payment_errors_total",
			Help:      "Failed payment calculations by error kind.",
		}, []string{"kind"}),
		PaidHours: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "payroll",
			Name:      "paid_hours_total",
			Help:      "Rounded hours paid across all computed payments.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observePayment(p *payroll.Payment) {
	m.PaymentsComputed.Inc()
	for _, l := range p.Lines {
		m.PaidHours.Add(l.PaidHours.InexactFloat64())
	}
}

func (m *Metrics) observeError(err error) {
	m.PaymentErrors.WithLabelValues(errorKind(err)).Inc()
}

// errorKind maps an error to a stable metric label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, payroll.ErrInvalidInputFormat):
		return "invalid_input_format"
	case errors.Is(err, payroll.ErrInvalidIntervalFormat):
		return "invalid_interval_format"
	case errors.Is(err, payroll.ErrInvalidDay):
		return "invalid_day"
	case errors.Is(err, payroll.ErrInvalidTimeInterval):
		return "invalid_time_interval"
	case errors.Is(err, payroll.ErrScheduleNotFound):
		return "schedule_not_found"
	case errors.Is(err, payroll.ErrScheduleLookup):
		return "schedule_lookup"
	default:
		return "internal"
	}
}
