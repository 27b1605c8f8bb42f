package funlib

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics counts what the dispatcher does. A nil *Metrics counts nothing
type Metrics struct {
	registry *prometheus.Registry

	calls       *prometheus.CounterVec
	warnings    prometheus.Counter
	arityErrors prometheus.Counter
	undefined   prometheus.Counter
	macroCalls  prometheus.Counter
	depthAborts prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easyfun_calls_total",
				Help: "number of function calls by function name",
			},
			[]string{"function"},
		),
		warnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "easyfun_warnings_total",
				Help: "number of warnings reported by functions",
			},
		),
		arityErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "easyfun_arity_errors_total",
				Help: "number of calls rejected because of the argument count",
			},
		),
		undefined: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "easyfun_undefined_calls_total",
				Help: "number of calls of undefined functions",
			},
		),
		macroCalls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "easyfun_macro_calls_total",
				Help: "number of macro invocations",
			},
		),
		depthAborts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "easyfun_depth_aborts_total",
				Help: "number of macro invocations aborted by the depth limit",
			},
		),
	}
	m.registry = prometheus.NewPedanticRegistry()
	reg := m.registry

	reg.MustRegister(m.calls)
	reg.MustRegister(m.warnings)
	reg.MustRegister(m.arityErrors)
	reg.MustRegister(m.undefined)
	reg.MustRegister(m.macroCalls)
	reg.MustRegister(m.depthAborts)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText writes all counters in the prometheus text format
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) call(name string) {
	if m != nil {
		m.calls.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) warning() {
	if m != nil {
		m.warnings.Inc()
	}
}

func (m *Metrics) arityError() {
	if m != nil {
		m.arityErrors.Inc()
	}
}

func (m *Metrics) undefinedCall() {
	if m != nil {
		m.undefined.Inc()
	}
}

func (m *Metrics) macroCall() {
	if m != nil {
		m.macroCalls.Inc()
	}
}

func (m *Metrics) depthAbort() {
	if m != nil {
		m.depthAborts.Inc()
	}
}
