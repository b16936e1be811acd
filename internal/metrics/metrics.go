// Package metrics wires the ensemble driver's run-level counters into
// Prometheus using the standard client_golang registry/collector pattern.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the gauges, counters, and histograms an ensemble run
// reports. Each RunEnsemble call gets its own Registry so repeated runs in
// the same process (tests, evolutionary-search-style outer loops) don't
// collide on metric registration.
type Registry struct {
	registerer prometheus.Registerer

	OriginsFired   *prometheus.CounterVec
	ForksAttached  prometheus.Gauge
	CellsCompleted prometheus.Counter
	CellDuration   prometheus.Histogram
}

// NewRegistry builds a fresh, independent metrics registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		registerer: reg,
		OriginsFired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "redymo_origins_fired_total",
			Help: "Total number of replication origins fired, labeled by cell index.",
		}, []string{"cell"}),
		ForksAttached: factory.NewGauge(prometheus.GaugeOpts{
			Name: "redymo_forks_attached",
			Help: "Number of replication forks currently attached, summed across in-flight cells.",
		}),
		CellsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "redymo_cells_completed_total",
			Help: "Total number of cell simulations that have finished.",
		}),
		CellDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "redymo_cell_duration_seconds",
			Help:    "Wall-clock duration of a single cell's simulation loop.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveOriginsFired records delta newly-fired origins for the given
// cell index.
func (r *Registry) ObserveOriginsFired(cellIndex int, delta int) {
	if delta <= 0 {
		return
	}
	r.OriginsFired.WithLabelValues(strconv.Itoa(cellIndex)).Add(float64(delta))
}

// StartCellTimer begins timing one cell's run; call ObserveDuration on the
// result once the cell finishes.
func (r *Registry) StartCellTimer() *prometheus.Timer {
	return prometheus.NewTimer(r.CellDuration)
}

// AdjustForksAttached adds delta (positive on attach, negative on detach) to
// the attached-fork gauge, summed across every cell currently in flight.
func (r *Registry) AdjustForksAttached(delta int) {
	r.ForksAttached.Add(float64(delta))
}

// Handler returns an http.Handler serving this registry in the Prometheus
// text exposition format, for `redymo run --metrics-addr`.
func (r *Registry) Handler() http.Handler {
	gatherer, ok := r.registerer.(prometheus.Gatherer)
	if !ok {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
