package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Observer is the process wide metrics collector.
var Observer = &Metrics{
	runs: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "impute",
		Name:      "runs_total",
		Help:      "Completed imputation runs.",
	}, []string{"algorithm", "dataset"}),
	duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "impute",
		Name:      "run_duration_seconds",
		Help:      "Wall time of one imputation run.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"algorithm", "dataset"}),
	rmse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "impute",
		Name:      "run_rmse",
		Help:      "RMSE of the last completed run.",
	}, []string{"algorithm", "dataset"}),
}

func init() {
	prometheus.MustRegister(Observer.runs, Observer.duration, Observer.rmse)
}

// Metrics tracks run level benchmark observations.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rmse     *prometheus.GaugeVec
}

// ObserveRun records one completed imputation run.
func (m *Metrics) ObserveRun(algorithm, dataset string, rmse, seconds float64) {
	m.runs.WithLabelValues(algorithm, dataset).Inc()
	m.duration.WithLabelValues(algorithm, dataset).Observe(seconds)
	m.rmse.WithLabelValues(algorithm, dataset).Set(rmse)
}
