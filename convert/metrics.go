package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/metric"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/c360studio/cimrdfs2linkml/cimrdfs"
)

const metricsNamespace = "cimrdfs2linkml"

// Conversion outcomes used as the status label.
const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// convertMetrics holds Prometheus metrics for profile conversions.
type convertMetrics struct {
	conversions *prometheus.CounterVec // By status
	resources   *prometheus.CounterVec // By kind
	duration    prometheus.Histogram
}

// newConvertMetrics creates and registers conversion metrics with the provided registry.
func newConvertMetrics(registry *metric.MetricsRegistry) (*convertMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &convertMetrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "conversions_total",
			Help:      "Total number of profile conversions",
		}, []string{"status"}),

		resources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resources_total",
			Help:      "Total number of ontology resources converted",
		}, []string{"kind"}), // kind: class, enumeration, property, enum_value

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "conversion_duration_seconds",
			Help:      "Profile conversion duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}

	if err := registry.RegisterCounterVec("convert", "conversions_total", m.conversions); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("convert", "resources_total", m.resources); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram("convert", "conversion_duration", m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

// recordSuccess records a completed conversion.
func (m *convertMetrics) recordSuccess(stats cimrdfs.Stats, duration time.Duration) {
	if m == nil {
		return
	}

	m.conversions.WithLabelValues(statusSuccess).Inc()
	m.duration.Observe(duration.Seconds())
	m.resources.WithLabelValues("class").Add(float64(stats.Classes))
	m.resources.WithLabelValues("enumeration").Add(float64(stats.Enumerations))
	m.resources.WithLabelValues("property").Add(float64(stats.Properties))
	m.resources.WithLabelValues("enum_value").Add(float64(stats.EnumValues))
}

// recordFailure records a failed conversion.
func (m *convertMetrics) recordFailure(duration time.Duration) {
	if m == nil {
		return
	}

	m.conversions.WithLabelValues(statusFailure).Inc()
	m.duration.Observe(duration.Seconds())
}

// WriteTextfile writes the conversion metrics of registry to path in the
// Prometheus text format, for the node exporter textfile collector.
// Runtime and platform metrics of the registry are left out.
func WriteTextfile(registry *metric.MetricsRegistry, path string) error {
	if registry == nil {
		return fmt.Errorf("write metrics: no registry")
	}

	gatherer := prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		families, err := registry.PrometheusRegistry().Gather()
		if err != nil {
			return nil, err
		}
		own := families[:0]
		for _, mf := range families {
			if strings.HasPrefix(mf.GetName(), metricsNamespace+"_") {
				own = append(own, mf)
			}
		}
		return own, nil
	})

	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
