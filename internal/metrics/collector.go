package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	togglesTotal       *prometheus.CounterVec
	auditWriteFailures prometheus.Counter
	featureDenied      *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func NewCollector() *Collector {
	return &Collector{
		togglesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_module_toggles_total",
			Help: "Module toggle attempts by module, direction and outcome",
		}, []string{"module", "direction", "outcome"}),

		auditWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clinic_audit_write_failures_total",
			Help: "Best-effort audit writes that failed",
		}),

		featureDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_feature_denied_total",
			Help: "Requests blocked because a module is disabled",
		}, []string{"feature"}),

		httpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "HTTP request duration by method, route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (c *Collector) RecordToggle(module string, enabled bool, outcome string) {
	direction := "deactivate"
	if enabled {
		direction = "activate"
	}
	c.togglesTotal.WithLabelValues(module, direction, outcome).Inc()
}

func (c *Collector) RecordAuditFailure() {
	c.auditWriteFailures.Inc()
}

func (c *Collector) RecordFeatureDenied(feature string) {
	c.featureDenied.WithLabelValues(feature).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
