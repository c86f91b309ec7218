package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters/histograms for the lead capture and
// notification flows.
type PipelineMetrics struct {
	submissionsTotal *prometheus.CounterVec
	emailsTotal      *prometheus.CounterVec
	notifyLatency    *prometheus.HistogramVec
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presq",
			Subsystem: "leadcapture",
			Name:      "submissions_total",
			Help:      "Total contact form submissions",
		}, []string{"status", "priority"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presq",
			Subsystem: "leadcapture",
			Name:      "notification_emails_total",
			Help:      "Total notification email sends",
		}, []string{"email_type", "status"}),
		notifyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "presq",
			Subsystem: "leadcapture",
			Name:      "notify_latency_seconds",
			Help:      "Latency of notification event processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.emailsTotal, m.notifyLatency)
	return m
}

func (m *PipelineMetrics) ObserveSubmission(status, priority string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status, priority).Inc()
}

func (m *PipelineMetrics) ObserveEmail(emailType, status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(emailType, status).Inc()
}

func (m *PipelineMetrics) ObserveNotifyLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.notifyLatency.WithLabelValues(outcome).Observe(seconds)
}
