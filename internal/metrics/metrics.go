package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "behavioral_assessment"

// Metrics exposes Prometheus collectors for sessions, scoring and HTTP traffic.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	sessionsStarted    *prometheus.CounterVec
	sessionTransitions *prometheus.CounterVec
	assessmentsScored  *prometheus.CounterVec
	scorePercentage    *prometheus.HistogramVec
	persistFailures    *prometheus.CounterVec
	invitations        *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// MustNewMetrics registers the collectors with reg and panics on a
// registration conflict. Tests pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		sessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "started_total",
				Help:      "Assessment sessions started, by kind.",
			},
			[]string{"kind"},
		),
		sessionTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "transitions_total",
				Help:      "Session state machine transitions, by kind, transition and outcome.",
			},
			[]string{"kind", "transition", "outcome"},
		),
		assessmentsScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scoring",
				Name:      "assessments_scored_total",
				Help:      "Completed assessments, by kind and dominant label.",
			},
			[]string{"kind", "dominant"},
		),
		scorePercentage: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "scoring",
				Name:      "percentage",
				Help:      "Headline percentage of completed assessments.",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
			[]string{"kind"},
		),
		persistFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scoring",
				Name:      "persist_failures_total",
				Help:      "Results that could not be written to the database.",
			},
			[]string{"kind"},
		),
		invitations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invitation",
				Name:      "events_total",
				Help:      "Invitation lifecycle events, by resulting status.",
			},
			[]string{"status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(
		m.sessionsStarted,
		m.sessionTransitions,
		m.assessmentsScored,
		m.scorePercentage,
		m.persistFailures,
		m.invitations,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) IncSessionStarted(kind string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(kind).Inc()
}

// ObserveTransition counts one Answer/Next/Previous/Complete/Retake call.
func (m *Metrics) ObserveTransition(kind, transition string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.sessionTransitions.WithLabelValues(kind, transition, outcome).Inc()
}

func (m *Metrics) ObserveScored(kind, dominant string, percentage float64) {
	if m == nil {
		return
	}
	m.assessmentsScored.WithLabelValues(kind, dominant).Inc()
	m.scorePercentage.WithLabelValues(kind).Observe(percentage)
}

func (m *Metrics) IncPersistFailure(kind string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncInvitation(status string) {
	if m == nil {
		return
	}
	m.invitations.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// GinMiddleware records request latency labelled with the matched route
// template rather than the raw path.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
