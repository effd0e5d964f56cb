// Package metrics exports coordinator outcomes as Prometheus counters.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventcoord/internal/domain"
)

const namespace = "eventcoord"

// Recorder implements services.Metrics.
type Recorder struct {
	gatherer         prometheus.Gatherer
	notifications    *prometheus.CounterVec
	rsvps            *prometheus.CounterVec
	transitions      *prometheus.CounterVec
	staffAssignments *prometheus.CounterVec
}

// New registers the coordinator counters on reg. Use prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Guest notifications attempted, by kind and delivery result.",
		}, []string{"kind", "delivered"}),
		rsvps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rsvps_total",
			Help:      "Processed RSVP responses, by resulting status.",
		}, []string{"status"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_transitions_total",
			Help:      "Event lifecycle transitions, by target status.",
		}, []string{"status"}),
		staffAssignments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staff_assignments_total",
			Help:      "Staff assignment attempts, by result.",
		}, []string{"result"}),
	}
}

func (r *Recorder) ObserveNotification(kind string, delivered bool) {
	r.notifications.WithLabelValues(kind, strconv.FormatBool(delivered)).Inc()
}

func (r *Recorder) ObserveRSVP(status domain.RSVPStatus) {
	r.rsvps.WithLabelValues(string(status)).Inc()
}

func (r *Recorder) ObserveTransition(status domain.EventStatus) {
	r.transitions.WithLabelValues(string(status)).Inc()
}

func (r *Recorder) ObserveStaffAssignment(result string) {
	r.staffAssignments.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
