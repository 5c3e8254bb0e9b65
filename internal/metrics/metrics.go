package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackmap_registrations_total", Help: "Total hackathon registrations"},
	)
	TeamsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackmap_teams_created_total", Help: "Total teams created"},
	)
	TeamJoins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hackmap_team_joins_total", Help: "Team join attempts by outcome"},
		[]string{"outcome"},
	)
	Endorsements = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackmap_endorsements_total", Help: "Total idea endorsements"},
	)
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hackmap_notifications_total", Help: "Notifications appended by type"},
		[]string{"type"},
	)
	RemindersScheduled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackmap_reminders_scheduled_total", Help: "Deadline reminders enqueued"},
	)
	HTTPRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hackmap_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

var once sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(Registrations, TeamsCreated, TeamJoins, Endorsements, Notifications, RemindersScheduled, HTTPRequests)
	})
}
