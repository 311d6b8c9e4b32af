package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesHandled counts inbound chat updates by registration state.
	UpdatesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillbot_updates_handled_total",
			Help: "The total number of inbound chat updates handled.",
		},
		[]string{"state"},
	)

	// NotificationsDispatched counts successful per-user deliveries.
	NotificationsDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pillbot_notifications_dispatched_total",
			Help: "The total number of reminder messages delivered.",
		},
	)

	// NotificationsFailed counts per-user dispatch failures by stage.
	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillbot_notifications_failed_total",
			Help: "The total number of per-user dispatch failures.",
		},
		[]string{"stage"},
	)

	// TickDuration is a histogram of full fan-out execution time.
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pillbot_tick_duration_seconds",
			Help:    "A histogram of scheduled fan-out duration.",
			Buckets: prometheus.DefBuckets,
		},
	)
)
