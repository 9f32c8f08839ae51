// Package metrics exposes Prometheus counters for the HTTP surface. Served
// on a separate listener so the metrics port never faces the public internet.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled HTTP requests by route group and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcyon_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"group", "status"})

	// PageViewsTracked counts accepted analytics beacons.
	PageViewsTracked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halcyon_page_views_tracked_total",
		Help: "Accepted analytics beacons.",
	})

	// OriginRejections counts requests blocked by the same-origin guard.
	OriginRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halcyon_origin_rejections_total",
		Help: "Mutating requests rejected by the same-origin guard.",
	})

	// BackendErrors counts failed calls to the hosted backend.
	BackendErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "halcyon_backend_errors_total",
		Help: "Failed calls to the hosted backend.",
	}, []string{"resource"})

	// NewsletterSignups counts accepted newsletter subscriptions.
	NewsletterSignups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "halcyon_newsletter_signups_total",
		Help: "Accepted newsletter subscriptions.",
	})
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
