// Package metrics defines the custom Prometheus metrics for the EventSphere
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventsphere"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "2fa_required", "2fa_invalid"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts accounts created through self-service signup.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created through signup.",
	},
)

// TokenRevocationsTotal counts tokens added to the revocation list at logout.
var TokenRevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_revocations_total",
		Help:      "Total number of session tokens revoked at logout.",
	},
)

// TwoFactorChecksTotal counts TOTP verification attempts.
// Label:
//   - result: "success" or "failure"
var TwoFactorChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "two_factor_checks_total",
		Help:      "Total number of TOTP code verifications, by result.",
	},
	[]string{"result"},
)

// BookmarksSavedTotal counts saved-event upserts.
var BookmarksSavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookmarks_saved_total",
		Help:      "Total number of events bookmarked (including re-saves).",
	},
)

// UpstreamRequestsTotal counts calls to the external events provider.
// Labels:
//   - endpoint: "search", "upcoming", "trending", "details", "admin"
//   - result: "success" or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests proxied to the events provider.",
	},
	[]string{"endpoint", "result"},
)
