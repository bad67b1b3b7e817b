// Package metrics defines and registers all custom Prometheus metrics for the
// employee API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry on
// import; the HTTP-level metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_api"

// RegistrationsTotal counts successful employee registrations.
// Label:
//   - role: the registered role ("developer", "designer", "manager")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of employees registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "not_found", "bad_password", "throttled",
//     "token_error", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts access-token checks performed by the auth
// middleware.
// Label:
//   - result: "success", "missing", "invalid", "identity_gone"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access token verifications, by result.",
	},
	[]string{"result"},
)

// EmployeesDeletedTotal counts deletions.
// Label:
//   - initiator: "self" for the authenticated delete, "by_id" for the
//     id-addressed delete endpoint
var EmployeesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_deleted_total",
		Help:      "Total number of employee deletions, by initiator.",
	},
	[]string{"initiator"},
)
