// metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChallengeReports counts completion reports by outcome (success, failure).
	ChallengeReports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runonstreet",
		Name:      "challenge_reports_total",
		Help:      "Challenge completion reports persisted, by outcome.",
	}, []string{"outcome"})

	// FraudFlags counts suspected runs by the rule that flagged them.
	FraudFlags = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runonstreet",
		Name:      "fraud_flags_total",
		Help:      "Successful runs flagged as suspected fraud, by rule.",
	}, []string{"rule"})

	// Validations counts merchant scans by result (validated, not_found, error).
	Validations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runonstreet",
		Name:      "validations_total",
		Help:      "Merchant redemption-code scans, by result.",
	}, []string{"result"})

	// NearbyDegraded counts nearby searches answered with an empty list
	// because the offer fetch failed.
	NearbyDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "runonstreet",
		Name:      "nearby_degraded_total",
		Help:      "Nearby-offer requests that degraded to an empty result.",
	})

	// PoolOpenConnections mirrors sql.DBStats.OpenConnections.
	PoolOpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "runonstreet",
		Name:      "db_pool_open_connections",
		Help:      "Open connections in the database pool.",
	})

	// PoolInUse mirrors sql.DBStats.InUse.
	PoolInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "runonstreet",
		Name:      "db_pool_in_use_connections",
		Help:      "Connections currently in use.",
	})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	ResultValidated = "validated"
	ResultNotFound  = "not_found"
	ResultError     = "error"
)
