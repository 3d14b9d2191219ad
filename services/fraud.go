// services/fraud.go
package services

import "time"

// FraudReport carries the fields of a completion report the rules look at.
type FraudReport struct {
	Success        bool
	StartedAt      time.Time
	CompletedAt    *time.Time
	DistanceMeters *float64
}

// elapsedSeconds is false when the completion time is unknown.
func (r FraudReport) elapsedSeconds() (float64, bool) {
	if r.CompletedAt == nil {
		return 0, false
	}
	return r.CompletedAt.Sub(r.StartedAt).Seconds(), true
}

// FraudVerdict is computed once per run and stored alongside it.
type FraudVerdict struct {
	Suspected bool
	Rule      string
	Reason    *string
}

// FraudRule is one (predicate, reason) pair. Matches must return false when a
// field it needs is missing.
type FraudRule struct {
	Name    string
	Reason  string
	Matches func(FraudReport) bool
}

const (
	maxPlausibleDistanceMeters = 2000
	minPlausibleElapsedSeconds = 5
	velocityDistanceMeters     = 800
	velocityElapsedSeconds     = 30
)

// FraudRules is evaluated in order; the first match wins. A report can match
// several rules, so the order decides which reason is recorded.
var FraudRules = []FraudRule{
	{
		Name:   "implausible_range",
		Reason: "distance exceeds plausible range for a successful challenge",
		Matches: func(r FraudReport) bool {
			return r.DistanceMeters != nil && *r.DistanceMeters > maxPlausibleDistanceMeters
		},
	},
	{
		Name:   "implausible_speed",
		Reason: "completion reported in under 5 seconds",
		Matches: func(r FraudReport) bool {
			elapsed, ok := r.elapsedSeconds()
			return ok && elapsed < minPlausibleElapsedSeconds
		},
	},
	{
		Name:   "implausible_velocity",
		Reason: "travel of more than 800 meters in under 30 seconds",
		Matches: func(r FraudReport) bool {
			elapsed, ok := r.elapsedSeconds()
			return ok && r.DistanceMeters != nil &&
				*r.DistanceMeters > velocityDistanceMeters && elapsed < velocityElapsedSeconds
		},
	},
}

// EvaluateFraud runs FraudRules against a report. Failed attempts are never
// flagged.
func EvaluateFraud(r FraudReport) FraudVerdict {
	if !r.Success {
		return FraudVerdict{}
	}
	for _, rule := range FraudRules {
		if rule.Matches(r) {
			reason := rule.Reason
			return FraudVerdict{Suspected: true, Rule: rule.Name, Reason: &reason}
		}
	}
	return FraudVerdict{}
}
