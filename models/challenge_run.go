package models

import "time"

// RunStatus is derived from the stored fields, never persisted.
type RunStatus string

const (
	RunStatusFailed    RunStatus = "failed"
	RunStatusReported  RunStatus = "reported"
	RunStatusValidated RunStatus = "validated"
)

// ChallengeRun = one user's reported attempt at one offer.
//
// SuspectedFraud and FraudReason are written once, at creation. ValidatedAt is
// written at most once, by the conditional update in the store, and only for
// successful runs.
type ChallengeRun struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	OfferID        uint       `gorm:"index;not null" json:"offer_id"`
	UserID         *string    `gorm:"index" json:"user_id"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	Success        bool       `gorm:"not null;default:false" json:"success"`
	DistanceMeters *float64   `json:"distance_meters"`
	QRCode         *string    `gorm:"column:qr_code;uniqueIndex" json:"qr_code"`
	SuspectedFraud bool       `gorm:"not null;default:false" json:"suspected_fraud"`
	FraudReason    *string    `gorm:"type:text" json:"fraud_reason"`
	ValidatedAt    *time.Time `json:"validated_at"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// Status reports where the run sits in its lifecycle.
func (r *ChallengeRun) Status() RunStatus {
	switch {
	case !r.Success:
		return RunStatusFailed
	case r.ValidatedAt != nil:
		return RunStatusValidated
	default:
		return RunStatusReported
	}
}
