// services/challenge_service.go
package services

import (
	"context"
	"math"
	"strings"
	"time"

	"runonstreet-backend/metrics"
	"runonstreet-backend/models"
	"runonstreet-backend/store"
	"runonstreet-backend/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RunStore is the part of the store the challenge lifecycle writes through.
type RunStore interface {
	OfferExists(ctx context.Context, id uint) (bool, error)
	CreateRun(ctx context.Context, run *models.ChallengeRun) error
	ValidateRun(ctx context.Context, code string, at time.Time) (*models.ChallengeRun, error)
}

// CompletionReport is what a client sends when an attempt ends. Start and
// completion arrive together.
type CompletionReport struct {
	OfferID        uint
	UserID         *string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	Success        bool
	DistanceMeters *float64
	QRCode         *string
}

// ChallengeService drives a run from report to merchant validation. It holds
// no state of its own; the store is the source of truth.
type ChallengeService struct {
	Store   RunStore
	NewCode func() string
	Now     func() time.Time
}

func NewChallengeService(st RunStore) *ChallengeService {
	return &ChallengeService{
		Store:   st,
		NewCode: utils.NewRedemptionCode,
		Now:     time.Now,
	}
}

// Report persists a completed (or failed) attempt. Successful runs get a fraud
// verdict and a redemption code; failed runs get neither.
func (s *ChallengeService) Report(ctx context.Context, in CompletionReport) (*models.ChallengeRun, error) {
	if in.OfferID == 0 {
		return nil, invalidf("offerId is required")
	}
	if in.StartedAt == nil || in.StartedAt.IsZero() {
		return nil, invalidf("startedAt is required")
	}
	if in.DistanceMeters != nil && (math.IsNaN(*in.DistanceMeters) || math.IsInf(*in.DistanceMeters, 0) || *in.DistanceMeters < 0) {
		return nil, invalidf("distanceMeters must be a non-negative number")
	}

	exists, err := s.Store.OfferExists(ctx, in.OfferID)
	if err != nil {
		return nil, errors.Wrap(err, "report challenge")
	}
	if !exists {
		return nil, invalidf("offer %d does not exist", in.OfferID)
	}

	run := &models.ChallengeRun{
		OfferID:        in.OfferID,
		UserID:         normalizeOptional(in.UserID),
		StartedAt:      in.StartedAt.UTC(),
		CompletedAt:    utcPtr(in.CompletedAt),
		Success:        in.Success,
		DistanceMeters: in.DistanceMeters,
	}

	var verdict FraudVerdict
	if in.Success {
		verdict = EvaluateFraud(FraudReport{
			Success:        true,
			StartedAt:      run.StartedAt,
			CompletedAt:    run.CompletedAt,
			DistanceMeters: run.DistanceMeters,
		})
		run.SuspectedFraud = verdict.Suspected
		run.FraudReason = verdict.Reason

		code := normalizeOptional(in.QRCode)
		if code == nil {
			generated := s.NewCode()
			code = &generated
		}
		run.QRCode = code
	}

	if err := s.Store.CreateRun(ctx, run); err != nil {
		if errors.Is(err, store.ErrDuplicateCode) {
			return nil, invalidf("qrCode is already in use")
		}
		return nil, errors.Wrap(err, "report challenge")
	}

	outcome := metrics.OutcomeFailure
	if run.Success {
		outcome = metrics.OutcomeSuccess
	}
	metrics.ChallengeReports.WithLabelValues(outcome).Inc()
	if verdict.Suspected {
		metrics.FraudFlags.WithLabelValues(verdict.Rule).Inc()
	}

	event := log.Info()
	if run.SuspectedFraud {
		event = log.Warn().Str("fraud_reason", *run.FraudReason)
	}
	event.Uint("run_id", run.ID).
		Uint("offer_id", run.OfferID).
		Bool("success", run.Success).
		Bool("suspected_fraud", run.SuspectedFraud).
		Msg("[CHALLENGE] run reported")

	return run, nil
}

// Validate consumes a redemption code. A retry after a successful validation
// gets ErrNotFound, same as an unknown code or a failed run's code.
func (s *ChallengeService) Validate(ctx context.Context, code string) (*models.ChallengeRun, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, invalidf("qrCode is required")
	}

	run, err := s.Store.ValidateRun(ctx, code, s.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.Validations.WithLabelValues(metrics.ResultNotFound).Inc()
			return nil, notFoundf("no unvalidated successful run matches this code")
		}
		metrics.Validations.WithLabelValues(metrics.ResultError).Inc()
		return nil, errors.Wrap(err, "validate challenge")
	}

	metrics.Validations.WithLabelValues(metrics.ResultValidated).Inc()
	log.Info().Uint("run_id", run.ID).Uint("offer_id", run.OfferID).
		Msg("[CHALLENGE] ✅ run validated by merchant")
	return run, nil
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
