package store

import (
	"context"
	"time"

	"runonstreet-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OfferStats aggregates the runs recorded against one offer.
type OfferStats struct {
	OfferID        uint       `json:"offer_id"`
	TotalRuns      int64      `json:"total_runs"`
	SuccessfulRuns int64      `json:"successful_runs"`
	ValidatedRuns  int64      `json:"validated_runs"`
	SuspectedRuns  int64      `json:"suspected_runs"`
	FirstRunAt     *time.Time `json:"first_run_at"`
	LastRunAt      *time.Time `json:"last_run_at"`
}

// OfferStats never fails on an offer without runs; the counts stay at zero.
func (s *Store) OfferStats(ctx context.Context, offerID uint) (*OfferStats, error) {
	stats := &OfferStats{OfferID: offerID}
	db := s.DB.WithContext(ctx)

	var counts struct {
		TotalRuns      int64
		SuccessfulRuns int64
		ValidatedRuns  int64
		SuspectedRuns  int64
	}
	if err := db.Raw(`
		SELECT COUNT(*) AS total_runs,
		       COALESCE(SUM(CASE WHEN success = ? THEN 1 ELSE 0 END), 0) AS successful_runs,
		       COALESCE(SUM(CASE WHEN validated_at IS NOT NULL THEN 1 ELSE 0 END), 0) AS validated_runs,
		       COALESCE(SUM(CASE WHEN suspected_fraud = ? THEN 1 ELSE 0 END), 0) AS suspected_runs
		FROM challenge_runs
		WHERE offer_id = ?
	`, true, true, offerID).Scan(&counts).Error; err != nil {
		return nil, errors.Wrapf(err, "count runs for offer %d", offerID)
	}
	stats.TotalRuns = counts.TotalRuns
	stats.SuccessfulRuns = counts.SuccessfulRuns
	stats.ValidatedRuns = counts.ValidatedRuns
	stats.SuspectedRuns = counts.SuspectedRuns

	if stats.TotalRuns == 0 {
		return stats, nil
	}

	var first, last models.ChallengeRun
	if err := db.Where("offer_id = ?", offerID).Order("created_at ASC, id ASC").First(&first).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(err, "first run for offer %d", offerID)
	} else if err == nil {
		stats.FirstRunAt = &first.CreatedAt
	}
	if err := db.Where("offer_id = ?", offerID).Order("created_at DESC, id DESC").First(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(err, "last run for offer %d", offerID)
	} else if err == nil {
		stats.LastRunAt = &last.CreatedAt
	}

	return stats, nil
}
