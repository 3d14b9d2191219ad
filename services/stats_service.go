// services/stats_service.go
package services

import (
	"context"

	"runonstreet-backend/store"

	"github.com/pkg/errors"
)

type StatsStore interface {
	OfferStats(ctx context.Context, offerID uint) (*store.OfferStats, error)
}

type StatsService struct {
	Store StatsStore
}

func NewStatsService(st StatsStore) *StatsService {
	return &StatsService{Store: st}
}

// OfferStats returns zeroed counts for an offer with no runs.
func (s *StatsService) OfferStats(ctx context.Context, offerID uint) (*store.OfferStats, error) {
	if offerID == 0 {
		return nil, invalidf("offerId must be a positive integer")
	}
	stats, err := s.Store.OfferStats(ctx, offerID)
	if err != nil {
		return nil, errors.Wrap(err, "offer stats")
	}
	return stats, nil
}
