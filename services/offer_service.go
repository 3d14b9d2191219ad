// services/offer_service.go
package services

import (
	"context"

	"runonstreet-backend/geo"
	"runonstreet-backend/metrics"
	"runonstreet-backend/models"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

// OfferStore is the read side of the store the offer service needs.
type OfferStore interface {
	ActiveOffers(ctx context.Context) ([]models.Offer, error)
	Establishments(ctx context.Context) ([]models.Establishment, error)
}

// NearbyQuery is a validated-by-Nearby search request.
type NearbyQuery struct {
	Lat          float64
	Lng          float64
	RadiusMeters int
	City         string
}

// NearbyResult is the response body of the nearby search.
type NearbyResult struct {
	Count  int           `json:"count"`
	Offers []RankedOffer `json:"offers"`
}

type OfferService struct {
	Store         OfferStore
	Policy        RankPolicy
	DefaultRadius int
}

func NewOfferService(st OfferStore, policy RankPolicy, defaultRadius int) *OfferService {
	return &OfferService{Store: st, Policy: policy, DefaultRadius: defaultRadius}
}

// Nearby ranks active offers around the caller. A failed offer fetch is
// logged and answered with an empty list rather than an error.
func (s *OfferService) Nearby(ctx context.Context, q NearbyQuery) (*NearbyResult, error) {
	if !geo.ValidCoordinate(q.Lat, q.Lng) {
		return nil, invalidf("lat and lng must be valid coordinates")
	}
	if q.RadiusMeters <= 0 {
		q.RadiusMeters = s.DefaultRadius
	}

	offers, err := s.Store.ActiveOffers(ctx)
	if err != nil {
		metrics.NearbyDegraded.Inc()
		log.Error().Err(err).
			Float64("lat", q.Lat).Float64("lng", q.Lng).
			Msg("[NEARBY] offer fetch failed, returning empty result")
		return &NearbyResult{Count: 0, Offers: []RankedOffer{}}, nil
	}

	if q.City != "" {
		offers = filterByCity(offers, q.City)
	}

	ranked := RankOffers(q.Lat, q.Lng, offers, q.RadiusMeters, s.Policy)
	return &NearbyResult{Count: len(ranked), Offers: ranked}, nil
}

// Establishments lists map locations; store failures degrade to an empty list.
func (s *OfferService) Establishments(ctx context.Context) []models.Establishment {
	out, err := s.Store.Establishments(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[ESTABLISHMENTS] fetch failed, returning empty list")
		return []models.Establishment{}
	}
	if out == nil {
		return []models.Establishment{}
	}
	return out
}

// filterByCity compares slugs so accents, case and separators don't matter.
func filterByCity(offers []models.Offer, city string) []models.Offer {
	want := slug.Make(city)
	out := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if slug.Make(o.City) == want {
			out = append(out, o)
		}
	}
	return out
}
