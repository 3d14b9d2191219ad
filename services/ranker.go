// services/ranker.go
package services

import (
	"sort"

	"runonstreet-backend/geo"
	"runonstreet-backend/models"
)

// RankPolicy holds the product toggles for nearby ranking.
type RankPolicy struct {
	// EnforceRadius drops offers farther than the requested radius. When false
	// the radius is accepted but every active offer is returned.
	EnforceRadius bool
}

// RankedOffer is an offer annotated with its display distance.
type RankedOffer struct {
	models.Offer
	DistanceMeters int `json:"distanceMeters"`

	distance float64
}

// RankOffers annotates each active offer with its distance from the user and
// returns them nearest first. Equal distances keep input order. The input
// slice is not modified.
func RankOffers(lat, lng float64, offers []models.Offer, radiusMeters int, policy RankPolicy) []RankedOffer {
	ranked := make([]RankedOffer, 0, len(offers))
	for _, o := range offers {
		if !o.Active {
			continue
		}
		d := geo.DistanceMeters(lat, lng, o.Latitude, o.Longitude)
		if policy.EnforceRadius && d > float64(radiusMeters) {
			continue
		}
		ranked = append(ranked, RankedOffer{
			Offer:          o,
			DistanceMeters: geo.RoundMeters(d),
			distance:       d,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})
	return ranked
}
