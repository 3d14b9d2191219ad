package store

import (
	"context"

	"runonstreet-backend/models"

	"github.com/pkg/errors"
)

// ActiveOffers returns every active offer in insertion (id) order.
func (s *Store) ActiveOffers(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	if err := s.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&offers).Error; err != nil {
		return nil, errors.Wrap(err, "fetch active offers")
	}
	return offers, nil
}

// OfferExists reports whether an offer row with the given id exists.
func (s *Store) OfferExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "lookup offer %d", id)
	}
	return count > 0, nil
}

// Establishments lists every establishment for the map.
func (s *Store) Establishments(ctx context.Context) ([]models.Establishment, error) {
	var out []models.Establishment
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "fetch establishments")
	}
	return out, nil
}
