package store

import (
	"context"
	"time"

	"runonstreet-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateRun inserts a new challenge run and fills in its generated id.
func (s *Store) CreateRun(ctx context.Context, run *models.ChallengeRun) error {
	if err := s.DB.WithContext(ctx).Create(run).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCode
		}
		return errors.Wrap(err, "insert challenge run")
	}
	return nil
}

// ValidateRun consumes a redemption code. The transition is one conditional
// UPDATE guarded by success and an unset validated_at; the rows-affected
// count decides the outcome, so two concurrent calls cannot both win.
// Returns ErrNotFound when the code is unknown, already consumed, or belongs
// to a failed run.
func (s *Store) ValidateRun(ctx context.Context, code string, at time.Time) (*models.ChallengeRun, error) {
	var run models.ChallengeRun
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ChallengeRun{}).
			Where("qr_code = ? AND success = ? AND validated_at IS NULL", code, true).
			Update("validated_at", at)
		if res.Error != nil {
			return errors.Wrap(res.Error, "validate challenge run")
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("qr_code = ?", code).First(&run).Error; err != nil {
			return errors.Wrap(err, "reload validated run")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// RunByID loads a single run.
func (s *Store) RunByID(ctx context.Context, id uint) (*models.ChallengeRun, error) {
	var run models.ChallengeRun
	if err := s.DB.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "fetch run %d", id)
	}
	return &run, nil
}
