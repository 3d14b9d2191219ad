package store

import (
	"context"

	"runonstreet-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertUser inserts the user or, on id conflict, refreshes the pseudo.
func (s *Store) UpsertUser(ctx context.Context, u *models.User) error {
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"pseudo", "updated_at"}),
	}).Create(u).Error; err != nil {
		return errors.Wrapf(err, "upsert user %q", u.ID)
	}
	return nil
}

// GetUser returns ErrNotFound when no user has the id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "fetch user %q", id)
	}
	return &u, nil
}
