// services/user_service.go
package services

import (
	"context"
	"strings"

	"runonstreet-backend/models"
	"runonstreet-backend/store"

	"github.com/pkg/errors"
)

type UserStore interface {
	UpsertUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type UserService struct {
	Store UserStore
}

func NewUserService(st UserStore) *UserService {
	return &UserService{Store: st}
}

// Upsert creates the user or updates its pseudo. Repeating the call with the
// same id never creates a second record.
func (s *UserService) Upsert(ctx context.Context, id, pseudo string) (*models.User, error) {
	id = strings.TrimSpace(id)
	pseudo = strings.TrimSpace(pseudo)
	if id == "" {
		return nil, invalidf("userId is required")
	}
	if pseudo == "" {
		return nil, invalidf("pseudo is required")
	}

	u := &models.User{ID: id, Pseudo: pseudo}
	if err := s.Store.UpsertUser(ctx, u); err != nil {
		return nil, errors.Wrap(err, "upsert user")
	}
	return s.Get(ctx, id)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidf("userId is required")
	}
	u, err := s.Store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("user %q not found", id)
		}
		return nil, errors.Wrap(err, "get user")
	}
	return u, nil
}
