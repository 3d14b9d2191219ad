package services

import (
	"context"
	"errors"
	"testing"

	"runonstreet-backend/testutil"
)

func TestUserUpsertIdempotent(t *testing.T) {
	svc := NewUserService(testutil.NewStore(t))
	ctx := context.Background()

	u, err := svc.Upsert(ctx, "client-42", "Runner")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if u.Pseudo != "Runner" {
		t.Fatalf("Pseudo = %q", u.Pseudo)
	}

	u, err = svc.Upsert(ctx, "client-42", "Sprinter")
	if err != nil {
		t.Fatalf("Upsert (again): %v", err)
	}
	if u.ID != "client-42" || u.Pseudo != "Sprinter" {
		t.Fatalf("unexpected user after update: %+v", u)
	}
}

func TestUserServiceErrors(t *testing.T) {
	svc := NewUserService(testutil.NewStore(t))
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "", "x"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("missing id: %v", err)
	}
	if _, err := svc.Upsert(ctx, "id", " "); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("missing pseudo: %v", err)
	}
	if _, err := svc.Get(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: %v", err)
	}
}
