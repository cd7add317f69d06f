package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/sqltour/sqltour/internal/model"
	"github.com/sqltour/sqltour/internal/testutil"
)

func TestRepository_CreateAndGetProfile(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	userID, err := repo.CreateUser(ctx, testutil.UniqueUsername("prof"), testutil.UniqueEmail("prof"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	bio := "Just a test account"
	profileID, err := repo.CreateProfile(ctx, &model.Profile{
		UserID:   userID,
		FullName: "Test Account",
		Bio:      &bio,
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if profileID == 0 {
		t.Fatal("expected a non-zero assigned ID")
	}

	profile, err := repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.ID != profileID {
		t.Errorf("expected profile ID %d, got %d", profileID, profile.ID)
	}
	if profile.FullName != "Test Account" {
		t.Errorf("expected full name 'Test Account', got %q", profile.FullName)
	}
	if profile.Bio == nil || *profile.Bio != bio {
		t.Errorf("expected bio %q, got %v", bio, profile.Bio)
	}
	if profile.AvatarURL != nil {
		t.Errorf("expected nil avatar URL, got %q", *profile.AvatarURL)
	}
}

func TestRepository_GetProfile_Missing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	if _, err := repo.GetProfileByUserID(ctx, 424242); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	userID, err := repo.CreateUser(ctx, testutil.UniqueUsername("upd"), testutil.UniqueEmail("upd"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.CreateProfile(ctx, &model.Profile{UserID: userID, FullName: "Before"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	avatar := "https://example.com/after.png"
	err = repo.UpdateProfile(ctx, &model.Profile{
		UserID:    userID,
		FullName:  "After",
		AvatarURL: &avatar,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	profile, err := repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.FullName != "After" {
		t.Errorf("expected full name 'After', got %q", profile.FullName)
	}
	if profile.Bio != nil {
		t.Errorf("expected bio cleared, got %q", *profile.Bio)
	}
	if profile.AvatarURL == nil || *profile.AvatarURL != avatar {
		t.Errorf("expected avatar URL %q, got %v", avatar, profile.AvatarURL)
	}

	err = repo.UpdateProfile(ctx, &model.Profile{UserID: 424242, FullName: "Nobody"})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for missing user, got %v", err)
	}
}

func TestRepository_DeleteProfile(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	userID, err := repo.CreateUser(ctx, testutil.UniqueUsername("del"), testutil.UniqueEmail("del"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.CreateProfile(ctx, &model.Profile{UserID: userID, FullName: "Doomed"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if err := repo.DeleteProfileByUserID(ctx, userID); err != nil {
		t.Fatalf("delete profile: %v", err)
	}

	if _, err := repo.GetProfileByUserID(ctx, userID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound after delete, got %v", err)
	}
}

func TestRepository_DeleteUserCascadesProfile(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	userID, err := repo.CreateUser(ctx, testutil.UniqueUsername("casc"), testutil.UniqueEmail("casc"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.CreateProfile(ctx, &model.Profile{UserID: userID, FullName: "Cascade"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if err := repo.DeleteUser(ctx, userID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := repo.GetProfileByUserID(ctx, userID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected profile removed by cascade, got %v", err)
	}
}
