package services

import (
	"testing"

	"auditionhub_backend/internal/auth"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewProfileService(repositories.NewUserRepository())
	user := testutil.CreateUser(t, db, "")

	out, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{
		ParentName: ptr("Jordan"),
		Timezone:   ptr("America/Los_Angeles"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Jordan", out.ParentName)
	assert.Equal(t, "America/Los_Angeles", out.Timezone)
	assert.Equal(t, "Test Parent", out.Name)

	got, err := svc.GetProfile(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", got.ParentName)
}

func TestProfileService_ChangePassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewUserRepository()
	svc := NewProfileService(repo)
	user := testutil.CreateUser(t, db, "")

	err := svc.ChangePassword(db, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password-1"})
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(db, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "new-password-1",
	}))

	reloaded, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("new-password-1", reloaded.PasswordHash))
}
