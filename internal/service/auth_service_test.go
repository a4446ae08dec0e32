package service

import (
	"testing"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesTokenAndRotatesVersion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, model.RoleSeller)
	svc := NewAuthService(repository.NewUserRepo(db))

	resp, err := svc.Login(&LoginRequest{Username: user.Username, Password: "secret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleSeller, resp.Role)
	assert.Contains(t, resp.Permissions, "manage_sales")

	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// The stored version matches the token
	var reloaded model.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, reloaded.TokenVersion, claims.TokenVersion)
	assert.NotEmpty(t, reloaded.TokenVersion)
}

func TestLoginSecondSessionInvalidatesFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, model.RoleSeller)
	svc := NewAuthService(repository.NewUserRepo(db))

	first, err := svc.Login(&LoginRequest{Username: user.Username, Password: "secret-pass"})
	require.NoError(t, err)
	second, err := svc.Login(&LoginRequest{Username: user.Username, Password: "secret-pass"})
	require.NoError(t, err)

	firstClaims, err := jwt.ValidateToken(first.Token)
	require.NoError(t, err)
	secondClaims, err := jwt.ValidateToken(second.Token)
	require.NoError(t, err)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.NotEqual(t, reloaded.TokenVersion, firstClaims.TokenVersion)
	assert.Equal(t, reloaded.TokenVersion, secondClaims.TokenVersion)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, model.RoleSeller)
	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Login(&LoginRequest{Username: user.Username, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Username: "nobody", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, model.RoleSeller)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Login(&LoginRequest{Username: user.Username, Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLogoutRotatesTokenVersion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, model.RoleSeller)
	svc := NewAuthService(repository.NewUserRepo(db))

	resp, err := svc.Login(&LoginRequest{Username: user.Username, Password: "secret-pass"})
	require.NoError(t, err)
	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NoError(t, svc.Logout(&reloaded))

	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.NotEqual(t, claims.TokenVersion, reloaded.TokenVersion)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, model.RoleSeller)
	svc := NewAuthService(repository.NewUserRepo(db))

	err := svc.ChangePassword(user, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-123",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(user, &ChangePasswordRequest{
		CurrentPassword: "secret-pass",
		NewPassword:     "new-password-123",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Username: user.Username, Password: "new-password-123"})
	assert.NoError(t, err)
}

func TestSetupSuperAdminIsOneShot(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))

	exists, err := svc.SuperAdminExists()
	require.NoError(t, err)
	assert.False(t, exists)

	admin, err := svc.SetupSuperAdmin(&SetupSuperAdminRequest{
		Name:     "Owner",
		Username: "owner",
		Password: "owner-pass-123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, admin.Role)

	exists, err = svc.SuperAdminExists()
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = svc.SetupSuperAdmin(&SetupSuperAdminRequest{
		Name:     "Intruder",
		Username: "intruder",
		Password: "intruder-pass",
	})
	assert.ErrorIs(t, err, ErrSuperAdminExists)
}
