package service

import (
	"testing"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRoleRules(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, model.RoleSuperAdmin)
	svc := NewUserService(repository.NewUserRepo(db))

	user, err := svc.CreateUser(&CreateUserRequest{
		Name:     "New Seller",
		Username: "seller1",
		Password: "seller-pass-123",
		Role:     model.RoleSeller,
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSeller, user.Role)
	assert.True(t, user.IsActive)

	// super_admin cannot be minted through user management
	_, err = svc.CreateUser(&CreateUserRequest{
		Name:     "Sneaky",
		Username: "sneaky",
		Password: "sneaky-pass-123",
		Role:     model.RoleSuperAdmin,
	}, admin)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, model.RoleSuperAdmin)
	svc := NewUserService(repository.NewUserRepo(db))

	req := &CreateUserRequest{
		Name:     "First",
		Username: "worker",
		Password: "worker-pass-123",
		Role:     model.RoleTechnician,
	}
	_, err := svc.CreateUser(req, admin)
	require.NoError(t, err)

	_, err = svc.CreateUser(req, admin)
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestDeleteUserRules(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, model.RoleSuperAdmin)
	svc := NewUserService(repository.NewUserRepo(db))

	created, err := svc.CreateUser(&CreateUserRequest{
		Name:     "Target",
		Username: "target",
		Password: "target-pass-123",
		Role:     model.RoleSeller,
	}, admin)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteUser(admin.ID, admin), ErrCannotDeleteSelf)

	require.NoError(t, svc.DeleteUser(created.ID, admin))
	_, err = svc.GetUser(created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserDeactivationKillsSession(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, model.RoleSuperAdmin)
	svc := NewUserService(repository.NewUserRepo(db))

	created, err := svc.CreateUser(&CreateUserRequest{
		Name:     "Worker",
		Username: "worker",
		Password: "worker-pass-123",
		Role:     model.RoleSeller,
	}, admin)
	require.NoError(t, err)

	var before model.User
	require.NoError(t, db.First(&before, "id = ?", created.ID).Error)

	inactive := false
	updated, err := svc.UpdateUser(created.ID, &UpdateUserRequest{IsActive: &inactive}, admin)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	var after model.User
	require.NoError(t, db.First(&after, "id = ?", created.ID).Error)
	assert.NotEqual(t, before.TokenVersion, after.TokenVersion)
}

func TestResetPasswordForcesRelogin(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, model.RoleSuperAdmin)
	userSvc := NewUserService(repository.NewUserRepo(db))
	authSvc := NewAuthService(repository.NewUserRepo(db))

	created, err := userSvc.CreateUser(&CreateUserRequest{
		Name:     "Worker",
		Username: "worker",
		Password: "worker-pass-123",
		Role:     model.RoleSeller,
	}, admin)
	require.NoError(t, err)

	require.NoError(t, userSvc.ResetPassword(created.ID, &ResetPasswordRequest{
		Password: "fresh-pass-456",
	}, admin))

	_, err = authSvc.Login(&LoginRequest{Username: "worker", Password: "worker-pass-123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authSvc.Login(&LoginRequest{Username: "worker", Password: "fresh-pass-456"})
	assert.NoError(t, err)
}

func TestGetAllUsersExcludesSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, model.RoleSuperAdmin)
	svc := NewUserService(repository.NewUserRepo(db))

	_, err := svc.CreateUser(&CreateUserRequest{
		Name:     "Worker",
		Username: "worker",
		Password: "worker-pass-123",
		Role:     model.RoleSeller,
	}, admin)
	require.NoError(t, err)

	users, err := svc.GetAllUsers(repository.UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "worker", users[0].Username)
}
