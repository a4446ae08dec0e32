package service

import (
	"errors"
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/pkg/jwt"

	"github.com/google/uuid"
)

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	Logout(user *model.User) error
	ChangePassword(user *model.User, req *ChangePasswordRequest) error
	UpdateProfile(user *model.User, req *UpdateProfileRequest) (*model.UserResponse, error)
	SuperAdminExists() (bool, error)
	SetupSuperAdmin(req *SetupSuperAdminRequest) (*model.UserResponse, error)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token       string             `json:"token"`
	User        model.UserResponse `json:"user"`
	Role        string             `json:"role"`
	Permissions []string           `json:"permissions"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"max=50"`
}

type SetupSuperAdminRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"max=50"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Reject deactivated accounts before touching the password
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single session: rotating the version invalidates every token
	// issued before this login.
	now := time.Now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	// 5. Issue JWT carrying role, permissions and the fresh version
	token, err := jwt.GenerateToken(user.ID, user.Username, user.Name, user.Role, user.Permissions(), user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:       token,
		User:        user.ToResponse(),
		Role:        user.Role,
		Permissions: user.Permissions(),
	}, nil
}

// Logout rotates the token version so the presented token stops validating.
func (s *authService) Logout(user *model.User) error {
	return s.userRepo.UpdateTokenVersion(user.ID, uuid.New().String())
}

func (s *authService) ChangePassword(user *model.User, req *ChangePasswordRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	// Changing the password also ends the other sessions.
	user.TokenVersion = uuid.New().String()
	return s.userRepo.Update(user)
}

func (s *authService) UpdateProfile(user *model.User, req *UpdateProfileRequest) (*model.UserResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Phone = req.Phone
	user.UpdatedBy = user.Username
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) SuperAdminExists() (bool, error) {
	return s.userRepo.SuperAdminExists()
}

// SetupSuperAdmin bootstraps the first account. It is a one-shot operation:
// once a super admin exists it always fails.
func (s *authService) SetupSuperAdmin(req *SetupSuperAdminRequest) (*model.UserResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.SuperAdminExists()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSuperAdminExists
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrUsernameExists
	}

	user := &model.User{
		Name:     req.Name,
		Username: req.Username,
		Role:     model.RoleSuperAdmin,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	user.CreatedBy = req.Username

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}
