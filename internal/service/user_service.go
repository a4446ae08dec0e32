package service

import (
	"errors"
	"slices"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(req *CreateUserRequest, actor *model.User) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest, actor *model.User) (*model.UserResponse, error)
	DeleteUser(id uuid.UUID, actor *model.User) error
	ResetPassword(id uuid.UUID, req *ResetPasswordRequest, actor *model.User) error
	GetUser(id uuid.UUID) (*model.UserResponse, error)
	GetAllUsers(filter repository.UserFilter) ([]model.UserResponse, error)
	Statistics() (*UserStatistics, error)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
	Phone    string `json:"phone" validate:"max=50"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type UserStatistics struct {
	Total  int64            `json:"total"`
	Active int64            `json:"active"`
	ByRole map[string]int64 `json:"by_role"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor *model.User) (*model.UserResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	// super_admin is never assignable through this endpoint.
	if !slices.Contains(model.CreatableRoles, req.Role) {
		return nil, ErrRoleNotAllowed
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrUsernameExists
	}

	user := &model.User{
		Name:     req.Name,
		Username: req.Username,
		Role:     req.Role,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	user.CreatedBy = actor.Username
	user.UpdatedBy = actor.Username

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest, actor *model.User) (*model.UserResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.IsSuperAdmin() {
		return nil, ErrRoleNotAllowed
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !slices.Contains(model.CreatableRoles, *req.Role) {
			return nil, ErrRoleNotAllowed
		}
		user.Role = *req.Role
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		// Deactivation kicks the user out immediately.
		if !user.IsActive {
			user.TokenVersion = uuid.New().String()
		}
	}
	user.UpdatedBy = actor.Username

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(id uuid.UUID, actor *model.User) error {
	if id == actor.ID {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return ErrUserNotFound
	}
	if user.IsSuperAdmin() {
		return ErrRoleNotAllowed
	}

	return s.userRepo.Delete(id, actor.Username)
}

func (s *userService) ResetPassword(id uuid.UUID, req *ResetPasswordRequest, actor *model.User) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return ErrUserNotFound
	}

	if err := user.SetPassword(req.Password); err != nil {
		return errors.New("failed to hash password")
	}
	// Force re-login with the new password.
	user.TokenVersion = uuid.New().String()
	user.UpdatedBy = actor.Username

	return s.userRepo.Update(user)
}

func (s *userService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) GetAllUsers(filter repository.UserFilter) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

func (s *userService) Statistics() (*UserStatistics, error) {
	byRole, err := s.userRepo.CountByRole()
	if err != nil {
		return nil, err
	}

	stats := &UserStatistics{ByRole: byRole}
	for _, count := range byRole {
		stats.Total += count
	}

	users, err := s.userRepo.FindAll(repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.IsActive {
			stats.Active++
		}
	}
	return stats, nil
}
