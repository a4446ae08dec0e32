package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role constants. Roles form a closed enum; each role maps to a static
// permission set, there is no per-resource ACL.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleSeller     = "seller"
	RoleTechnician = "technician"
	RoleInventory  = "inventory"
)

// CreatableRoles are the roles a super admin may assign when creating users.
var CreatableRoles = []string{RoleAdmin, RoleSeller, RoleTechnician, RoleInventory}

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username" validate:"required"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role         string     `gorm:"type:varchar(30);not null" json:"role"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// RoleName returns the display name of the user's role
func (u *User) RoleName() string {
	switch u.Role {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleSeller:
		return "Seller"
	case RoleTechnician:
		return "Technician"
	case RoleInventory:
		return "Inventory Manager"
	default:
		return "User"
	}
}

// Permissions returns the static permission set for the user's role.
func (u *User) Permissions() []string {
	switch u.Role {
	case RoleSuperAdmin:
		return []string{
			"manage_users",
			"manage_products",
			"manage_customers",
			"manage_suppliers",
			"manage_sales",
			"manage_purchases",
			"manage_buy_phones",
			"manage_exchanges",
			"view_reports",
			"view_dashboard",
			"manage_settings",
		}
	case RoleAdmin:
		return []string{
			"manage_users",
			"manage_products",
			"manage_customers",
			"manage_suppliers",
			"manage_sales",
			"manage_purchases",
			"manage_buy_phones",
			"manage_exchanges",
			"view_reports",
			"view_dashboard",
		}
	case RoleSeller:
		return []string{
			"view_products",
			"manage_customers",
			"manage_sales",
			"manage_exchanges",
			"view_buy_phones",
			"view_reports",
			"view_dashboard",
		}
	case RoleTechnician:
		return []string{
			"view_products",
			"view_customers",
			"manage_buy_phones",
			"view_buy_phones",
		}
	case RoleInventory:
		return []string{
			"manage_products",
			"manage_suppliers",
			"manage_purchases",
			"manage_buy_phones",
			"view_buy_phones",
			"view_dashboard",
		}
	default:
		return []string{}
	}
}

// HasPermission checks if the user's role grants a specific permission
func (u *User) HasPermission(code string) bool {
	for _, p := range u.Permissions() {
		if p == code {
			return true
		}
	}
	return false
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	RoleName   string     `json:"role_name"`
	Phone      string     `json:"phone"`
	IsActive   bool       `json:"is_active"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Username:   u.Username,
		Role:       u.Role,
		RoleName:   u.RoleName(),
		Phone:      u.Phone,
		IsActive:   u.IsActive,
		LastSeenAt: u.LastSeenAt,
		CreatedAt:  u.CreatedAt,
	}
}
