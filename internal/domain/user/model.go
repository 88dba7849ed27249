package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BenAji/agora/internal/domain/company"
)

// Role represents a user's role in the system. Roles are immutable after signup.
type Role string

const (
	RoleIRAdmin           Role = "IR_ADMIN"
	RoleAnalystManager    Role = "ANALYST_MANAGER"
	RoleInvestmentAnalyst Role = "INVESTMENT_ANALYST"
)

// User represents a registered user
type User struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	Email        string           `json:"email" gorm:"uniqueIndex:idx_user_email;not null"`
	FirstName    string           `json:"first_name" gorm:"not null"`
	LastName     string           `json:"last_name" gorm:"not null"`
	PasswordHash string           `json:"-" gorm:"not null"`
	Role         Role             `json:"role" gorm:"type:varchar(50);not null"`
	CompanyID    *uuid.UUID       `json:"company_id,omitempty" gorm:"type:uuid;index:idx_user_company"`
	ManagerID    *uuid.UUID       `json:"manager_id,omitempty" gorm:"type:uuid;index:idx_user_manager"`
	Preferences  datatypes.JSON   `json:"preferences,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Company      *company.Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Manager      *User            `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a user record
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Common errors
var (
	ErrNotFound           = NewError("user not found")
	ErrEmailTaken         = NewError("email already registered")
	ErrInvalidCredentials = NewError("invalid credentials")
	ErrInvalidRole        = NewError("invalid role")
)

// Error type
type Error struct {
	message string
}

func NewError(message string) *Error {
	return &Error{message: message}
}

func (e *Error) Error() string {
	return e.message
}

// IsValidRole reports whether the given role is one of the known roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleIRAdmin, RoleAnalystManager, RoleInvestmentAnalyst:
		return true
	}
	return false
}
