package dto

import (
	"time"

	"github.com/google/uuid"
)

// SignupRequest is the body for POST /api/auth/signup
type SignupRequest struct {
	Email     string     `json:"email" binding:"required,email" example:"analyst@fund.com"`
	Password  string     `json:"password" binding:"required,min=8" example:"securepassword123"`
	FirstName string     `json:"first_name" binding:"required" example:"Jordan"`
	LastName  string     `json:"last_name" binding:"required" example:"Lee"`
	Role      string     `json:"role" binding:"required,userrole" example:"INVESTMENT_ANALYST"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
}

// LoginRequest is the body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"analyst@fund.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// UserResponse is the user payload returned by auth endpoints
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      string     `json:"role"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AuthResponse carries the session token and the authenticated user
type AuthResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  UserResponse `json:"user"`
}
