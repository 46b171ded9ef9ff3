package dto

import (
	"time"

	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/usecase"
)

type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	UserType  string  `json:"user_type" validate:"omitempty,oneof=job_seeker employer"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Email: u.Email, CreatedAt: u.CreatedAt}
}

type AuthResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
	Tokens  jwt.TokenPair   `json:"tokens"`
}

func NewAuthResponse(res usecase.AuthResult) AuthResponse {
	return AuthResponse{
		User:    NewUserResponse(res.User),
		Profile: NewProfileResponse(res.Profile),
		Tokens:  res.Tokens,
	}
}

type SessionResponse struct {
	User                UserResponse    `json:"user"`
	Profile             ProfileResponse `json:"profile"`
	Role                string          `json:"role"`
	ProfileCompleteness int             `json:"profile_completeness"`
}

func NewSessionResponse(s usecase.Session) SessionResponse {
	return SessionResponse{
		User:                NewUserResponse(s.User),
		Profile:             NewProfileResponse(s.Profile),
		Role:                string(s.Profile.UserType),
		ProfileCompleteness: s.Completeness,
	}
}
