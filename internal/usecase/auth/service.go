package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"job-portal/internal/domain/profile"
	"job-portal/internal/domain/user"
	"job-portal/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const MinPasswordLength = 8

type RegisterInput struct {
	Email     string
	Password  string
	UserType  profile.UserType
	FirstName *string
	LastName  *string
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns credentials: hashing, uniqueness and verification.
type Service struct {
	users repository.UserRepository
	cost  int
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// NewServiceWithCost is used by tests to keep hashing fast.
func NewServiceWithCost(users repository.UserRepository, cost int) *Service {
	return &Service{users: users, cost: cost}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, profile.Profile, error) {
	email := NormalizeEmail(in.Email)
	if !isValidEmail(email) || !isValidPassword(in.Password) {
		return user.User{}, profile.Profile{}, ErrInvalidInput
	}

	userType := in.UserType
	if userType == "" {
		userType = profile.UserTypeJobSeeker
	}
	if userType != profile.UserTypeJobSeeker && userType != profile.UserTypeEmployer {
		return user.User{}, profile.Profile{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, profile.Profile{}, ErrInternal
	}

	u, p, err := s.users.CreateWithProfile(ctx,
		user.User{Email: email, PasswordHash: string(hash)},
		profile.Profile{
			UserType:     userType,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			IsOpenToWork: true,
			Visibility:   profile.VisibilityPublic,
		},
	)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, profile.Profile{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, profile.Profile{}, ErrInternal
	}
	return sanitizeUser(u), p, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return sanitizeUser(u), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= MinPasswordLength
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
