package usecase

import (
	"errors"

	"job-portal/internal/domain/policy"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrWrongRole           = errors.New("action not allowed for this account type")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrCompanyRequired     = errors.New("employer has no company")
	ErrUseEmployerBoard    = errors.New("employers use the employer dashboard")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field string
	Rule  string
}

func (e ValidationError) Error() string { return e.Field + ": " + e.Rule }

func (e ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, rule string) error {
	return ValidationError{Field: field, Rule: rule}
}

// denied turns a negative policy decision into the matching usecase error.
func denied(d policy.Decision) error {
	switch d.Reason {
	case policy.ReasonAnonymous:
		return ErrUnauthorized
	case policy.ReasonWrongRole:
		return ErrWrongRole
	default:
		return ErrForbidden
	}
}

func authorize(actor policy.Actor, action policy.Action, res policy.Resource) error {
	if d := policy.Decide(actor, action, res); d.Denied() {
		return denied(d)
	}
	return nil
}
