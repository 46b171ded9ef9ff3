package company

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("company not found")
	ErrAlreadyExists = errors.New("employer already has a company")
)

type Size string

const (
	SizeStartup Size = "startup"
	SizeSmall   Size = "small"
	SizeMedium  Size = "medium"
	SizeLarge   Size = "large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeStartup, SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

type Company struct {
	ID            uuid.UUID
	Name          string
	Description   *string
	Website       *string
	LogoURL       *string
	Industry      *string
	Size          *Size
	Location      *string
	FoundedYear   *int
	CultureImages []string
	Benefits      []string
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	ActiveJobCount int
}
