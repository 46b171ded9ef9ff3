package repository

import (
	"job-portal/internal/database/postgres"
)

func isNoRows(err error) bool {
	return postgres.IsNoRows(err)
}

func isUniqueViolation(err error) bool {
	return postgres.IsCode(err, postgres.CodeUniqueViolation)
}

func enumPtr[T ~string](s *string) *T {
	if s == nil || *s == "" {
		return nil
	}
	v := T(*s)
	return &v
}

func enumArg[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
