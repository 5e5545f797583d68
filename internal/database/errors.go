package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
	codeCheckViolation     = "23514"
)

// UniqueViolation reports whether err is a unique constraint violation and returns the constraint name.
func UniqueViolation(err error) (string, bool) {
	return violation(err, codeUniqueViolation)
}

// ExclusionViolation reports whether err is an exclusion constraint violation and returns the constraint name.
func ExclusionViolation(err error) (string, bool) {
	return violation(err, codeExclusionViolation)
}

// CheckViolation reports whether err is a check constraint violation and returns the constraint name.
func CheckViolation(err error) (string, bool) {
	return violation(err, codeCheckViolation)
}

func violation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return "", false
	}

	return pgErr.ConstraintName, true
}
