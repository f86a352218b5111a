package db

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/angelmondragon/bakery-backend/pkg/errors"
	"gorm.io/gorm"
)

// ErrNoRowsMatched signals a conditional write that matched nothing. Gateways
// return it so callers can tell "row absent" from a transport failure.
var ErrNoRowsMatched = errors.New("no rows matched")

const (
	sqlStateUniqueViolation = "23505"
)

// IsUniqueViolation reports whether the provided error references a Postgres
// unique violation constraint. When constraintName is provided, the helper looks
// for the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if pg, ok := pkgerrors.PGError(err); ok {
		if pg.Code != sqlStateUniqueViolation {
			return false
		}
		return constraintName == "" || pg.Constraint == constraintName
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// ClassifyError maps a store error onto the typed taxonomy at the point it
// occurs. op names the operation and prefixes the message.
//
//	record not found / no rows matched -> NOT_FOUND
//	23505                              -> CONFLICT
//	22xxx, other 23xxx                 -> VALIDATION_ERROR
//	anything else                      -> INTERNAL_ERROR
func ClassifyError(err error, op string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, ErrNoRowsMatched):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, op+" not found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op+" failed: "+err.Error())
	case IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, op+" already exists")
	}

	if pg, ok := pkgerrors.PGError(err); ok {
		if strings.HasPrefix(pg.Code, "22") || strings.HasPrefix(pg.Code, "23") {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, op+" failed: "+pg.Message)
		}
	}

	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op+" failed: "+err.Error())
}
