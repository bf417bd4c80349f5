package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrRequestCanceled    = errors.New("request canceled")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
)

// Postgres SQLSTATE codes the API maps to client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	var pgErr *pgconn.PgError
	if errors.As(cause, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewUniqueConstraintViolationError(entity, pgErr.ConstraintName, cause)
		case pgForeignKeyViolation:
			return NewForeignKeyConstraintError(entity, pgErr.TableName, cause)
		}
	}

	if errors.Is(cause, context.DeadlineExceeded) {
		return NewContextDeadlineError(operation+" "+entity, cause)
	}

	if errors.Is(cause, context.Canceled) {
		return &ApiErr{
			StatusCode: 499,
			err:        ErrRequestCanceled,
			Details:    details,
			Cause:      cause,
		}
	}

	if cause != nil && strings.Contains(cause.Error(), "connection") {
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		kind:       ErrInternal,
		Details:    details,
		Cause:      cause,
	}
}

func NewUniqueConstraintViolationError(entity, constraint string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s already exists", entity),
		kind:       ErrConflict,
		Details:    fmt.Sprintf("Unique constraint violation on %s (%s)", entity, constraint),
		Cause:      errors.Join(ErrUniqueConstraintViolation, cause),
	}
}

func NewForeignKeyConstraintError(entity, referencedEntity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("invalid reference in %s", entity),
		kind:       ErrBadRequest,
		Details:    fmt.Sprintf("Foreign key constraint violation: %s references %s", entity, referencedEntity),
		Cause:      errors.Join(ErrForeignKeyConstraint, cause),
	}
}

func IsUniqueConstraintViolationError(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && errors.Is(apiErr.Cause, ErrUniqueConstraintViolation)
}

func IsForeignKeyConstraintError(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && errors.Is(apiErr.Cause, ErrForeignKeyConstraint)
}
