package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryKind(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Developer not found.")))
	assert.True(t, IsConflict(NewConflictError("Email already exists.")))
	assert.True(t, IsBadRequest(NewBadRequestError("invalid id")))
	assert.True(t, IsInvalidInput(NewInvalidOptionError("Invalid OS option.", []string{"Linux"})))
	assert.True(t, IsUnauthorized(NewMissingTokenError()))
	assert.True(t, IsMissingTokenError(NewMissingTokenError()))

	assert.False(t, IsNotFound(NewConflictError("x")))
}

func TestWrappedApiErrStillMatches(t *testing.T) {
	err := fmt.Errorf("check developer: %w", NewNotFoundError("Developer not found."))

	var apiErr *ApiErr
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, IsNotFound(err))
}

func TestInvalidOptionCopiesOptions(t *testing.T) {
	options := []string{"Windows", "Linux"}
	err := NewInvalidOptionError("Invalid OS option.", options)
	options[0] = "BeOS"

	assert.Equal(t, []string{"Windows", "Linux"}, err.Options)
	assert.Equal(t, "Invalid OS option.", err.Message())
}

func TestErrorIncludesDetails(t *testing.T) {
	err := NewInvalidFieldError("email", "must be a valid email")

	assert.Equal(t, "invalid field: Invalid field email: must be a valid email", err.Error())
	assert.Equal(t, "email", err.Field)
	assert.True(t, IsInvalidFieldError(err))
}

func TestGetFullError(t *testing.T) {
	inner := NewInternalError("inner")
	outer := NewInternalErrorWithCause("outer", inner)

	assert.Equal(t, "outer -> inner", outer.GetFullError())
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		check  func(error) bool
	}{
		{
			name:   "unique violation",
			cause:  &pgconn.PgError{Code: "23505", ConstraintName: "developers_email_key"},
			status: http.StatusConflict,
			check:  IsUniqueConstraintViolationError,
		},
		{
			name:   "foreign key violation",
			cause:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503", TableName: "developers"}),
			status: http.StatusBadRequest,
			check:  IsForeignKeyConstraintError,
		},
		{
			name:   "canceled",
			cause:  context.Canceled,
			status: 499,
			check:  func(err error) bool { return errors.Is(err, ErrRequestCanceled) },
		},
		{
			name:   "deadline",
			cause:  fmt.Errorf("query: %w", context.DeadlineExceeded),
			status: http.StatusGatewayTimeout,
			check:  IsContextDeadlineError,
		},
		{
			name:   "connection refused",
			cause:  errors.New("dial tcp: connection refused"),
			status: http.StatusServiceUnavailable,
			check:  func(err error) bool { return errors.Is(err, ErrDatabaseConnection) },
		},
		{
			name:   "anything else",
			cause:  errors.New("syntax error at or near"),
			status: http.StatusInternalServerError,
			check:  IsInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "developer", tt.cause)

			assert.Equal(t, tt.status, err.StatusCode)
			assert.True(t, tt.check(err))
		})
	}
}

func TestConfigErrors(t *testing.T) {
	err := NewEnvironmentVariableError("DATABASE_URL")
	assert.True(t, IsConfigError(err))
	assert.True(t, IsInternal(err))
	assert.Equal(t, "DATABASE_URL", err.Field)

	cause := errors.New(`strconv.Atoi: parsing "http": invalid syntax`)
	err = NewConfigError("PORT", cause)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.GetFullError(), "invalid syntax")
}
