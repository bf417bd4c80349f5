package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration & Environment Errors
var (
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// Timeout Errors
var (
	ErrContextDeadline = errors.New("context deadline exceeded")
)

// Configuration & Environment Error Constructors
func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		kind:       ErrInternal,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Field:      configName,
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		kind:       ErrInternal,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

// NewContextDeadlineError reports a statement cut off by its deadline.
func NewContextDeadlineError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrContextDeadline,
		Details:    fmt.Sprintf("Context deadline exceeded for %s", operation),
		Cause:      cause,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) || errors.Is(err, ErrEnvironmentVariable)
}

func IsContextDeadlineError(err error) bool {
	return errors.Is(err, ErrContextDeadline)
}
