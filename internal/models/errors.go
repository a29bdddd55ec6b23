package models

import (
	"errors"
	"fmt"
)

// ErrorCode classifies every business-rule failure a core operation can
// return. Handlers branch on the code; the message is safe to show users.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "not_found"
	CodeDuplicate         ErrorCode = "duplicate"
	CodeLimitReached      ErrorCode = "limit_reached"
	CodeAlreadyProcessed  ErrorCode = "already_processed"
	CodeForbidden         ErrorCode = "forbidden"
	CodeInvalidCredential ErrorCode = "invalid_credential"
	CodeExpired           ErrorCode = "expired"
	CodeAlreadyUsed       ErrorCode = "already_used"
	CodeInvalidInput      ErrorCode = "invalid_input"
	CodeInternal          ErrorCode = "internal"
)

// CoreError is the returned-not-thrown failure shape of every core operation.
type CoreError struct {
	Code    ErrorCode
	Message string
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, format string, args ...interface{}) *CoreError {
	return &CoreError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Unclassified errors report CodeInternal.
func CodeOf(err error) ErrorCode {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
