package zipffy

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure. callers switch on the code
// rather than on the message text.
type ErrorCode uint8

const (
	ErrorCodeInvalidInput      ErrorCode = 1 // word absent, too long, or unusable capacity
	ErrorCodeNotFound          ErrorCode = 2 // lookup of a word that was never inserted
	ErrorCodeAllocationFailure ErrorCode = 3 // bucket array could not be allocated
	ErrorCodeCapacityExceeded  ErrorCode = 4 // estimate larger than the largest tier
	ErrorCodeFileNotFound      ErrorCode = 5
	ErrorCodeFileUnreadable    ErrorCode = 6
	ErrorCodeLineTooLong       ErrorCode = 7 // line longer than max_line_length
	ErrorCodeUsage             ErrorCode = 8
	ErrorCodeInvalidConfig     ErrorCode = 9
)

// ErrorMapper maps error codes to their display names
var ErrorMapper = map[ErrorCode]string{
	ErrorCodeInvalidInput:      "InvalidInput",
	ErrorCodeNotFound:          "NotFound",
	ErrorCodeAllocationFailure: "AllocationFailure",
	ErrorCodeCapacityExceeded:  "CapacityExceeded",
	ErrorCodeFileNotFound:      "FileNotFound",
	ErrorCodeFileUnreadable:    "FileUnreadable",
	ErrorCodeLineTooLong:       "LineTooLong",
	ErrorCodeUsage:             "UsageError",
	ErrorCodeInvalidConfig:     "InvalidConfig",
}

// ZipfError carries an error code alongside a human readable message and,
// optionally, the underlying cause.
type ZipfError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ZipfError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = ErrorMapper[e.Code]
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ZipfError) Unwrap() error {
	return e.Err
}

// NewZipfError creates a new error. an empty message falls back to the
// code's display name.
func NewZipfError(code ErrorCode, message string) *ZipfError {
	if message == "" {
		message = ErrorMapper[code]
	}
	return &ZipfError{
		Code:    code,
		Message: message,
	}
}

func newZipfErrorf(code ErrorCode, format string, a ...any) *ZipfError {
	return NewZipfError(code, fmt.Sprintf(format, a...))
}

func wrapZipfError(code ErrorCode, err error, format string, a ...any) *ZipfError {
	ze := newZipfErrorf(code, format, a...)
	ze.Err = err
	return ze
}

// CodeOf returns the code of the first ZipfError in err's chain, or 0 when
// there is none.
func CodeOf(err error) ErrorCode {
	var ze *ZipfError
	if errors.As(err, &ze) {
		return ze.Code
	}
	return 0
}

// IsNotFound reports whether err is a lookup miss, as opposed to a failure
// to compute the lookup at all.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrorCodeNotFound
}

// IsInvalidInput reports whether err rejected a single word or capacity.
func IsInvalidInput(err error) bool {
	return CodeOf(err) == ErrorCodeInvalidInput
}
