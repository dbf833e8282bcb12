// Package errs defines the error values returned by the fxt library.
//
// Every failure mode maps to one sentinel, so callers can test with
// errors.Is. Each sentinel also carries the negative status code from the
// producer-side FXT contract; embedders that need an integer status can
// recover it with Code.
package errs

import "errors"

// Error is a library error with a stable negative status code.
type Error struct {
	code int
	msg  string
}

// New creates a coded error. Codes are negative and unique per failure mode.
func New(code int, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Code returns the error's numeric status code.
func (e *Error) Code() int {
	return e.code
}

var (
	// ErrWriteToStreamFailed indicates the destination writer returned an
	// error or a short write. The stream must be considered truncated.
	ErrWriteToStreamFailed = New(-3000, "write to stream failed")

	// ErrStrTooLong indicates a record-level string exceeds its
	// format-defined maximum length.
	ErrStrTooLong = New(-3001, "string exceeds format maximum length")

	// ErrWriteLengthMismatch indicates the words written for a record's
	// arguments disagree with the pre-computed size. This is an encoder bug
	// and signals stream corruption.
	ErrWriteLengthMismatch = New(-3002, "write length mismatch")

	// ErrDataTooLong indicates a blob payload exceeds the 23-bit size field.
	ErrDataTooLong = New(-3003, "blob data exceeds maximum length")

	// ErrInvalidOutgoingThreadState indicates a context-switch outgoing
	// thread state does not fit the 4-bit field.
	ErrInvalidOutgoingThreadState = New(-3004, "invalid outgoing thread state")

	// ErrRecordSizeTooLarge indicates a computed record size exceeds the
	// 12-bit size-in-words field.
	ErrRecordSizeTooLarge = New(-3005, "record size exceeds maximum")

	// ErrInvalidArgType indicates an argument type tag outside the defined
	// range.
	ErrInvalidArgType = New(-3006, "invalid argument type")

	// ErrArgNameTooLong indicates an inline argument name exceeds 0x7FFF
	// bytes.
	ErrArgNameTooLong = New(-3007, "argument name exceeds maximum length")

	// ErrArgStrValueTooLong indicates an inline argument string value, or a
	// hex-rendered byte array, exceeds 0x7FFF bytes.
	ErrArgStrValueTooLong = New(-3008, "argument string value exceeds maximum length")

	// ErrTooManyArgs indicates a record carries more than 15 arguments.
	ErrTooManyArgs = New(-3009, "too many arguments")
)

// Code extracts the numeric status code from err. It returns 0 for nil and
// -1 for errors that did not originate in this library.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}

	return -1
}
