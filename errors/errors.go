package errors

import (
	"fmt"
)

// Error is an error carrying the HTTP status code it should be reported
// with. Handlers return it, the HTTP layer reads the code back.
type Error interface {
	error

	Code() int
	Cause() error
}

// DefaultCode is used when no code is given: 500, Internal Server Error.
var DefaultCode = 500

type appError struct {
	msg   string
	code  int
	cause error
}

func (err *appError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *appError) Code() int { return err.code }

func (err *appError) Cause() error { return err.cause }

// Enricher completes an error at construction time.
type Enricher func(*appError)

func WithCode(code int) Enricher {
	return func(err *appError) {
		err.code = code
	}
}

func WithCause(cause error) Enricher {
	return func(err *appError) {
		err.cause = cause
	}
}

func New(msg string, fs ...Enricher) error {
	err := &appError{
		msg:  msg,
		code: DefaultCode,
	}

	for _, f := range fs {
		f(err)
	}

	return err
}

// Code extracts the status code of err, falling back on DefaultCode for
// errors that do not carry one.
func Code(err error) int {
	if err, ok := err.(Error); ok {
		return err.Code()
	}
	return DefaultCode
}
