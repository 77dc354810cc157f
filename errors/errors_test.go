package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	tts := []struct {
		fs       []Enricher
		code     int
		expected string
	}{
		{
			fs:       nil,
			code:     500,
			expected: "boom",
		},
		{
			fs:       []Enricher{WithCode(404)},
			code:     404,
			expected: "boom",
		},
		{
			fs:       []Enricher{WithCode(404), WithCode(401)},
			code:     401,
			expected: "boom",
		},
		{
			fs:       []Enricher{WithCause(errors.New("root cause"))},
			code:     500,
			expected: "boom: root cause",
		},
		{
			fs:       []Enricher{BadRequest(), WithCause(errors.New("field missing"))},
			code:     400,
			expected: "boom: field missing",
		},
	}

	for i, tt := range tts {
		err := New("boom", tt.fs...)

		appErr, ok := err.(Error)
		if !ok {
			t.Fatalf("%d - error should implement Error", i)
		}
		if appErr.Code() != tt.code {
			t.Errorf("%d - incorrect code: expected %d got %d", i, tt.code, appErr.Code())
		}
		if err.Error() != tt.expected {
			t.Errorf("%d - incorrect message: expected %q got %q", i, tt.expected, err.Error())
		}
	}
}

func TestCode(t *testing.T) {
	tts := []struct {
		err  error
		code int
	}{
		{err: New("nope", NotFound()), code: 404},
		{err: New("nope", Unauthorized()), code: 401},
		{err: New("nope", Forbidden()), code: 403},
		{err: New("nope"), code: 500},
		{err: fmt.Errorf("plain"), code: 500},
	}

	for i, tt := range tts {
		if code := Code(tt.err); code != tt.code {
			t.Errorf("%d - incorrect code: expected %d got %d", i, tt.code, code)
		}
	}
}
