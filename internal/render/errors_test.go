package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type upstreamError struct {
	Code    string
	Message string
}

func (e *upstreamError) Error() string     { return e.Message }
func (e *upstreamError) ErrorCode() string { return e.Code }

type timeoutError struct{ msg string }

func (e timeoutError) Error() string { return e.msg }

func TestFormatErrorPlain(t *testing.T) {
	got := FormatError(timeoutError{msg: "x"})
	assert.Equal(t, "timeoutError: x", got)
}

func TestFormatErrorWithCode(t *testing.T) {
	err := &upstreamError{Code: "E1", Message: "x"}
	assert.Equal(t, "upstreamError: [E1] x", FormatError(err))
}

func TestFormatErrorEmptyCodeOmitsBrackets(t *testing.T) {
	err := &upstreamError{Message: "no code here"}
	assert.Equal(t, "upstreamError: no code here", FormatError(err))
}

func TestFormatErrorEmptyMessage(t *testing.T) {
	// The trailing separator stays even for empty messages, so output
	// shape is deterministic.
	assert.Equal(t, "timeoutError: ", FormatError(timeoutError{}))
}

func TestFormatErrorStdlibErrors(t *testing.T) {
	assert.Equal(t, "errorString: boom", FormatError(errors.New("boom")))

	wrapped := fmt.Errorf("context: %w", errors.New("inner"))
	assert.Equal(t, "wrapError: context: inner", FormatError(wrapped))
}

func TestFormatErrorNil(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))
}
