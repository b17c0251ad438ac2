package errors

import "fmt"

// AssertionCode is carried by every AssertionError. It can never be registered.
const AssertionCode ErrorCode = "ERR_ASSERTION"

// ErrAssertion matches any AssertionError through Is.
var ErrAssertion = &AssertionError{message: "assertion failed"}

// AssertionError signals misuse of the registry itself, as opposed to a
// domain error produced by it. It matches ErrAssertion only, so Is and IsBase
// with the base sentinels keep the two kinds apart; Expectation treats it as a
// plain Error.
type AssertionError struct {
	message string
}

func newAssertionError(format string, args ...any) *AssertionError {
	return &AssertionError{message: fmt.Sprintf(format, args...)}
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name(), e.message)
}

func (*AssertionError) Code() ErrorCode {
	return AssertionCode
}

func (*AssertionError) Name() string {
	return "AssertionError [" + string(AssertionCode) + "]"
}

func (e *AssertionError) Message() string {
	return e.message
}

func (*AssertionError) Is(target error) bool {
	_, ok := target.(*AssertionError)
	return ok
}

func invalidKey(key any) *AssertionError {
	return newAssertionError("An invalid error message key was used: %s.", repr(key))
}
