package errors

import (
	"errors"
	"regexp"
)

// Expectation describes an error a caller expects to receive. Zero fields are
// not checked, except Base which is checked only when HasBase is set. An
// *AssertionError counts as an instance of BaseError here even though it
// never matches ErrGeneric through Is.
type Expectation struct {
	Code    ErrorCode
	Base    BaseType
	HasBase bool
	Message *regexp.Regexp
}

// Check returns nil when err satisfies e, otherwise an *AssertionError
// describing the first mismatch.
func (e Expectation) Check(err error) error {
	if err == nil {
		return newAssertionError("Missing expected error")
	}

	var name, message string
	var code ErrorCode
	var domain Error
	var assertion *AssertionError
	switch {
	case errors.As(err, &domain):
		name, message, code = domain.Name(), domain.Message(), domain.Code()
	case errors.As(err, &assertion):
		name, message, code = assertion.Name(), assertion.Message(), assertion.Code()
	default:
		name, message = "Error", err.Error()
	}

	if e.HasBase && !IsBase(err, e.Base) && !(e.Base == BaseError && assertion != nil) {
		return newAssertionError("%s is not instance of %s", name, e.Base)
	}
	if e.Code != "" && code != e.Code {
		return newAssertionError("%s is not %s", name, e.Code)
	}
	if e.Message != nil && !e.Message.MatchString(message) {
		return newAssertionError("%s does not match %s", message, e.Message)
	}

	return nil
}
