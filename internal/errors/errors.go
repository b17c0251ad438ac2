package errors

import (
	"errors"
	"fmt"
)

// Basic error check functions from standard library
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Capability sentinels. Every coded error matches ErrGeneric; ErrTypeError
// and ErrRangeError only match errors of that base.
var (
	ErrGeneric    = &baseSentinel{base: BaseError}
	ErrTypeError  = &baseSentinel{base: BaseTypeError}
	ErrRangeError = &baseSentinel{base: BaseRangeError}
)

type baseSentinel struct {
	base BaseType
}

func (s *baseSentinel) Error() string {
	return s.base.String()
}

// codedError implements the Error interface
type codedError struct {
	base    BaseType
	code    ErrorCode
	message string
	err     error
}

func newCodedError(base BaseType, code ErrorCode, message string, cause error) *codedError {
	return &codedError{
		base:    base,
		code:    code,
		message: message,
		err:     cause,
	}
}

func (e *codedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name(), e.message)
}

func (e *codedError) Code() ErrorCode {
	return e.code
}

func (e *codedError) Name() string {
	return fmt.Sprintf("%s [%s]", e.base, e.code)
}

func (e *codedError) Message() string {
	return e.message
}

func (e *codedError) Base() BaseType {
	return e.base
}

func (e *codedError) Unwrap() error {
	return e.err
}

func (e *codedError) Is(target error) bool {
	s, ok := target.(*baseSentinel)
	if !ok {
		return false
	}

	return s == ErrGeneric || s.base == e.base
}

// HasCode reports whether any error in err's chain carries code
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if coded, ok := err.(interface{ Code() ErrorCode }); ok && coded.Code() == code {
			return true
		}
		err = errors.Unwrap(err)
	}

	return false
}

// IsBase reports whether err satisfies the capability of base
func IsBase(err error, base BaseType) bool {
	switch base {
	case BaseTypeError:
		return errors.Is(err, ErrTypeError)
	case BaseRangeError:
		return errors.Is(err, ErrRangeError)
	default:
		return errors.Is(err, ErrGeneric)
	}
}
