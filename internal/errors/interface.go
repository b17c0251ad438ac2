package errors

// ErrorCode represents a unique identifier for each error type
type ErrorCode string

// String implements the Stringer interface
func (c ErrorCode) String() string {
	return string(c)
}

// BaseType is the structural kind an error satisfies alongside its code
type BaseType int

const (
	BaseError BaseType = iota
	BaseTypeError
	BaseRangeError
)

func (b BaseType) String() string {
	switch b {
	case BaseTypeError:
		return "TypeError"
	case BaseRangeError:
		return "RangeError"
	default:
		return "Error"
	}
}

// ParseBaseType maps a base type name back to its BaseType
func ParseBaseType(name string) (BaseType, bool) {
	switch name {
	case "Error":
		return BaseError, true
	case "TypeError":
		return BaseTypeError, true
	case "RangeError":
		return BaseRangeError, true
	default:
		return BaseError, false
	}
}

// Error represents a domain error built from a registered code
type Error interface {
	error
	Code() ErrorCode
	Name() string
	Message() string
	Base() BaseType
	Unwrap() error
}

// Factory defines methods for creating domain errors
type Factory interface {
	New(base BaseType, key any, args ...any) (Error, error)
	Wrap(cause error, base BaseType, key any, args ...any) (Error, error)
	Message(key any, args ...any) (string, error)
}
