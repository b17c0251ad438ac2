package errors

import (
	"fmt"
	"strings"
)

// Built-in codes
const (
	ErrInvalidArgType   ErrorCode = "ERR_INVALID_ARG_TYPE"
	ErrInvalidURLScheme ErrorCode = "ERR_INVALID_URL_SCHEME"
	ErrMissingArgs      ErrorCode = "ERR_MISSING_ARGS"
	ErrInvalidCallback  ErrorCode = "ERR_INVALID_CALLBACK"
	ErrInvalidThis      ErrorCode = "ERR_INVALID_THIS"
	ErrUnknownSignal    ErrorCode = "ERR_UNKNOWN_SIGNAL"
	ErrIndexOutOfRange  ErrorCode = "ERR_INDEX_OUT_OF_RANGE"

	// Application errors
	ErrInvalidConfig   ErrorCode = "ERR_INVALID_CONFIG"
	ErrReadConfig      ErrorCode = "ERR_READ_CONFIG"
	ErrInvalidLogLevel ErrorCode = "ERR_INVALID_LOG_LEVEL"
	ErrInvalidOutput   ErrorCode = "ERR_INVALID_OUTPUT"
	ErrUnknownCommand  ErrorCode = "ERR_UNKNOWN_COMMAND"
)

func catalog() map[ErrorCode]Template {
	return map[ErrorCode]Template{
		ErrInvalidArgType:   Computed(invalidArgType),
		ErrInvalidURLScheme: Computed(invalidURLScheme),
		ErrMissingArgs:      Computed(missingArgs),
		ErrInvalidCallback:  Fixed("Callback must be a function"),
		ErrInvalidThis:      Fixed(`Value of "this" must be of type %s`),
		ErrUnknownSignal:    Fixed("Unknown signal: %s"),
		ErrIndexOutOfRange:  Fixed("Index out of range"),

		ErrInvalidConfig:   Fixed("Invalid configuration value for %s: %s"),
		ErrReadConfig:      Fixed("Failed to read config file %s"),
		ErrInvalidLogLevel: Fixed("Invalid log level: %s"),
		ErrInvalidOutput:   Fixed("Invalid output format: %s"),
		ErrUnknownCommand:  Fixed("Unknown command: %s"),
	}
}

// invalidArgType renders (name, expected, [actual]). The received type is
// appended whenever a third argument is present, even a nil one.
func invalidArgType(args ...any) (string, error) {
	var name, expected any
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		expected = args[1]
	}
	if name == nil || repr(name) == "" {
		return "", newAssertionError("name is required")
	}

	types, err := oneOf(expected, "type")
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf(`The "%s" argument must be %s`, repr(name), types)
	if len(args) >= 3 {
		msg += ". Received type " + typeOf(args[2])
	}

	return msg, nil
}

func invalidURLScheme(args ...any) (string, error) {
	var expected any
	if len(args) > 0 {
		expected = args[0]
	}

	schemes, err := oneOf(expected, "scheme")
	if err != nil {
		return "", err
	}

	return "The URL must be " + schemes, nil
}

func missingArgs(args ...any) (string, error) {
	if len(args) == 0 {
		return "", newAssertionError("At least one arg needs to be specified")
	}

	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = `"` + display(arg) + `"`
	}

	var b strings.Builder
	b.WriteString("The ")
	switch n := len(names); n {
	case 1:
		b.WriteString(names[0] + " argument")
	case 2:
		b.WriteString(names[0] + " and " + names[1] + " arguments")
	default:
		b.WriteString(strings.Join(names[:n-1], ", "))
		b.WriteString(", and " + names[n-1] + " arguments")
	}
	b.WriteString(" must be specified")

	return b.String(), nil
}
