package errors_test

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"testing"

	"codeberg.org/mutker/errcodes/internal/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *errors.Registry {
	t.Helper()

	reg := errors.NewRegistry()
	require.NoError(t, reg.Register("TEST_ERROR_1", errors.Fixed("Error for testing purposes: %s")))
	require.NoError(t, reg.Register("TEST_ERROR_2", errors.Computed(func(args ...any) (string, error) {
		return fmt.Sprintf("%v %v", args[0], args[1]), nil
	})))

	return reg
}

func TestNewBaseTypes(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		base errors.BaseType
		name string
	}{
		{errors.BaseError, "Error [TEST_ERROR_1]"},
		{errors.BaseTypeError, "TypeError [TEST_ERROR_1]"},
		{errors.BaseRangeError, "RangeError [TEST_ERROR_1]"},
	}

	for _, tt := range tests {
		t.Run(tt.base.String(), func(t *testing.T) {
			err, buildErr := reg.New(tt.base, "TEST_ERROR_1", "test")
			require.NoError(t, buildErr)

			assert.True(t, errors.Is(err, errors.ErrGeneric))
			assert.True(t, errors.IsBase(err, tt.base))
			assert.Equal(t, tt.name, err.Name())
			assert.Equal(t, "Error for testing purposes: test", err.Message())
			assert.Equal(t, errors.ErrorCode("TEST_ERROR_1"), err.Code())
			assert.Equal(t, tt.base, err.Base())
			assert.Equal(t, tt.name+": Error for testing purposes: test", err.Error())
		})
	}
}

func TestTypeErrorIsNotRangeError(t *testing.T) {
	reg := newTestRegistry(t)

	err, buildErr := reg.New(errors.BaseTypeError, "TEST_ERROR_1", "a")
	require.NoError(t, buildErr)

	assert.True(t, errors.Is(err, errors.ErrTypeError))
	assert.False(t, errors.Is(err, errors.ErrRangeError))
	assert.False(t, errors.Is(err, errors.ErrAssertion))
}

func TestComputedTemplate(t *testing.T) {
	reg := newTestRegistry(t)

	err, buildErr := reg.New(errors.BaseError, "TEST_ERROR_2", "abc", "xyz")
	require.NoError(t, buildErr)
	assert.Equal(t, "Error [TEST_ERROR_2]", err.Name())
	assert.Equal(t, "abc xyz", err.Message())
}

func TestFixedTemplateWithoutArgs(t *testing.T) {
	reg := newTestRegistry(t)

	err, buildErr := reg.New(errors.BaseError, "TEST_ERROR_1")
	require.NoError(t, buildErr)
	assert.Equal(t, "Error for testing purposes: %s", err.Message())

	msg, msgErr := reg.Message(errors.ErrorCode("TEST_ERROR_1"))
	require.NoError(t, msgErr)
	assert.Equal(t, "Error for testing purposes: %s", msg)
}

func TestInvalidKey(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name string
		key  any
		want string
	}{
		{"unregistered string", "TEST_FOO_KEY", "TEST_FOO_KEY"},
		{"number", 1, "1"},
		{"float", 1.5, "1.5"},
		{"large float", 1e21, "1e+21"},
		{"below large float", 1e20, "100000000000000000000"},
		{"small float", 1e-7, "1e-7"},
		{"infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"not a number", math.NaN(), "NaN"},
		{"float32", float32(0.1), "0.1"},
		{"boolean", true, "true"},
		{"empty object", map[string]any{}, "[object Object]"},
		{"struct", struct{ A int }{1}, "[object Object]"},
		{"empty list", []any{}, ""},
		{"list", []any{"a", 2}, "a,2"},
		{"nil", nil, "undefined"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := "An invalid error message key was used: " + tt.want + "."

			for _, base := range []errors.BaseType{errors.BaseError, errors.BaseTypeError, errors.BaseRangeError} {
				err, buildErr := reg.New(base, tt.key)
				assert.Nil(t, err)

				var assertion *errors.AssertionError
				require.True(t, errors.As(buildErr, &assertion))
				assert.Equal(t, errors.AssertionCode, assertion.Code())
				assert.Equal(t, want, assertion.Message())
			}

			_, msgErr := reg.Message(tt.key)
			require.Error(t, msgErr)
			assert.True(t, errors.Is(msgErr, errors.ErrAssertion))
			assert.False(t, errors.Is(msgErr, errors.ErrGeneric))
			assert.False(t, errors.IsBase(msgErr, errors.BaseError))
		})
	}
}

func TestSetLoggerDuringLookups(t *testing.T) {
	reg := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.SetLogger(zerolog.New(io.Discard))
		}()
		go func() {
			defer wg.Done()
			_, err := reg.Message("TEST_FOO_KEY")
			assert.Error(t, err)
			_, err = reg.Message(42)
			assert.Error(t, err)
		}()
	}
	wg.Wait()

	msg, err := reg.Message("TEST_ERROR_1", "after")
	require.NoError(t, err)
	assert.Equal(t, "Error for testing purposes: after", msg)
}

func TestInvalidKeyDoesNotRegister(t *testing.T) {
	reg := newTestRegistry(t)

	_, first := reg.New(errors.BaseError, "TEST_FOO_KEY")
	_, second := reg.New(errors.BaseError, "TEST_FOO_KEY")

	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
	assert.False(t, reg.Has("TEST_FOO_KEY"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.Register("TEST_ERROR_1", errors.Fixed("other"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.AssertionCode))
	assert.Equal(t, "Error code TEST_ERROR_1 is already registered", err.(*errors.AssertionError).Message())

	msg, msgErr := reg.Message("TEST_ERROR_1")
	require.NoError(t, msgErr)
	assert.Equal(t, "Error for testing purposes: %s", msg)
}

func TestRegisterRejectsInvalid(t *testing.T) {
	reg := errors.NewRegistry()

	assert.Error(t, reg.Register("", errors.Fixed("x")))
	assert.Error(t, reg.Register(errors.AssertionCode, errors.Fixed("x")))
	assert.Error(t, reg.Register("NIL_TEMPLATE", nil))
	assert.Error(t, reg.Register("NIL_COMPUTED", errors.Computed(nil)))
	assert.Empty(t, reg.Codes())
}

func TestRegisterAllCollectsFailures(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.RegisterAll(map[errors.ErrorCode]errors.Template{
		"TEST_ERROR_1": errors.Fixed("dup one"),
		"TEST_ERROR_2": errors.Fixed("dup two"),
		"TEST_ERROR_3": errors.Fixed("fresh"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_ERROR_1 is already registered")
	assert.Contains(t, err.Error(), "TEST_ERROR_2 is already registered")
	assert.True(t, reg.Has("TEST_ERROR_3"))
	assert.Equal(t, []errors.ErrorCode{"TEST_ERROR_1", "TEST_ERROR_2", "TEST_ERROR_3"}, reg.Codes())
}

func TestWrapKeepsCause(t *testing.T) {
	reg := newTestRegistry(t)
	cause := fmt.Errorf("disk on fire")

	err, buildErr := reg.Wrap(cause, errors.BaseRangeError, "TEST_ERROR_1", "wrapped")
	require.NoError(t, buildErr)

	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.IsBase(err, errors.BaseRangeError))

	outer := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.HasCode(outer, "TEST_ERROR_1"))
	assert.True(t, errors.Is(outer, errors.ErrRangeError))
	assert.False(t, errors.HasCode(outer, "TEST_ERROR_2"))
}

func TestDefaultConstructors(t *testing.T) {
	err := errors.NewTypeError(errors.ErrInvalidArgType, "a", "b")
	assert.Equal(t, "TypeError [ERR_INVALID_ARG_TYPE]", err.Name())
	assert.True(t, errors.Is(err, errors.ErrTypeError))

	err = errors.NewRangeError(errors.ErrIndexOutOfRange)
	assert.Equal(t, "RangeError [ERR_INDEX_OUT_OF_RANGE]: Index out of range", err.Error())

	err = errors.NewError(errors.ErrUnknownSignal, "SIGFOO")
	assert.Equal(t, "Unknown signal: SIGFOO", err.Message())
}

func TestDefaultConstructorsPanicOnMisuse(t *testing.T) {
	assert.PanicsWithError(t,
		"AssertionError [ERR_ASSERTION]: An invalid error message key was used: TEST_FOO_KEY.",
		func() { errors.NewError("TEST_FOO_KEY") })
	assert.PanicsWithError(t,
		"AssertionError [ERR_ASSERTION]: An invalid error message key was used: true.",
		func() { errors.NewTypeError(true) })
	assert.PanicsWithError(t,
		"AssertionError [ERR_ASSERTION]: At least one arg needs to be specified",
		func() { errors.NewRangeError(errors.ErrMissingArgs) })
}

func TestDefaultCatalogCodes(t *testing.T) {
	codes := errors.Default().Codes()

	assert.Contains(t, codes, errors.ErrInvalidArgType)
	assert.Contains(t, codes, errors.ErrInvalidURLScheme)
	assert.Contains(t, codes, errors.ErrMissingArgs)
	assert.NotContains(t, codes, errors.AssertionCode)

	for i := 1; i < len(codes); i++ {
		assert.True(t, strings.Compare(string(codes[i-1]), string(codes[i])) < 0)
	}
}

func TestParseBaseType(t *testing.T) {
	for _, base := range []errors.BaseType{errors.BaseError, errors.BaseTypeError, errors.BaseRangeError} {
		parsed, ok := errors.ParseBaseType(base.String())
		assert.True(t, ok)
		assert.Equal(t, base, parsed)
	}

	_, ok := errors.ParseBaseType("SyntaxError")
	assert.False(t, ok)
}

func TestDefaultFactoryAndRegister(t *testing.T) {
	require.NoError(t, errors.Register("TEST_DEFAULT_REGISTER", errors.Fixed("registered %s")))
	assert.Error(t, errors.Register("TEST_DEFAULT_REGISTER", errors.Fixed("again")))

	factory := errors.New()
	err, buildErr := factory.New(errors.BaseTypeError, "TEST_DEFAULT_REGISTER", "late")
	require.NoError(t, buildErr)
	assert.Equal(t, "TypeError [TEST_DEFAULT_REGISTER]: registered late", err.Error())

	wrapped := errors.Wrap("TEST_DEFAULT_REGISTER", err, "outer")
	assert.True(t, errors.Is(wrapped, errors.ErrTypeError))
	assert.Equal(t, errors.BaseError, wrapped.Base())
}
