package errors

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Template is the stored representation used to render a message for a code.
// It is either a Fixed string or a Computed function.
type Template interface {
	render(args []any) (string, error)
}

// Fixed is a literal message. Placeholders are substituted by Format when
// args are supplied; without args the text is returned verbatim.
type Fixed string

func (t Fixed) render(args []any) (string, error) {
	if len(args) == 0 {
		return string(t), nil
	}
	return Format(string(t), args...), nil
}

// Computed builds a message from positional args. Misuse is reported as an
// *AssertionError.
type Computed func(args ...any) (string, error)

func (t Computed) render(args []any) (string, error) {
	return t(args...)
}

// Registry maps error codes to message templates. It is read-mostly: codes
// are registered during startup and looked up from then on.
type Registry struct {
	mu        sync.RWMutex
	templates map[ErrorCode]Template
	log       zerolog.Logger
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[ErrorCode]Template),
		log:       zerolog.Nop(),
	}
}

// SetLogger attaches a logger used for registration and lookup diagnostics
func (r *Registry) SetLogger(log zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log = log
}

// Register stores tmpl under code. Registering a code twice is rejected.
func (r *Registry) Register(code ErrorCode, tmpl Template) error {
	if code == "" {
		return newAssertionError("Error code must not be empty")
	}
	if code == AssertionCode {
		return newAssertionError("Error code %s is reserved", code)
	}
	if tmpl == nil {
		return newAssertionError("Template for %s must not be nil", code)
	}
	if c, ok := tmpl.(Computed); ok && c == nil {
		return newAssertionError("Template for %s must not be nil", code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[code]; exists {
		return newAssertionError("Error code %s is already registered", code)
	}
	r.templates[code] = tmpl
	r.log.Debug().Str("code", string(code)).Msg("Registered error code")

	return nil
}

// RegisterAll registers every template and reports all failures together
func (r *Registry) RegisterAll(templates map[ErrorCode]Template) error {
	codes := make([]ErrorCode, 0, len(templates))
	for code := range templates {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	var result *multierror.Error
	for _, code := range codes {
		if err := r.Register(code, templates[code]); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Has reports whether code is registered
func (r *Registry) Has(code ErrorCode) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[code]
	return ok
}

// Codes returns all registered codes in sorted order
func (r *Registry) Codes() []ErrorCode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]ErrorCode, 0, len(r.templates))
	for code := range r.templates {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	return codes
}

func (r *Registry) lookup(key any) (ErrorCode, Template, error) {
	r.mu.RLock()
	log := r.log
	var (
		code ErrorCode
		tmpl Template
		ok   bool
	)
	switch k := key.(type) {
	case ErrorCode:
		code = k
	case string:
		code = ErrorCode(k)
	}
	if code != "" {
		tmpl, ok = r.templates[code]
	}
	r.mu.RUnlock()

	if !ok {
		log.Warn().Str("key", repr(key)).Msg("Invalid error message key")
		return "", nil, invalidKey(key)
	}

	return code, tmpl, nil
}

// Message renders the template registered under key with args
func (r *Registry) Message(key any, args ...any) (string, error) {
	_, tmpl, err := r.lookup(key)
	if err != nil {
		return "", err
	}

	return tmpl.render(args)
}

// New builds an error of the given base from the template under key
func (r *Registry) New(base BaseType, key any, args ...any) (Error, error) {
	return r.Wrap(nil, base, key, args...)
}

// Wrap is New with cause reachable through Unwrap
func (r *Registry) Wrap(cause error, base BaseType, key any, args ...any) (Error, error) {
	code, tmpl, err := r.lookup(key)
	if err != nil {
		return nil, err
	}

	msg, err := tmpl.render(args)
	if err != nil {
		return nil, err
	}

	return newCodedError(base, code, msg, cause), nil
}

// NewCatalogRegistry returns a registry holding the built-in catalog
func NewCatalogRegistry() *Registry {
	r := NewRegistry()
	if err := r.RegisterAll(catalog()); err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = NewCatalogRegistry()

// Default returns the process-wide registry holding the built-in catalog
func Default() *Registry {
	return defaultRegistry
}

// New returns a Factory backed by the default registry
func New() Factory {
	return defaultRegistry
}

// Register adds a template to the default registry
func Register(code ErrorCode, tmpl Template) error {
	return defaultRegistry.Register(code, tmpl)
}

// Message renders a message from the default registry
func Message(key any, args ...any) (string, error) {
	return defaultRegistry.Message(key, args...)
}

func must(e Error, err error) Error {
	if err != nil {
		panic(err)
	}
	return e
}

// NewError builds a generic error from the default registry. It panics with
// an *AssertionError when key is not registered or args are invalid.
func NewError(key any, args ...any) Error {
	return must(defaultRegistry.New(BaseError, key, args...))
}

// NewTypeError is NewError with BaseTypeError
func NewTypeError(key any, args ...any) Error {
	return must(defaultRegistry.New(BaseTypeError, key, args...))
}

// NewRangeError is NewError with BaseRangeError
func NewRangeError(key any, args ...any) Error {
	return must(defaultRegistry.New(BaseRangeError, key, args...))
}

// Wrap builds a generic error from the default registry around cause
func Wrap(code ErrorCode, cause error, args ...any) Error {
	return must(defaultRegistry.Wrap(cause, BaseError, code, args...))
}
