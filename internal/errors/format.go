package errors

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

type undefined struct{}

func (undefined) String() string {
	return "undefined"
}

// Undefined stands for an argument that was passed but holds no value. It is
// distinct from nil, which renders as "null".
var Undefined any = undefined{}

// repr renders a registry key the way it appears in diagnostics.
func repr(v any) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case string:
		return val
	case ErrorCode:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case float32:
		return formatNumber(float64(val), 32)
	case float64:
		return formatNumber(val, 64)
	case undefined:
		return "undefined"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprint(v)
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			elem := rv.Index(i).Interface()
			if elem == nil || isUndefined(elem) {
				continue
			}
			parts[i] = repr(elem)
		}
		return strings.Join(parts, ",")
	case reflect.String:
		return rv.String()
	default:
		return "[object Object]"
	}
}

// typeOf names the dynamic kind of v the way a received-type diagnostic does.
func typeOf(v any) string {
	if v == nil {
		return "null"
	}
	if isUndefined(v) {
		return "undefined"
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Func:
		return "function"
	default:
		return "object"
	}
}

// Format substitutes %s, %d, %i, %f, %j and %% in format with args. Surplus
// args are appended separated by spaces; missing ones leave the verb as is.
func Format(format string, args ...any) string {
	var b strings.Builder
	next := 0

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}

		verb := format[i+1]
		if verb == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		if !strings.ContainsRune("sdifj", rune(verb)) || next >= len(args) {
			b.WriteByte(c)
			continue
		}

		b.WriteString(formatVerb(verb, args[next]))
		next++
		i++
	}

	for _, arg := range args[next:] {
		b.WriteByte(' ')
		b.WriteString(display(arg))
	}

	return b.String()
}

func formatVerb(verb byte, arg any) string {
	switch verb {
	case 'd', 'f':
		n, ok := toFloat(arg)
		if !ok {
			return "NaN"
		}
		return formatNumber(n, 64)
	case 'i':
		n, ok := toFloat(arg)
		if !ok || math.IsInf(n, 0) {
			return "NaN"
		}
		return formatNumber(math.Trunc(n), 64)
	case 'j':
		if isUndefined(arg) {
			return "undefined"
		}
		out, err := json.Marshal(arg)
		if err != nil {
			return "[Circular]"
		}
		return string(out)
	default:
		return display(arg)
	}
}

// formatNumber prints f the way numbers print in diagnostics: NaN and
// Infinity by name, exponent notation from 1e21 up and below 1e-6, plain
// decimals otherwise.
func formatNumber(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	// Go pads the exponent to two digits ("1e-07"); drop the padding.
	out := strconv.FormatFloat(f, 'e', -1, bitSize)
	mantissa, exp, _ := strings.Cut(out, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")

	return mantissa + "e" + sign + digits
}

// display is repr for message arguments, where nil means null rather than a
// missing value.
func display(v any) string {
	if v == nil {
		return "null"
	}
	return repr(v)
}

func isUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case string:
		return parseNumber(n)
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// parseNumber converts a string the way numeric coercion does: blank is 0,
// only the spelled-out Infinity names an infinity, and overflow saturates.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}

	return f, true
}

// toStrings normalises a single value or a list of values into strings.
func toStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case string:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}

	out := make([]string, rv.Len())
	for i := range out {
		out[i] = repr(rv.Index(i).Interface())
	}

	return out, true
}

// oneOf renders expected as "of <thing> a", "one of <thing> a or b", or
// "one of <thing> a, b, or c".
func oneOf(expected any, thing string) (string, error) {
	list, isList := toStrings(expected)
	if !isList {
		if expected == nil {
			return "", newAssertionError("expected is required")
		}
		return fmt.Sprintf("of %s %s", thing, repr(expected)), nil
	}

	switch n := len(list); {
	case n == 0:
		return "", newAssertionError("At least one expected value needs to be specified")
	case n == 1:
		return fmt.Sprintf("of %s %s", thing, list[0]), nil
	case n == 2:
		return fmt.Sprintf("one of %s %s or %s", thing, list[0], list[1]), nil
	default:
		return fmt.Sprintf("one of %s %s, or %s", thing, strings.Join(list[:n-1], ", "), list[n-1]), nil
	}
}
