// Package format renders values and builds the human-readable messages
// attached to assertion failures.
package format

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffThreshold is the string length past which an equality failure gets a
// diff appended; shorter strings read fine side by side.
const diffThreshold = 40

// Render gives a human-readable rendering of a single value:
// strings quoted, numerics as literals, booleans spelled out, nils as
// <nil>, functions and non-nil pointers by address, everything else via
// the Go-syntax representation.
func Render(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(x)
	case []byte:
		return strconv.Quote(string(x))
	case bool:
		return strconv.FormatBool(x)
	case error:
		return strconv.Quote(x.Error())
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return fmt.Sprintf("%v", x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%p", v)
	case reflect.Ptr:
		if rv.IsNil() {
			return "<nil>"
		}
		return fmt.Sprintf("%p", v)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// Comparison builds the failure message for a binary comparison:
// "Expected: <a> <op> <b>".
func Comparison(a any, op string, b any) string {
	var sb strings.Builder
	sb.WriteString("Expected: ")
	sb.WriteString(Render(a))
	sb.WriteByte(' ')
	sb.WriteString(op)
	sb.WriteByte(' ')
	sb.WriteString(Render(b))
	return sb.String()
}

// Expectation builds the failure message for a bare expectation, where the
// caller-supplied label stands in for the source expression.
func Expectation(label string) string {
	return "Expected: " + label
}

// StringComparison is Comparison specialized to strings: long or multiline
// operands additionally get a compact word-level diff so the divergence is
// findable without eyeballing the quoted values.
func StringComparison(a, b string) string {
	msg := Comparison(a, "==", b)
	if len(a) > diffThreshold || len(b) > diffThreshold ||
		strings.ContainsRune(a, '\n') || strings.ContainsRune(b, '\n') {
		msg += "\ndiff: " + stringDiff(a, b)
	}
	return msg
}

// stringDiff renders an inline diff with [-removed-] and [+added+] markers.
// Plain text rather than ANSI: failure detail is printed unformatted.
func stringDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("[+")
			sb.WriteString(d.Text)
			sb.WriteString("+]")
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
