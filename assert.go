package xm

import (
	"cmp"
	"math"
	"reflect"

	"github.com/zyndor/xm/internal/format"
	"github.com/zyndor/xm/internal/run"
)

// Fail aborts the current test with message. It does not return.
func Fail(message string) {
	run.Abort(message)
}

// True asserts that value holds; label stands in for the source expression
// in the failure message.
func True(value bool, label string) {
	if !value {
		run.Abort(format.Expectation(label))
	}
}

// False asserts that value does not hold.
func False(value bool, label string) {
	if value {
		run.Abort(format.Expectation("!(" + label + ")"))
	}
}

// Eq asserts a == b.
func Eq[T comparable](a, b T) {
	if a != b {
		run.Abort(format.Comparison(a, "==", b))
	}
}

// Ne asserts a != b.
func Ne[T comparable](a, b T) {
	if a == b {
		run.Abort(format.Comparison(a, "!=", b))
	}
}

// Lt asserts a < b.
func Lt[T cmp.Ordered](a, b T) {
	if !(a < b) {
		run.Abort(format.Comparison(a, "<", b))
	}
}

// Le asserts a <= b.
func Le[T cmp.Ordered](a, b T) {
	if !(a <= b) {
		run.Abort(format.Comparison(a, "<=", b))
	}
}

// Gt asserts a > b.
func Gt[T cmp.Ordered](a, b T) {
	if !(a > b) {
		run.Abort(format.Comparison(a, ">", b))
	}
}

// Ge asserts a >= b.
func Ge[T cmp.Ordered](a, b T) {
	if !(a >= b) {
		run.Abort(format.Comparison(a, ">=", b))
	}
}

// StrEq asserts string equality. Long or multiline operands get an inline
// diff appended to the failure message.
func StrEq(a, b string) {
	if a != b {
		run.Abort(format.StringComparison(a, b))
	}
}

// DeepEq asserts reflect.DeepEqual(a, b).
func DeepEq(a, b any) {
	if !reflect.DeepEqual(a, b) {
		run.Abort(format.Comparison(a, "==", b))
	}
}

// InEpsilon asserts |a - b| < eps.
func InEpsilon(a, b, eps float64) {
	if !(math.Abs(a-b) < eps) {
		run.Abort(format.Comparison(math.Abs(a-b), "<", eps))
	}
}

// Panics asserts that fn panics; label stands in for the expression under
// test. An assertion failure raised inside fn is not a satisfying panic: it
// propagates and fails the test as usual.
func Panics(fn func(), label string) {
	if !panics(fn) {
		run.Abort(format.Expectation("panic from " + label))
	}
}

func panics(fn func()) (panicked bool) {
	defer func() {
		if rec := recover(); rec != nil {
			if f, ok := rec.(*run.Failure); ok {
				panic(f)
			}
			panicked = true
		}
	}()
	fn()
	return false
}
