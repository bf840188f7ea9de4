// Package xm is a minimal unit-testing harness: register tests with Test,
// TestF, or TestC, optionally narrow the run with SetFilter, then execute
// everything with RunTests.
//
// Tests are identified as "Suite_Name" (combinatorial tests additionally
// carry their parameter state, e.g. "Suite_Name_age[1]"). Registration
// order is execution order. The harness is single-goroutine: register at
// init time, run from one place.
package xm

import (
	"io"
	"os"

	"github.com/zyndor/xm/internal/cartesian"
	"github.com/zyndor/xm/internal/filter"
	"github.com/zyndor/xm/internal/log"
	"github.com/zyndor/xm/internal/registry"
	"github.com/zyndor/xm/internal/report"
	"github.com/zyndor/xm/internal/run"
)

// Set is one named dimension of a combinatorial test's parameter space.
type Set = cartesian.Set

// Space is the parameter space of a combinatorial test.
type Space = cartesian.Space

// NewSet builds one dimension from a name and its values.
func NewSet(name string, values ...any) Set {
	return cartesian.NewSet(name, values...)
}

var (
	reg     = registry.Default()
	output  io.Writer = os.Stdout
	filters           = filter.MatchAll()
)

// SetOutput redirects the run report. The default is os.Stdout.
func SetOutput(w io.Writer) {
	output = w
}

// SetFilter replaces the active filter wholesale. The spec is one or more
// colon-separated include patterns, optionally followed by '-' and
// colon-separated exclude patterns; patterns support '*' wildcards and must
// match the whole test identifier. An empty spec admits everything.
func SetFilter(spec string) {
	filters = filter.Parse(spec)
	log.Debug(log.CatFilter, "filter set", "spec", spec)
}

// RunTests executes every registered test admitted by the active filter, in
// registration order, and returns the number of failures (zero means total
// success — suitable as a process exit status).
func RunTests() int {
	return run.New(reg, filters, report.NewPrinter(output)).Run()
}

// Test registers a plain test. Call it at init time:
//
//	var _ = xm.Test("Math", "Add", func() {
//		xm.Eq(4, add(2, 2))
//	})
func Test(suite, name string, body func()) bool {
	reg.Register(registry.NewSimple(suite, name, body))
	return true
}

// TestF registers a fixture test. Each execution receives a fresh
// zero-value *F; if F has a SetUp method it runs before the body, and if it
// has a TearDown method it runs after — including when the body fails.
func TestF[F any](suite, name string, body func(*F)) bool {
	reg.Register(registry.NewSimple(suite, name, func() {
		fixture := new(F)
		if up, ok := any(fixture).(interface{ SetUp() }); ok {
			up.SetUp()
		}
		if down, ok := any(fixture).(interface{ TearDown() }); ok {
			defer down.TearDown()
		}
		body(fixture)
	}))
	return true
}

// TestC registers a combinatorial test, executed once per combination of
// the space's values with dimension 0 varying fastest. The body receives
// the current combination and a counter of how many executions this
// registration has seen so far. A space with any empty dimension registers
// nothing.
func TestC(suite, name string, space Space, body func(values []any, iteration uint32)) bool {
	if space.Size() == 0 {
		log.Debug(log.CatRegistry, "empty parameter space, skipping", "suite", suite, "name", name)
		return false
	}
	reg.Register(registry.NewCombinatorial(suite, name, space, body))
	return true
}
