package run

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zyndor/xm/internal/cartesian"
	"github.com/zyndor/xm/internal/filter"
	"github.com/zyndor/xm/internal/registry"
	"github.com/zyndor/xm/internal/report"
)

func newRunner(reg *registry.Registry, spec string, buf *bytes.Buffer, opts ...Option) *Runner {
	return New(reg, filter.Parse(spec), report.NewPrinter(buf), opts...)
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

// The end-to-end scenario: A_X passes, A_Y fails with "boom", B_Z passes,
// filter "A*".
func TestRunner_FilteredScenario(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.NewSimple("A", "X", func() {}))
	reg.Register(registry.NewSimple("A", "Y", func() { Abort("boom") }))
	reg.Register(registry.NewSimple("B", "Z", func() {}))

	var buf bytes.Buffer
	failed := newRunner(reg, "A*", &buf).Run()
	require.Equal(t, 1, failed)

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "[==========] A\n"), "suite marker for A exactly once")
	require.NotContains(t, out, "B_Z")
	require.NotContains(t, out, "[==========] B")
	require.Contains(t, out, "[        OK] A_X")
	require.Contains(t, out, "[    FAILED] A_Y")
	require.Contains(t, out, "\nboom\n")
	require.Contains(t, out, "[----------] 2 tests run.")
	require.Contains(t, out, "[----------] 1 tests passed.")
	require.Contains(t, out, "[----------] 1 tests ignored.")
	require.Contains(t, out, "[    FAILED] Final result.")
}

func TestRunner_AllPass(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.NewSimple("A", "X", func() {}))
	reg.Register(registry.NewSimple("A", "Y", func() {}))

	var buf bytes.Buffer
	require.Zero(t, newRunner(reg, "", &buf).Run())
	require.Contains(t, buf.String(), "[----------] 2 tests run.")
	require.Contains(t, buf.String(), "[----------] 2 tests passed.")
	require.NotContains(t, buf.String(), "ignored")
	require.Contains(t, buf.String(), "[        OK] Final result.")
}

func TestRunner_EmptyRegistry(t *testing.T) {
	var buf bytes.Buffer
	require.Zero(t, newRunner(registry.New(), "", &buf).Run())

	require.Equal(t, []string{
		"[==========]",
		"[----------] 0 tests run.",
		"[----------] 0 tests passed.",
		"[        OK] Final result.",
	}, lines(&buf))
}

func TestRunner_SuiteMarkerPerAdmittedTransition(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.NewSimple("A", "One", func() {}))
	reg.Register(registry.NewSimple("A", "Two", func() {}))
	reg.Register(registry.NewSimple("B", "One", func() {}))
	reg.Register(registry.NewSimple("A", "Three", func() {}))

	var buf bytes.Buffer
	newRunner(reg, "", &buf).Run()

	out := buf.String()
	// A, then B, then A again: three markers (interleaving reprints).
	require.Equal(t, 2, strings.Count(out, "[==========] A\n"))
	require.Equal(t, 1, strings.Count(out, "[==========] B\n"))
}

// A suite interrupted only by filtered-out tests of another suite does not
// reprint its marker.
func TestRunner_NoMarkerAcrossIgnoredInterruption(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.NewSimple("A", "One", func() {}))
	reg.Register(registry.NewSimple("B", "Skipped", func() {}))
	reg.Register(registry.NewSimple("A", "Two", func() {}))

	var buf bytes.Buffer
	newRunner(reg, "A*", &buf).Run()

	require.Equal(t, 1, strings.Count(buf.String(), "[==========] A\n"))
}

func TestRunner_UnclassifiedPanicIsContained(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.NewSimple("A", "Panics", func() { panic("kaboom") }))
	reg.Register(registry.NewSimple("A", "StillRuns", func() {}))

	var buf bytes.Buffer
	failed := newRunner(reg, "", &buf).Run()
	require.Equal(t, 1, failed)

	out := buf.String()
	require.Contains(t, out, "unexpected panic: kaboom")
	require.Contains(t, out, "[        OK] A_StillRuns", "the run continues past a panicking test")
}

func TestRunner_CombinatorialExpansionCountsEachCombination(t *testing.T) {
	reg := registry.New()
	executed := 0
	reg.Register(registry.NewCombinatorial("C", "Combo", cartesian.Space{
		cartesian.NewSet("a", 0, 1),
		cartesian.NewSet("b", 0, 1, 2),
	}, func([]any, uint32) { executed++ }))

	var buf bytes.Buffer
	require.Zero(t, newRunner(reg, "", &buf).Run())
	require.Equal(t, 6, executed)
	require.Contains(t, buf.String(), "[----------] 6 tests run.")
	require.Contains(t, buf.String(), "C_Combo_a[1]_b[2]")
}

// Combinations are individually filterable; filtered-out ones count as
// ignored and the tally identity run+ignored == total logical tests holds.
func TestRunner_CombinatorialFiltering(t *testing.T) {
	reg := registry.New()
	executed := 0
	reg.Register(registry.NewCombinatorial("C", "Combo", cartesian.Space{
		cartesian.NewSet("k", 0, 1, 2),
	}, func([]any, uint32) { executed++ }))

	var buf bytes.Buffer
	newRunner(reg, "*k[1]*", &buf).Run()

	require.Equal(t, 1, executed)
	require.Contains(t, buf.String(), "[----------] 1 tests run.")
	require.Contains(t, buf.String(), "[----------] 2 tests ignored.")
}

type fakeRecorder struct {
	began   bool
	results []string
	ended   [3]int
}

func (f *fakeRecorder) BeginRun() error { f.began = true; return nil }
func (f *fakeRecorder) RecordTest(id, suite string, passed bool, elapsed time.Duration, message string) error {
	f.results = append(f.results, id)
	return nil
}
func (f *fakeRecorder) EndRun(run, passed, ignored int) error {
	f.ended = [3]int{run, passed, ignored}
	return nil
}

func TestRunner_RecorderSeesAdmittedTestsOnly(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.NewSimple("A", "X", func() {}))
	reg.Register(registry.NewSimple("B", "Y", func() { Abort("nope") }))

	rec := &fakeRecorder{}
	var buf bytes.Buffer
	newRunner(reg, "A*", &buf, WithRecorder(rec)).Run()

	require.True(t, rec.began)
	require.Equal(t, []string{"A_X"}, rec.results)
	require.Equal(t, [3]int{1, 1, 1}, rec.ended)
}

// Two consecutive runs over the same registry see identical logical tests.
func TestRunner_Reentrant(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.NewCombinatorial("C", "Combo", cartesian.Space{
		cartesian.NewSet("k", 0, 1),
	}, func([]any, uint32) {}))

	var first, second bytes.Buffer
	require.Zero(t, newRunner(reg, "", &first).Run())
	require.Zero(t, newRunner(reg, "", &second).Run())
	require.Equal(t, 2, strings.Count(second.String(), "[STARTED   ]"))
}

func TestAbort_CarriesMessage(t *testing.T) {
	require.PanicsWithError(t, "boom", func() { Abort("boom") })
}
