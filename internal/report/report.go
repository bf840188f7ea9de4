// Package report emits the human-readable status lines of a test run.
//
// One line per event, with fixed-width right-aligned status tags:
//
//	[==========] Suite
//	[STARTED   ] Suite_Name
//	[        OK] Suite_Name (0.42ms)
//	[    FAILED] Suite_Name (0.42ms)
//	<failure detail>
//	[==========]
//	[----------] 2 tests run.
//	[----------] 1 tests passed.
//	[----------] 1 tests ignored.
//	[        OK] Final result.
//
// OK/FAILED lines and the final marker are colorized green/red when the sink
// supports it; everything else is plain text.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Status tags, all ten characters wide.
const (
	tagFailed  = "    FAILED"
	tagOK      = "        OK"
	tagStarted = "STARTED   "
	tagSuite   = "=========="
	tagTally   = "----------"
)

// Printer writes status lines to a single sink. It holds a lipgloss renderer
// bound to that sink, so color degrades automatically on non-TTY writers.
type Printer struct {
	out    io.Writer
	passed lipgloss.Style
	failed lipgloss.Style
}

// NewPrinter creates a Printer for out. The ANSI green/red pair matches the
// original reporting convention for pass/fail.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:    out,
		passed: r.NewStyle().Foreground(lipgloss.Color("2")),
		failed: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// NewPlainPrinter creates a Printer with color forced off, regardless of
// what the sink supports.
func NewPlainPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.Ascii)
	return &Printer{
		out:    out,
		passed: r.NewStyle().Foreground(lipgloss.Color("2")),
		failed: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// SuiteStarted marks entry into a suite.
func (p *Printer) SuiteStarted(suite string) {
	fmt.Fprintf(p.out, "[%s] %s\n", tagSuite, suite)
}

// SuiteEnd marks the end of all suites.
func (p *Printer) SuiteEnd() {
	fmt.Fprintf(p.out, "[%s]\n", tagSuite)
}

// TestStarted announces a test about to run.
func (p *Printer) TestStarted(id string) {
	fmt.Fprintf(p.out, "[%s] %s\n", tagStarted, id)
}

// TestResult reports one finished test with its wall-clock duration.
func (p *Printer) TestResult(id string, passed bool, elapsed time.Duration) {
	tag, style := tagFailed, p.failed
	if passed {
		tag, style = tagOK, p.passed
	}
	line := fmt.Sprintf("[%s] %s (%s)", tag, id, formatElapsed(elapsed))
	fmt.Fprintln(p.out, style.Render(line))
}

// FailureDetail prints the assertion/failure message below a FAILED line,
// unformatted.
func (p *Printer) FailureDetail(message string) {
	fmt.Fprintln(p.out, message)
}

// Tally prints the run counters. The ignored line only appears when tests
// were actually filtered out.
func (p *Printer) Tally(run, passed, ignored int) {
	fmt.Fprintf(p.out, "[%s] %d tests run.\n", tagTally, run)
	fmt.Fprintf(p.out, "[%s] %d tests passed.\n", tagTally, passed)
	if ignored > 0 {
		fmt.Fprintf(p.out, "[%s] %d tests ignored.\n", tagTally, ignored)
	}
}

// Final prints the overall pass/fail marker.
func (p *Printer) Final(passed bool) {
	tag, style := tagFailed, p.failed
	if passed {
		tag, style = tagOK, p.passed
	}
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf("[%s] Final result.", tag)))
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
