// Package run executes the registered tests sequentially and reports on
// them. One Runner performs exactly one pass over the registry; re-running
// means constructing a new Runner (the registry re-walks from its head).
package run

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zyndor/xm/internal/filter"
	"github.com/zyndor/xm/internal/log"
	"github.com/zyndor/xm/internal/registry"
	"github.com/zyndor/xm/internal/report"
)

// Recorder persists per-test and per-run outcomes. Implementations must
// tolerate being called from exactly one goroutine. Errors are logged and
// otherwise ignored: persistence must never fail a run.
type Recorder interface {
	BeginRun() error
	RecordTest(id, suite string, passed bool, elapsed time.Duration, message string) error
	EndRun(run, passed, ignored int) error
}

// Option customizes a Runner.
type Option func(*Runner)

// WithRecorder attaches a run-history recorder.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithTracer attaches a tracer; each executed test becomes one span.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// Runner walks the registry once, admitting tests through the filter set,
// timing and executing each admitted test, and tallying the results.
type Runner struct {
	registry *registry.Registry
	filters  filter.Set
	printer  *report.Printer
	recorder Recorder
	tracer   trace.Tracer
}

// New creates a Runner over reg, admitting through filters and reporting
// through printer.
func New(reg *registry.Registry, filters filter.Set, printer *report.Printer, opts ...Option) *Runner {
	r := &Runner{
		registry: reg,
		filters:  filters,
		printer:  printer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one complete pass and returns the number of failed tests,
// suitable as a process exit status (zero means total success).
func (r *Runner) Run() int {
	var (
		run, passed, ignored int
		lastSuite            string
		anyAdmitted          bool
		id                   strings.Builder
	)

	if r.recorder != nil {
		if err := r.recorder.BeginRun(); err != nil {
			log.ErrorErr(log.CatHistory, "begin run", err)
		}
	}

	for node := r.registry.Head(); node != nil; node = node.NextLogical() {
		id.Reset()
		node.Describe(&id)
		ident := id.String()

		if !r.filters.IsAllowed(ident) {
			ignored++
			log.Debug(log.CatRun, "ignored", "id", ident)
			continue
		}

		// Suite markers follow admitted tests only: a suite whose every
		// member is filtered out is never announced.
		if suite := node.Suite(); !anyAdmitted || suite != lastSuite {
			r.printer.SuiteStarted(suite)
			lastSuite = suite
			anyAdmitted = true
		}

		r.printer.TestStarted(ident)
		start := time.Now()
		message, ok := r.execute(node, ident)
		elapsed := time.Since(start)

		r.printer.TestResult(ident, ok, elapsed)
		if !ok {
			r.printer.FailureDetail(message)
		}

		run++
		if ok {
			passed++
		}
		log.Debug(log.CatRun, "finished", "id", ident, "passed", ok, "elapsed", elapsed)

		if r.recorder != nil {
			if err := r.recorder.RecordTest(ident, node.Suite(), ok, elapsed, message); err != nil {
				log.ErrorErr(log.CatHistory, "record test", err, "id", ident)
			}
		}
	}

	r.printer.SuiteEnd()
	r.printer.Tally(run, passed, ignored)
	r.printer.Final(passed == run)

	if r.recorder != nil {
		if err := r.recorder.EndRun(run, passed, ignored); err != nil {
			log.ErrorErr(log.CatHistory, "end run", err)
		}
	}

	return run - passed
}

// execute runs one test body inside the failure boundary. A *Failure panic
// yields its message; any other panic yields a generic one. Nothing escapes.
func (r *Runner) execute(node registry.Node, ident string) (message string, ok bool) {
	var span trace.Span
	if r.tracer != nil {
		_, span = r.tracer.Start(context.Background(), ident,
			trace.WithAttributes(attribute.String("xm.suite", node.Suite())))
		defer func() {
			if ok {
				span.SetStatus(codes.Ok, "")
			} else {
				span.SetStatus(codes.Error, message)
			}
			span.End()
		}()
	}

	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			if f, isFailure := rec.(*Failure); isFailure {
				message = f.Message
			} else {
				message = fmt.Sprintf("unexpected panic: %v", rec)
			}
		}
	}()

	node.Execute()
	return "", true
}
