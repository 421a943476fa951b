package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thesyncim/theinternet/pkg/browser"
)

// Outcome is the verdict of one scenario run.
type Outcome int

const (
	// Pass means every expectation held.
	Pass Outcome = iota
	// AssertionFailed means an observed value differed from the expected literal.
	AssertionFailed
	// Fault means the environment, page or driver misbehaved.
	Fault
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "PASS"
	case AssertionFailed:
		return "FAIL"
	case Fault:
		return "FAULT"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Classify maps a scenario error to its Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Pass
	case IsAssertionFailure(err):
		return AssertionFailed
	default:
		return Fault
	}
}

// Result records one scenario run.
type Result struct {
	Name      string
	SessionID string
	Outcome   Outcome
	Err       error
	Duration  time.Duration
}

// AcquireFunc starts a browser session.
type AcquireFunc func(ctx context.Context, cfg browser.Config) (*browser.Session, error)

// Runner runs scenarios, each in a session of its own that is released
// whatever the scenario's outcome.
type Runner struct {
	Config  browser.Config
	Acquire AcquireFunc // defaults to browser.Acquire
}

// NewRunner creates a runner with the given browser configuration.
func NewRunner(cfg browser.Config) *Runner {
	return &Runner{Config: cfg, Acquire: browser.Acquire}
}

// Run executes sc. Errors never escape; they are classified into the Result.
func (r *Runner) Run(ctx context.Context, sc Scenario) (res Result) {
	start := time.Now()
	res.Name = sc.Name
	log := r.logger().With(slog.String("scenario", sc.Name))
	defer func() {
		res.Duration = time.Since(start)
		attrs := []any{slog.String("outcome", res.Outcome.String()), slog.Duration("took", res.Duration)}
		if res.Err != nil {
			attrs = append(attrs, slog.Any("err", res.Err))
			log.Warn("scenario finished", attrs...)
			return
		}
		log.Info("scenario finished", attrs...)
	}()

	acquire := r.Acquire
	if acquire == nil {
		acquire = browser.Acquire
	}
	s, err := acquire(ctx, r.Config)
	if err != nil {
		res.Outcome, res.Err = Fault, err
		return res
	}
	defer s.Release()
	res.SessionID = s.ID()

	err = runBody(ctx, s, sc)
	if s.InFrame() {
		log.Warn("scenario left a frame context active")
	}
	res.Outcome, res.Err = Classify(err), err
	return res
}

// runBody turns a panic in the scenario into a fault so teardown still runs
// and the remaining scenarios are unaffected.
func runBody(ctx context.Context, s *browser.Session, sc Scenario) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario %s panicked: %v", sc.Name, p)
		}
	}()
	return sc.Run(ctx, s)
}

// RunAll runs scenarios in order. Once ctx is done the rest are skipped.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			break
		}
		results = append(results, r.Run(ctx, sc))
	}
	return results
}

func (r *Runner) logger() *slog.Logger {
	if r.Config.Logger != nil {
		return r.Config.Logger
	}
	return slog.Default()
}

// Summary counts results by outcome.
type Summary struct {
	Passed, Failed, Faulted int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var sum Summary
	for _, res := range results {
		switch res.Outcome {
		case Pass:
			sum.Passed++
		case AssertionFailed:
			sum.Failed++
		default:
			sum.Faulted++
		}
	}
	return sum
}

// OK reports whether every result passed.
func (s Summary) OK() bool { return s.Failed == 0 && s.Faulted == 0 }
