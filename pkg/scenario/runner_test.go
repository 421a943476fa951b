package scenario

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/theinternet/pkg/browser"
)

// fakeAcquire hands out detached sessions so the runner can be tested
// without a browser.
type fakeAcquire struct {
	calls int
	err   error
}

func (f *fakeAcquire) acquire(context.Context, browser.Config) (*browser.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &browser.Session{}, nil
}

func newTestRunner(f *fakeAcquire) *Runner {
	return &Runner{Config: browser.DefaultConfig(), Acquire: f.acquire}
}

func TestRunner_Outcomes(t *testing.T) {
	locateErr := &browser.Error{Kind: browser.KindLocate, Op: "locate", Msg: "#hot-spot"}

	tests := []struct {
		name string
		run  func(context.Context, *browser.Session) error
		want Outcome
	}{
		{"pass", func(context.Context, *browser.Session) error { return nil }, Pass},
		{"assertion", func(context.Context, *browser.Session) error {
			return expectEqual("alert text", "You selected a context menu", "nope")
		}, AssertionFailed},
		{"driver fault", func(context.Context, *browser.Session) error { return locateErr }, Fault},
		{"wrapped fault", func(context.Context, *browser.Session) error {
			return fmt.Errorf("step 2: %w", locateErr)
		}, Fault},
		{"panic", func(context.Context, *browser.Session) error { panic("index out of range") }, Fault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeAcquire{}
			var got *browser.Session
			run := func(ctx context.Context, s *browser.Session) error {
				got = s
				return tt.run(ctx, s)
			}
			res := newTestRunner(f).Run(context.Background(), Scenario{Name: tt.name, Run: run})

			require.NotNil(t, got, "scenario body must run")
			_, err := got.Locate(context.Background(), browser.ByCSS("body"))
			require.ErrorIs(t, err, browser.ErrEnvironment)
			assert.Contains(t, err.Error(), "session released", "session must be released after %s", tt.name)

			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, tt.name, res.Name)
			assert.Equal(t, 1, f.calls, "one session per scenario")
			if tt.want == Pass {
				assert.NoError(t, res.Err)
			} else {
				assert.Error(t, res.Err)
			}
		})
	}
}

func TestRunner_AcquireFailureIsFault(t *testing.T) {
	envErr := &browser.Error{Kind: browser.KindEnvironment, Op: "acquire", Msg: "no compatible browser found"}
	f := &fakeAcquire{err: envErr}
	ran := false

	res := newTestRunner(f).Run(context.Background(), Scenario{
		Name: "Checkboxes",
		Run: func(context.Context, *browser.Session) error {
			ran = true
			return nil
		},
	})

	assert.False(t, ran, "scenario must not run without a session")
	assert.Equal(t, Fault, res.Outcome)
	assert.ErrorIs(t, res.Err, browser.ErrEnvironment)
}

func TestRunner_FreshSessionPerScenario(t *testing.T) {
	f := &fakeAcquire{}
	seen := map[*browser.Session]bool{}
	sc := Scenario{Name: "s", Run: func(_ context.Context, s *browser.Session) error {
		if seen[s] {
			return errors.New("session reused")
		}
		seen[s] = true
		return nil
	}}

	results := newTestRunner(f).RunAll(context.Background(), []Scenario{sc, sc, sc})

	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, Pass, res.Outcome)
	}
	assert.Equal(t, 3, f.calls)
}

func TestRunner_RunAllStopsOnCancel(t *testing.T) {
	f := &fakeAcquire{}
	ctx, cancel := context.WithCancel(context.Background())
	first := Scenario{Name: "first", Run: func(context.Context, *browser.Session) error {
		cancel()
		return nil
	}}
	second := Scenario{Name: "second", Run: func(context.Context, *browser.Session) error { return nil }}

	results := newTestRunner(f).RunAll(ctx, []Scenario{first, second})

	require.Len(t, results, 1)
	assert.Equal(t, "first", results[0].Name)
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]Result{
		{Outcome: Pass}, {Outcome: Pass}, {Outcome: AssertionFailed}, {Outcome: Fault},
	})
	assert.Equal(t, Summary{Passed: 2, Failed: 1, Faulted: 1}, sum)
	assert.False(t, sum.OK())
	assert.True(t, Summarize([]Result{{Outcome: Pass}}).OK())
	assert.True(t, Summarize(nil).OK())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "PASS", Pass.String())
	assert.Equal(t, "FAIL", AssertionFailed.String())
	assert.Equal(t, "FAULT", Fault.String())
}
