package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/rod/lib/utils"
)

// Predicate is a condition over live page state. It must not retain
// element handles between calls; locate fresh on every poll.
type Predicate func(ctx context.Context, s *Session) (bool, error)

// WaitUntil polls pred until it holds or timeout elapses, backing off from
// Config.PollInterval. A zero timeout means Config.WaitTimeout. ErrLocate
// from pred counts as "not yet"; any other error stops the wait.
// Expiry is reported as ErrTimeout.
func (s *Session) WaitUntil(ctx context.Context, pred Predicate, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = s.cfg.WaitTimeout
	}
	if err := s.guard("wait"); err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var last error
	sleeper := utils.BackoffSleeper(s.cfg.PollInterval, 8*s.cfg.PollInterval, nil)
	err := utils.Retry(wctx, sleeper, func() (bool, error) {
		ok, err := pred(wctx, s)
		switch {
		case err == nil:
			return ok, nil
		case errors.Is(err, ErrLocate):
			last = err
			return false, nil
		default:
			return true, err
		}
	})
	if err == nil {
		return nil
	}
	if wctx.Err() != nil && ctx.Err() == nil {
		return newError(KindTimeout, "wait", fmt.Sprintf("condition not met within %s", timeout), last)
	}
	return err
}

// Present holds once at least one element matches by.
func Present(by By) Predicate {
	return func(ctx context.Context, s *Session) (bool, error) {
		els, err := s.Locate(ctx, by)
		return len(els) > 0, err
	}
}

// Count holds once exactly n elements match by.
func Count(by By, n int) Predicate {
	return func(ctx context.Context, s *Session) (bool, error) {
		els, err := s.Locate(ctx, by)
		return len(els) == n, err
	}
}

// Invisible holds once no element matching by is visible. No match at
// all counts as invisible.
func Invisible(by By) Predicate {
	return func(ctx context.Context, s *Session) (bool, error) {
		els, err := s.Locate(ctx, by)
		if err != nil {
			return false, err
		}
		for _, el := range els {
			visible, err := el.Visible(ctx)
			if err != nil {
				return false, err
			}
			if visible {
				return false, nil
			}
		}
		return true, nil
	}
}

// Navigated holds once the top-level URL differs from from and the new
// document has finished loading.
func Navigated(from string) Predicate {
	return func(ctx context.Context, s *Session) (bool, error) {
		if err := s.guard("wait"); err != nil {
			return false, err
		}
		ctx, cancel := s.bounded(ctx)
		defer cancel()
		page := s.page.Context(ctx)
		info, err := page.Info()
		if err != nil || info.URL == from {
			return false, nil
		}
		return loaded(page), nil
	}
}

// atHistoryEntry holds once the top-level document is the history entry
// with the given id and has finished loading. Unlike Navigated it also
// detects moves between entries that share a URL.
func atHistoryEntry(id int) Predicate {
	return func(ctx context.Context, s *Session) (bool, error) {
		if err := s.guard("wait"); err != nil {
			return false, err
		}
		ctx, cancel := s.bounded(ctx)
		defer cancel()
		page := s.page.Context(ctx)
		hist, err := proto.PageGetNavigationHistory{}.Call(page)
		if err != nil || hist.CurrentIndex < 0 || hist.CurrentIndex >= len(hist.Entries) {
			return false, nil
		}
		if hist.Entries[hist.CurrentIndex].ID != id {
			return false, nil
		}
		return loaded(page), nil
	}
}

func loaded(page *rod.Page) bool {
	res, err := page.Eval(`() => document.readyState`)
	if err != nil {
		return false
	}
	return res.Value.Str() == "complete"
}

// TextIs holds once the first element matching by has text want.
func TextIs(by By, want string) Predicate {
	return func(ctx context.Context, s *Session) (bool, error) {
		el, err := s.LocateOne(ctx, by)
		if err != nil {
			return false, err
		}
		got, err := el.Text(ctx)
		return got == want, err
	}
}
