package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// statusGrace is how long Navigate waits for the document response event
// after the load event has fired.
const statusGrace = 2 * time.Second

// Navigate loads address and blocks until the load event. Relative
// addresses resolve against Config.BaseURL. A network failure or a final
// document status outside 2xx is an ErrNavigation. Navigating leaves any
// entered frame.
func (s *Session) Navigate(ctx context.Context, address string) error {
	if err := s.guard("navigate"); err != nil {
		return err
	}
	target, err := s.cfg.Resolve(address)
	if err != nil {
		return newError(KindNavigation, "navigate", address, err)
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()
	page := s.page.Context(ctx)

	status := watchDocumentStatus(page)
	if err := page.Navigate(target); err != nil {
		status()
		return newError(KindNavigation, "navigate", target, err)
	}
	if err := page.WaitLoad(); err != nil {
		status()
		return newError(KindNavigation, "navigate", target, fmt.Errorf("wait load: %w", err))
	}
	s.setScope(s.page)

	code := status()
	s.logger().Debug("navigated", slog.String("url", target), slog.Int("status", code))
	if code != 0 && (code < 200 || code > 299) {
		return newError(KindNavigation, "navigate", fmt.Sprintf("%s returned status %d", target, code), nil)
	}
	return nil
}

// watchDocumentStatus records the HTTP status of the next top-level
// document response. The returned func stops watching and reports the
// status, or 0 if none was seen.
func watchDocumentStatus(page *rod.Page) func() int {
	p, cancel := page.WithCancel()
	var status int
	done := make(chan struct{})
	wait := p.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument || e.FrameID != page.FrameID {
			return false
		}
		status = e.Response.Status
		return true
	})
	go func() {
		wait()
		close(done)
	}()
	return func() int {
		select {
		case <-done:
		case <-time.After(statusGrace):
			cancel()
			<-done
		}
		cancel()
		return status
	}
}

// Back goes one step back in history and blocks until the previous
// document has finished loading. Completion is tracked by history entry,
// so going back to an entry with the same URL is detected too. With no
// previous entry Back fails with ErrNavigation.
func (s *Session) Back(ctx context.Context) error {
	if err := s.guard("back"); err != nil {
		return err
	}

	bctx, cancel := s.bounded(ctx)
	page := s.page.Context(bctx)
	hist, err := proto.PageGetNavigationHistory{}.Call(page)
	if err != nil {
		cancel()
		return newError(KindNavigation, "back", "read history", err)
	}
	if hist.CurrentIndex < 1 || hist.CurrentIndex >= len(hist.Entries) {
		cancel()
		return newError(KindNavigation, "back", "no previous page", nil)
	}
	before := hist.Entries[hist.CurrentIndex].URL
	prev := hist.Entries[hist.CurrentIndex-1]
	err = page.NavigateBack()
	cancel()
	if err != nil {
		return newError(KindNavigation, "back", before, err)
	}
	if err := s.WaitUntil(ctx, atHistoryEntry(prev.ID), s.cfg.Timeout); err != nil {
		return newError(KindNavigation, "back", "previous page did not load", err)
	}
	s.setScope(s.page)
	s.logger().Debug("navigated back", slog.String("from", before), slog.String("url", prev.URL))
	return nil
}

// CurrentURL returns the URL of the top-level document.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	if err := s.guard("current url"); err != nil {
		return "", err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", newError(KindNavigation, "current url", "", err)
	}
	return info.URL, nil
}

// Title returns the title of the top-level document.
func (s *Session) Title(ctx context.Context) (string, error) {
	if err := s.guard("title"); err != nil {
		return "", err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", newError(KindNavigation, "title", "", err)
	}
	return info.Title, nil
}
