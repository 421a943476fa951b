package browser

import (
	"context"
	"log/slog"

	"github.com/go-rod/rod/lib/proto"
)

// Dialog is an open native dialog (alert, confirm, prompt, beforeunload).
type Dialog struct {
	s *Session

	Type          string
	Message       string
	DefaultPrompt string
}

// Dialog switches into dialog handling. It waits up to Config.Timeout for a
// dialog to open and fails with ErrTimeout (wrapping ErrNoDialog) if none does.
// On a released session it fails with ErrEnvironment without waiting.
func (s *Session) Dialog(ctx context.Context) (*Dialog, error) {
	if s.isReleased() {
		return nil, newError(KindEnvironment, "dialog", "session released", nil)
	}
	var stopped <-chan struct{}
	if s.ctx != nil {
		stopped = s.ctx.Done()
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	select {
	case <-s.modalSignal():
	case <-stopped:
		return nil, newError(KindEnvironment, "dialog", "session released", nil)
	case <-ctx.Done():
		return nil, newError(KindTimeout, "dialog", "", ErrNoDialog)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil, newError(KindEnvironment, "dialog", "session released", nil)
	}
	if s.dialog == nil {
		// Closed again between the signal and the lock.
		return nil, newError(KindTimeout, "dialog", "", ErrNoDialog)
	}
	return &Dialog{
		s:             s,
		Type:          string(s.dialog.Type),
		Message:       s.dialog.Message,
		DefaultPrompt: s.dialog.DefaultPrompt,
	}, nil
}

// Accept presses OK.
func (d *Dialog) Accept(ctx context.Context) error {
	return d.handle(ctx, proto.PageHandleJavaScriptDialog{Accept: true})
}

// AcceptPrompt answers a prompt dialog with text.
func (d *Dialog) AcceptPrompt(ctx context.Context, text string) error {
	return d.handle(ctx, proto.PageHandleJavaScriptDialog{Accept: true, PromptText: text})
}

// Dismiss presses Cancel, or closes an alert.
func (d *Dialog) Dismiss(ctx context.Context) error {
	return d.handle(ctx, proto.PageHandleJavaScriptDialog{Accept: false})
}

func (d *Dialog) handle(ctx context.Context, req proto.PageHandleJavaScriptDialog) error {
	ctx, cancel := d.s.bounded(ctx)
	defer cancel()
	if err := req.Call(d.s.page.Context(ctx)); err != nil {
		return newError(KindModalBlocking, "dialog", d.Message, err)
	}
	// Don't wait for the closed event to leave modal mode.
	d.s.closeModal()
	d.s.logger().Debug("dialog handled", slog.Bool("accept", req.Accept))
	return nil
}
