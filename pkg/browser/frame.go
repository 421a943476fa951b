package browser

import (
	"context"
	"log/slog"
)

// EnterFrame makes every later Locate resolve inside the document of the
// iframe el until ExitFrame. The switch is session-wide; restore the default
// context with ExitFrame before the test case ends.
func (s *Session) EnterFrame(ctx context.Context, el *Element) error {
	if err := s.guard("enter frame"); err != nil {
		return err
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	frame, err := el.el.Context(ctx).Frame()
	if err != nil {
		return el.fault("enter frame", err)
	}
	s.setScope(frame.Context(s.ctx))
	s.logger().Debug("entered frame", slog.String("frame", el.String()))
	return nil
}

// ExitFrame restores the top-level document as the location context.
func (s *Session) ExitFrame() {
	s.setScope(s.page)
}

// InFrame reports whether a frame context is active.
func (s *Session) InFrame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope != s.page
}
