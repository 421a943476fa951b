package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

type actionKind int

const (
	actMove actionKind = iota + 1
	actClick
	actContextClick
	actKeyDown
)

func (k actionKind) String() string {
	switch k {
	case actMove:
		return "move"
	case actClick:
		return "click"
	case actContextClick:
		return "context-click"
	case actKeyDown:
		return "key-down"
	}
	return "unknown"
}

// Action is one primitive of a composite gesture passed to Perform.
type Action struct {
	kind   actionKind
	target *Element
	key    input.Key
}

// MoveTo moves the pointer over el, triggering hover styles and handlers.
func MoveTo(el *Element) Action { return Action{kind: actMove, target: el} }

// Click left-clicks el.
func Click(el *Element) Action { return Action{kind: actClick, target: el} }

// ContextClick right-clicks el.
func ContextClick(el *Element) Action { return Action{kind: actContextClick, target: el} }

// KeyDown presses key on the focused element. Keys pressed in a sequence
// are released when the sequence ends.
func KeyDown(key input.Key) Action { return Action{kind: actKeyDown, key: key} }

func (a Action) String() string {
	if a.kind == actKeyDown {
		return fmt.Sprintf("%s(%d)", a.kind, a.key)
	}
	if a.target == nil {
		return a.kind.String() + "(<nil>)"
	}
	return fmt.Sprintf("%s(%s)", a.kind, a.target)
}

// dialogSettle bounds how long Perform waits after a trailing click for the
// dialog-opening event to arrive.
const dialogSettle = 50 * time.Millisecond

// settleDialog gives the event listener a chance to enter modal mode for a
// dialog opened by the last input, so Mode is accurate when Perform returns.
func (s *Session) settleDialog(opened <-chan struct{}) {
	t := time.NewTimer(dialogSettle)
	defer t.Stop()
	select {
	case <-opened:
	case <-t.C:
	}
}

func (a Action) clicks() bool {
	return a.kind == actClick || a.kind == actContextClick
}

var errSequenceAborted = errors.New("action sequence aborted by dialog")

func (a Action) validate(s *Session) error {
	switch a.kind {
	case actMove, actClick, actContextClick:
		if a.target == nil {
			return fmt.Errorf("%s: nil target", a.kind)
		}
		if a.target.s != s {
			return fmt.Errorf("%s: element belongs to another session", a.kind)
		}
	case actKeyDown:
		if a.key == 0 {
			return fmt.Errorf("%s: no key", a.kind)
		}
	default:
		return errors.New("zero action")
	}
	return nil
}

// Perform runs actions in order as one gesture. The whole sequence is
// validated before anything is dispatched, and Perform returns only after
// the last action completed, so callers never observe an intermediate state.
//
// If an action opens a native dialog, the rest of the sequence is dropped,
// the session enters ModeModalActive and Perform returns nil. Handle the
// dialog with Session.Dialog before interacting further. A sequence ending
// in a click waits up to dialogSettle for a dialog the click opened to be
// reported; dialogs opened later by page timers are only seen by Dialog.
func (s *Session) Perform(ctx context.Context, actions ...Action) error {
	for i, a := range actions {
		if err := a.validate(s); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	if len(actions) == 0 {
		return nil
	}
	if err := s.guard("perform"); err != nil {
		return err
	}

	opened := s.modalSignal()
	ctx, cancel := s.bounded(ctx)
	done := make(chan error, 1)
	go func() {
		defer cancel()
		done <- s.dispatch(ctx, opened, actions)
	}()

	select {
	case err := <-done:
		if errors.Is(err, errSequenceAborted) {
			return nil
		}
		if err == nil && actions[len(actions)-1].clicks() {
			s.settleDialog(opened)
		}
		return err
	case <-opened:
		// The input call that opened the dialog stays blocked until the
		// dialog is handled; collect its result in the background.
		go func() {
			if err := <-done; err != nil && !errors.Is(err, errSequenceAborted) {
				s.logger().Debug("action after dialog", slog.Any("err", err))
			}
		}()
		return nil
	}
}

func (s *Session) dispatch(ctx context.Context, opened <-chan struct{}, actions []Action) (err error) {
	page := s.page.Context(ctx)
	var held []input.Key
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			if rerr := page.Keyboard.Release(held[i]); rerr != nil && err == nil {
				err = newError(KindLocate, "perform", "release "+KeyDown(held[i]).String(), rerr)
			}
		}
	}()

	for _, a := range actions {
		select {
		case <-opened:
			return errSequenceAborted
		default:
		}

		switch a.kind {
		case actMove:
			err = a.target.el.Context(ctx).Hover()
		case actClick:
			err = a.target.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
		case actContextClick:
			err = a.target.el.Context(ctx).Click(proto.InputMouseButtonRight, 1)
		case actKeyDown:
			err = page.Keyboard.Press(a.key)
			if err == nil {
				held = append(held, a.key)
			}
		}
		if err != nil {
			return newError(KindLocate, "perform", a.String(), err)
		}
	}
	return nil
}
