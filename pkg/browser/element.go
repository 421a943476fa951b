package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
)

// Element is a located DOM node. It is valid only while the session is
// live and the node has not been removed or navigated away from.
type Element struct {
	s  *Session
	el *rod.Element
	by By
}

// Locate returns every element matching by in the current context
// (the page, or the entered frame). Zero matches is not an error; use
// LocateOne or LocateN when a count is expected. There is no implicit wait.
func (s *Session) Locate(ctx context.Context, by By) ([]*Element, error) {
	if err := s.guard("locate"); err != nil {
		return nil, err
	}
	scope := s.current()
	if scope == nil {
		return nil, newError(KindEnvironment, "locate", "no page", nil)
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	page := scope.Context(ctx)
	var els rod.Elements
	var err error
	if by.isXPath() {
		els, err = page.ElementsX(by.value)
	} else {
		els, err = page.Elements(by.value)
	}
	if err != nil {
		return nil, newError(KindLocate, "locate", by.String(), err)
	}
	return s.wrap(els, by), nil
}

// LocateOne returns the first element matching by, or ErrLocate if none does.
func (s *Session) LocateOne(ctx context.Context, by By) (*Element, error) {
	els, err := s.Locate(ctx, by)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, newError(KindLocate, "locate", by.String()+": no match", nil)
	}
	return els[0], nil
}

// LocateN returns the elements matching by and fails with ErrLocate unless
// there are exactly n of them.
func (s *Session) LocateN(ctx context.Context, by By, n int) ([]*Element, error) {
	els, err := s.Locate(ctx, by)
	if err != nil {
		return nil, err
	}
	if len(els) != n {
		return nil, newError(KindLocate, "locate", fmt.Sprintf("%s: got %d matches, want %d", by, len(els), n), nil)
	}
	return els, nil
}

func (s *Session) wrap(els rod.Elements, by By) []*Element {
	out := make([]*Element, len(els))
	for i, el := range els {
		// Detach from the per-call context so the handle outlives it.
		out[i] = &Element{s: s, el: el.Context(s.ctx), by: by}
	}
	return out
}

// Locate returns the descendants of e matching by.
func (e *Element) Locate(ctx context.Context, by By) ([]*Element, error) {
	el, cancel, err := e.op(ctx, "locate")
	if err != nil {
		return nil, err
	}
	defer cancel()

	var els rod.Elements
	if by.isXPath() {
		els, err = el.ElementsX(by.value)
	} else {
		els, err = el.Elements(by.value)
	}
	if err != nil {
		return nil, newError(KindLocate, "locate", by.String(), err)
	}
	return e.s.wrap(els, by), nil
}

// LocateOne returns the first descendant of e matching by.
func (e *Element) LocateOne(ctx context.Context, by By) (*Element, error) {
	els, err := e.Locate(ctx, by)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, newError(KindLocate, "locate", by.String()+": no match", nil)
	}
	return els[0], nil
}

func (e *Element) String() string { return e.by.String() }

func (e *Element) op(ctx context.Context, name string) (*rod.Element, context.CancelFunc, error) {
	if err := e.s.guard(name); err != nil {
		return nil, nil, err
	}
	ctx, cancel := e.s.bounded(ctx)
	return e.el.Context(ctx), cancel, nil
}

func (e *Element) fault(op string, err error) error {
	return newError(KindLocate, op, e.by.String(), err)
}

// Text returns the rendered text of the element.
func (e *Element) Text(ctx context.Context) (string, error) {
	el, cancel, err := e.op(ctx, "text")
	if err != nil {
		return "", err
	}
	defer cancel()
	text, err := el.Text()
	if err != nil {
		return "", e.fault("text", err)
	}
	return text, nil
}

// HTML returns the outer HTML of the element.
func (e *Element) HTML(ctx context.Context) (string, error) {
	el, cancel, err := e.op(ctx, "html")
	if err != nil {
		return "", err
	}
	defer cancel()
	html, err := el.HTML()
	if err != nil {
		return "", e.fault("html", err)
	}
	return html, nil
}

// Attribute returns the named attribute and whether it is present.
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	el, cancel, err := e.op(ctx, "attribute")
	if err != nil {
		return "", false, err
	}
	defer cancel()
	v, err := el.Attribute(name)
	if err != nil {
		return "", false, e.fault("attribute", err)
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// Value returns the live value property, which tracks user edits unlike
// the value attribute.
func (e *Element) Value(ctx context.Context) (string, error) {
	el, cancel, err := e.op(ctx, "value")
	if err != nil {
		return "", err
	}
	defer cancel()
	v, err := el.Property("value")
	if err != nil {
		return "", e.fault("value", err)
	}
	return v.Str(), nil
}

// Selected reports whether a checkbox or radio is checked, or an option
// is selected.
func (e *Element) Selected(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, "selected", `() => !!(this.checked || this.selected)`)
}

// Enabled reports whether the element is not disabled.
func (e *Element) Enabled(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, "enabled", `() => !this.disabled`)
}

// Attached reports whether the node is still part of its document.
func (e *Element) Attached(ctx context.Context) (bool, error) {
	return e.evalBool(ctx, "attached", `() => this.isConnected`)
}

// Visible reports whether the element is rendered and visible.
func (e *Element) Visible(ctx context.Context) (bool, error) {
	el, cancel, err := e.op(ctx, "visible")
	if err != nil {
		return false, err
	}
	defer cancel()
	ok, err := el.Visible()
	if err != nil {
		return false, e.fault("visible", err)
	}
	return ok, nil
}

func (e *Element) evalBool(ctx context.Context, op, js string) (bool, error) {
	el, cancel, err := e.op(ctx, op)
	if err != nil {
		return false, err
	}
	defer cancel()
	res, err := el.Eval(js)
	if err != nil {
		return false, e.fault(op, err)
	}
	return res.Value.Bool(), nil
}

// Click left-clicks the element. It is Perform with a single Click action,
// so a dialog opened by the click switches the session into modal mode.
func (e *Element) Click(ctx context.Context) error {
	return e.s.Perform(ctx, Click(e))
}

// Select chooses the option whose text is label in a select element.
func (e *Element) Select(ctx context.Context, label string) error {
	el, cancel, err := e.op(ctx, "select")
	if err != nil {
		return err
	}
	defer cancel()
	if err := el.Select([]string{label}, true, rod.SelectorTypeText); err != nil {
		return e.fault("select", fmt.Errorf("option %q: %w", label, err))
	}
	return nil
}
