// Package scenario holds the catalogue of browser checks against the
// "the-internet" demo site and the runner that gives every check its own
// browser session.
package scenario

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-rod/rod/lib/input"

	"github.com/thesyncim/theinternet/pkg/browser"
)

// Scenario is one independent test case: a linear sequence of driver
// calls that starts by navigating to Path.
type Scenario struct {
	Name string
	Path string
	Run  func(ctx context.Context, s *browser.Session) error
}

// All returns the full catalogue in a stable order.
func All() []Scenario {
	return []Scenario{
		{Name: "AddRemoveElements", Path: pathAddRemove, Run: AddRemoveElements},
		{Name: "Checkboxes", Path: pathCheckboxes, Run: Checkboxes},
		{Name: "Dropdown", Path: pathDropdown, Run: Dropdown},
		{Name: "Inputs", Path: pathInputs, Run: Inputs},
		{Name: "SortableDataTables", Path: pathTables, Run: SortableDataTables},
		{Name: "Hovers", Path: pathHovers, Run: Hovers},
		{Name: "ContextMenu", Path: pathContextMenu, Run: ContextMenu},
		{Name: "DynamicControlsRemove", Path: pathDynamicControls, Run: DynamicControlsRemove},
		{Name: "DynamicControlsEnable", Path: pathDynamicControls, Run: DynamicControlsEnable},
		{Name: "IFrame", Path: pathIFrame, Run: IFrame},
	}
}

// Select returns the scenarios whose name matches pattern.
func Select(pattern string) ([]Scenario, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario pattern: %w", err)
	}
	var out []Scenario
	for _, sc := range All() {
		if re.MatchString(sc.Name) {
			out = append(out, sc)
		}
	}
	return out, nil
}

const (
	pathAddRemove       = "/add_remove_elements/"
	pathCheckboxes      = "/checkboxes"
	pathDropdown        = "/dropdown"
	pathInputs          = "/inputs"
	pathTables          = "/tables"
	pathHovers          = "/hovers"
	pathContextMenu     = "/context_menu"
	pathDynamicControls = "/dynamic_controls"
	pathIFrame          = "/iframe"
)

var (
	addButton     = browser.ByAttr("button", "onclick", "addElement()")
	deleteButtons = browser.ByAttr("button", "onclick", "deleteElement()")
	checkboxes    = browser.ByCSS("input[type='checkbox']")
	numberInput   = browser.ByCSS("input[type='number']")
	figures       = browser.ByCSS("div.figure")
	loading       = browser.ByID("loading")
	message       = browser.ByID("message")
)

// AddRemoveElements adds two elements, removes the second and checks that
// exactly that one is gone.
func AddRemoveElements(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathAddRemove); err != nil {
		return err
	}
	add, err := s.LocateOne(ctx, addButton)
	if err != nil {
		return err
	}

	for n := 1; n <= 2; n++ {
		if err := add.Click(ctx); err != nil {
			return err
		}
		dels, err := s.Locate(ctx, deleteButtons)
		if err != nil {
			return err
		}
		if err := expectEqual(fmt.Sprintf("delete buttons after %d adds", n), n, len(dels)); err != nil {
			return err
		}
	}

	dels, err := s.LocateN(ctx, deleteButtons, 2)
	if err != nil {
		return err
	}
	kept, removed := dels[0], dels[1]
	if err := removed.Click(ctx); err != nil {
		return err
	}

	// The old collection is stale now.
	dels, err = s.Locate(ctx, deleteButtons)
	if err != nil {
		return err
	}
	if err := expectEqual("delete buttons after removal", 1, len(dels)); err != nil {
		return err
	}
	attached, err := removed.Attached(ctx)
	if err != nil {
		return err
	}
	if err := expectEqual("clicked button still attached", false, attached); err != nil {
		return err
	}
	attached, err = kept.Attached(ctx)
	if err != nil {
		return err
	}
	return expectEqual("other button still attached", true, attached)
}

// Checkboxes toggles each checkbox once and checks the other is untouched.
func Checkboxes(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathCheckboxes); err != nil {
		return err
	}
	boxes, err := s.LocateN(ctx, checkboxes, 2)
	if err != nil {
		return err
	}

	state := []bool{false, true}
	for i, box := range boxes {
		got, err := box.Selected(ctx)
		if err != nil {
			return err
		}
		if err := expectEqual(fmt.Sprintf("checkbox %d initial", i+1), state[i], got); err != nil {
			return err
		}
	}

	for i, box := range boxes {
		if err := box.Click(ctx); err != nil {
			return err
		}
		state[i] = !state[i]
		for j, other := range boxes {
			got, err := other.Selected(ctx)
			if err != nil {
				return err
			}
			what := fmt.Sprintf("checkbox %d after clicking %d", j+1, i+1)
			if err := expectEqual(what, state[j], got); err != nil {
				return err
			}
		}
	}
	return nil
}

// Dropdown checks the option labels and that selecting one deselects the rest.
func Dropdown(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathDropdown); err != nil {
		return err
	}
	dropdown, err := s.LocateOne(ctx, browser.ByID("dropdown"))
	if err != nil {
		return err
	}
	options, err := dropdown.Locate(ctx, browser.ByCSS("option"))
	if err != nil {
		return err
	}
	labels := []string{"Please select an option", "Option 1", "Option 2"}
	if err := expectEqual("option count", len(labels), len(options)); err != nil {
		return err
	}
	for i, want := range labels {
		got, err := options[i].Text(ctx)
		if err != nil {
			return err
		}
		if err := expectEqual(fmt.Sprintf("option %d label", i), want, got); err != nil {
			return err
		}
	}

	for i := 1; i < len(labels); i++ {
		if err := dropdown.Select(ctx, labels[i]); err != nil {
			return err
		}
		for j, opt := range options {
			got, err := opt.Selected(ctx)
			if err != nil {
				return err
			}
			what := fmt.Sprintf("option %d selected after choosing %q", j, labels[i])
			if err := expectEqual(what, i == j, got); err != nil {
				return err
			}
		}
	}
	return nil
}

// Inputs steps a number input up and back down with the arrow keys.
func Inputs(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathInputs); err != nil {
		return err
	}
	in, err := s.LocateOne(ctx, numberInput)
	if err != nil {
		return err
	}

	steps := []struct {
		key  input.Key
		want string
	}{
		{input.ArrowUp, "1"},
		{input.ArrowDown, "0"},
	}
	for _, step := range steps {
		if err := s.Perform(ctx, browser.Click(in), browser.KeyDown(step.key)); err != nil {
			return err
		}
		got, err := in.Value(ctx)
		if err != nil {
			return err
		}
		if err := expectEqual("number input value", step.want, got); err != nil {
			return err
		}
	}
	return nil
}

// SortableDataTables checks fixed cells of the first table, once by
// positional path and once from a parsed snapshot.
func SortableDataTables(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathTables); err != nil {
		return err
	}
	cells := []struct {
		path     string
		row, col int // 0 row means header
		want     string
	}{
		{"//*[@id='table1']/thead/tr/th[1]", 0, 1, "Last Name"},
		{"//*[@id='table1']/tbody/tr/td[1]", 1, 1, "Smith"},
		{"//*[@id='table1']/tbody/tr[2]/td[2]", 2, 2, "Frank"},
		{"//*[@id='table1']/tbody/tr[4]/td[4]", 4, 4, "$50.00"},
	}
	for _, c := range cells {
		el, err := s.LocateOne(ctx, browser.ByXPath(c.path))
		if err != nil {
			return err
		}
		got, err := el.Text(ctx)
		if err != nil {
			return err
		}
		if err := expectEqual(c.path, c.want, got); err != nil {
			return err
		}
	}

	tbl, err := s.Table(ctx, browser.ByID("table1"))
	if err != nil {
		return err
	}
	for _, c := range cells {
		var got string
		if c.row == 0 {
			if c.col <= len(tbl.Header) {
				got = tbl.Header[c.col-1]
			}
		} else {
			got, _ = tbl.Cell(c.row, c.col)
		}
		what := fmt.Sprintf("table1 snapshot (%d,%d)", c.row, c.col)
		if err := expectEqual(what, c.want, got); err != nil {
			return err
		}
	}
	return nil
}

// Hovers reveals each user card by hovering, follows its profile link and
// comes back to the listing.
func Hovers(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathHovers); err != nil {
		return err
	}
	const users = 3
	for i := 1; i <= users; i++ {
		// Re-locate every round: the listing was reloaded by Back.
		figs, err := s.LocateN(ctx, figures, users)
		if err != nil {
			return err
		}
		if err := s.Perform(ctx, browser.MoveTo(figs[i-1])); err != nil {
			return err
		}

		heading, err := s.LocateOne(ctx, browser.ByXPath(fmt.Sprintf("/html/body/div[2]/div/div/div[%d]/div/h5", i)))
		if err != nil {
			return err
		}
		visible, err := heading.Visible(ctx)
		if err != nil {
			return err
		}
		if err := expectEqual(fmt.Sprintf("user %d caption visible", i), true, visible); err != nil {
			return err
		}
		text, err := heading.Text(ctx)
		if err != nil {
			return err
		}
		if err := expectEqual(fmt.Sprintf("user %d caption", i), fmt.Sprintf("name: user%d", i), text); err != nil {
			return err
		}

		listing, err := s.CurrentURL(ctx)
		if err != nil {
			return err
		}
		link, err := s.LocateOne(ctx, browser.ByXPath(fmt.Sprintf("//a[@href='/users/%d']", i)))
		if err != nil {
			return err
		}
		if err := s.Perform(ctx, browser.Click(link)); err != nil {
			return err
		}
		if err := s.WaitUntil(ctx, browser.Navigated(listing), 0); err != nil {
			return err
		}
		url, err := s.CurrentURL(ctx)
		if err != nil {
			return err
		}
		if err := expectSuffix(fmt.Sprintf("user %d profile URL", i), fmt.Sprintf("/users/%d", i), url); err != nil {
			return err
		}

		if i < users {
			if err := s.Back(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// ContextMenu right-clicks the hot spot and accepts the alert it raises.
func ContextMenu(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathContextMenu); err != nil {
		return err
	}
	spot, err := s.LocateOne(ctx, browser.ByID("hot-spot"))
	if err != nil {
		return err
	}
	if err := s.Perform(ctx, browser.ContextClick(spot)); err != nil {
		return err
	}

	dialog, err := s.Dialog(ctx)
	if err != nil {
		return err
	}
	if err := expectEqual("dialog type", "alert", dialog.Type); err != nil {
		return err
	}
	if err := expectEqual("alert text", "You selected a context menu", dialog.Message); err != nil {
		return err
	}
	if err := dialog.Accept(ctx); err != nil {
		return err
	}
	return expectEqual("mode after accept", browser.ModeNormal, s.Mode())
}

// DynamicControlsRemove removes the checkbox and waits out the loading bar.
func DynamicControlsRemove(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathDynamicControls); err != nil {
		return err
	}
	if _, err := s.LocateN(ctx, browser.ByCSS("#checkbox-example input[type='checkbox']"), 1); err != nil {
		return err
	}
	btn, err := s.LocateOne(ctx, browser.ByAttr("button", "onclick", "swapCheckbox()"))
	if err != nil {
		return err
	}
	if err := btn.Click(ctx); err != nil {
		return err
	}
	if err := s.WaitUntil(ctx, browser.Invisible(loading), 0); err != nil {
		return err
	}

	if err := expectText(ctx, s, message, "It's gone!"); err != nil {
		return err
	}
	left, err := s.Locate(ctx, browser.ByCSS("#checkbox-example input[type='checkbox']"))
	if err != nil {
		return err
	}
	return expectEqual("checkboxes after removal", 0, len(left))
}

// DynamicControlsEnable enables the text input and waits out the loading bar.
func DynamicControlsEnable(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathDynamicControls); err != nil {
		return err
	}
	field := browser.ByCSS("#input-example input[type='text']")
	in, err := s.LocateOne(ctx, field)
	if err != nil {
		return err
	}
	enabled, err := in.Enabled(ctx)
	if err != nil {
		return err
	}
	if err := expectEqual("input enabled before", false, enabled); err != nil {
		return err
	}

	btn, err := s.LocateOne(ctx, browser.ByAttr("button", "onclick", "swapInput()"))
	if err != nil {
		return err
	}
	if err := btn.Click(ctx); err != nil {
		return err
	}
	if err := s.WaitUntil(ctx, browser.Invisible(loading), 0); err != nil {
		return err
	}

	if err := expectText(ctx, s, message, "It's enabled!"); err != nil {
		return err
	}
	in, err = s.LocateOne(ctx, field)
	if err != nil {
		return err
	}
	enabled, err = in.Enabled(ctx)
	if err != nil {
		return err
	}
	return expectEqual("input enabled after", true, enabled)
}

// IFrame reads the editor body inside the frame, then the page heading
// outside it.
func IFrame(ctx context.Context, s *browser.Session) error {
	if err := s.Navigate(ctx, pathIFrame); err != nil {
		return err
	}
	frame, err := s.LocateOne(ctx, browser.ByID("mce_0_ifr"))
	if err != nil {
		return err
	}
	if err := s.EnterFrame(ctx, frame); err != nil {
		return err
	}
	defer s.ExitFrame()

	body := browser.ByID("tinymce")
	if err := s.WaitUntil(ctx, browser.Present(body), 0); err != nil {
		return err
	}
	if err := expectText(ctx, s, body, "Your content goes here."); err != nil {
		return err
	}

	s.ExitFrame()
	return expectText(ctx, s, browser.ByCSS("div.example h3"), "An iFrame containing the TinyMCE WYSIWYG Editor")
}

func expectText(ctx context.Context, s *browser.Session, by browser.By, want string) error {
	el, err := s.LocateOne(ctx, by)
	if err != nil {
		return err
	}
	got, err := el.Text(ctx)
	if err != nil {
		return err
	}
	return expectEqual(by.String()+" text", want, got)
}
