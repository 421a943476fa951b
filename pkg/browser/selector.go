package browser

import (
	"fmt"
	"strings"
)

type byKind int

const (
	byCSS byKind = iota
	byXPath
)

// By is a rule identifying zero or more elements.
type By struct {
	kind  byKind
	value string
	desc  string
}

// ByCSS matches a CSS selector.
func ByCSS(selector string) By {
	return By{kind: byCSS, value: selector, desc: "css=" + selector}
}

// ByID matches the element whose id attribute equals id.
func ByID(id string) By {
	return By{kind: byCSS, value: "[id=" + quote(id) + "]", desc: "id=" + id}
}

// ByAttr matches tag elements whose attribute name equals value.
// An empty tag matches any element.
func ByAttr(tag, name, value string) By {
	sel := fmt.Sprintf("%s[%s=%s]", tag, name, quote(value))
	return By{kind: byCSS, value: sel, desc: "css=" + sel}
}

// ByXPath matches a structural path. Positional paths depend on document
// order; re-locate after any action that can add, remove or reorder nodes.
func ByXPath(path string) By {
	return By{kind: byXPath, value: path, desc: "xpath=" + path}
}

func (b By) String() string { return b.desc }

func (b By) isXPath() bool { return b.kind == byXPath }

// quote renders s as a single-quoted CSS string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
