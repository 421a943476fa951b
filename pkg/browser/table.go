package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is a text snapshot of an HTML table. It does not track later DOM
// changes; take a new snapshot after sorting or editing.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the body cell at the 1-based row and column, matching
// XPath's tr[row]/td[col] numbering.
func (t Table) Cell(row, col int) (string, bool) {
	if row < 1 || row > len(t.Rows) {
		return "", false
	}
	r := t.Rows[row-1]
	if col < 1 || col > len(r) {
		return "", false
	}
	return r[col-1], true
}

// Column returns the 1-based index of the header named name, or 0.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i + 1
		}
	}
	return 0
}

// ParseTable reads the first table in html. Header cells come from the
// first row of thead, or from the first row made only of th cells.
func ParseTable(html string) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse table: %w", err)
	}
	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return Table{}, errors.New("no table element")
	}

	var t Table
	headRow := tbl.Find("thead tr").First()
	if headRow.Length() == 0 {
		tbl.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			if tr.Find("th").Length() > 0 && tr.Find("td").Length() == 0 {
				headRow = tr
				return false
			}
			return true
		})
	}
	headRow.Find("th").Each(func(_ int, th *goquery.Selection) {
		t.Header = append(t.Header, cellText(th))
	})

	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if headRow.Length() > 0 && tr.IsSelection(headRow) {
			return
		}
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return
		}
		row := make([]string, 0, tds.Length())
		tds.Each(func(_ int, td *goquery.Selection) {
			row = append(row, cellText(td))
		})
		t.Rows = append(t.Rows, row)
	})
	return t, nil
}

func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// Table snapshots the table matching by in the current context.
func (s *Session) Table(ctx context.Context, by By) (Table, error) {
	el, err := s.LocateOne(ctx, by)
	if err != nil {
		return Table{}, err
	}
	html, err := el.HTML(ctx)
	if err != nil {
		return Table{}, err
	}
	t, err := ParseTable(html)
	if err != nil {
		return Table{}, el.fault("table", err)
	}
	return t, nil
}
