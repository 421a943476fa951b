package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `
<table id="table1" class="tablesorter">
  <thead>
    <tr>
      <th class="header"><span>Last Name</span></th>
      <th class="header"><span>First Name</span></th>
      <th class="header"><span>Email</span></th>
      <th class="header"><span>Due</span></th>
    </tr>
  </thead>
  <tbody>
    <tr><td>Smith</td><td>John</td><td>jsmith@gmail.com</td><td>$50.00</td></tr>
    <tr><td>Bach</td><td>Frank</td><td>fbach@yahoo.com</td><td>$51.00</td></tr>
    <tr><td>Doe</td><td>Jason</td><td>jdoe@hotmail.com</td><td>$100.00</td></tr>
    <tr><td>Conway</td><td>Tim</td><td>tconway@earthlink.net</td><td>$50.00</td></tr>
  </tbody>
</table>`

func TestParseTable(t *testing.T) {
	tbl, err := ParseTable(sampleTable)
	require.NoError(t, err)

	assert.Equal(t, []string{"Last Name", "First Name", "Email", "Due"}, tbl.Header)
	require.Len(t, tbl.Rows, 4)

	cell, ok := tbl.Cell(1, 1)
	assert.True(t, ok)
	assert.Equal(t, "Smith", cell)

	cell, _ = tbl.Cell(2, 2)
	assert.Equal(t, "Frank", cell)

	cell, _ = tbl.Cell(4, 4)
	assert.Equal(t, "$50.00", cell)

	assert.Equal(t, 4, tbl.Column("Due"))
	assert.Equal(t, 0, tbl.Column("Web Site"))
}

func TestParseTable_HeaderWithoutThead(t *testing.T) {
	tbl, err := ParseTable(`<table>
		<tr><th>A</th><th>B</th></tr>
		<tr><td> one </td><td>two
		  words</td></tr>
	</table>`)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, tbl.Header)
	assert.Equal(t, [][]string{{"one", "two words"}}, tbl.Rows)
}

func TestParseTable_NoTable(t *testing.T) {
	_, err := ParseTable(`<div>nothing here</div>`)
	assert.Error(t, err)
}

func TestTable_CellOutOfRange(t *testing.T) {
	tbl := Table{Rows: [][]string{{"x"}}}
	for _, rc := range [][2]int{{0, 1}, {1, 0}, {2, 1}, {1, 2}} {
		_, ok := tbl.Cell(rc[0], rc[1])
		assert.False(t, ok, "cell %v", rc)
	}
}
