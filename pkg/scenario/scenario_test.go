package scenario

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_NamesUniqueAndComplete(t *testing.T) {
	all := All()
	names := map[string]bool{}
	for _, sc := range all {
		assert.False(t, names[sc.Name], "duplicate %s", sc.Name)
		names[sc.Name] = true
		assert.NotNil(t, sc.Run, sc.Name)
		assert.True(t, strings.HasPrefix(sc.Path, "/"), sc.Name)
	}

	for _, want := range []string{
		"AddRemoveElements", "Checkboxes", "Dropdown", "Inputs", "SortableDataTables",
		"Hovers", "ContextMenu", "DynamicControlsRemove", "DynamicControlsEnable", "IFrame",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestSelect(t *testing.T) {
	got, err := Select("^DynamicControls")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "DynamicControlsRemove", got[0].Name)
	assert.Equal(t, "DynamicControlsEnable", got[1].Name)

	got, err = Select("")
	require.NoError(t, err)
	assert.Len(t, got, len(All()))

	_, err = Select("(")
	assert.Error(t, err)
}

func TestExpectEqual(t *testing.T) {
	assert.NoError(t, expectEqual("count", 2, 2))

	err := expectEqual("option 1 label", "Option 1", "Option 2")
	require.Error(t, err)
	assert.Equal(t, `option 1 label: got "Option 2", want "Option 1"`, err.Error())
	assert.True(t, IsAssertionFailure(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsAssertionFailure(errors.New("other")))
}

func TestExpectSuffix(t *testing.T) {
	assert.NoError(t, expectSuffix("url", "/users/2", "https://the-internet.herokuapp.com/users/2"))

	err := expectSuffix("url", "/users/2", "https://the-internet.herokuapp.com/users/3")
	require.Error(t, err)
	assert.Equal(t, AssertionFailed, Classify(err))
}
