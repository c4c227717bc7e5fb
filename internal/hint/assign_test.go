package hint

import (
	"testing"

	"github.com/ScopeCreep-zip/open-sesame/internal/wm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyTable(table map[string]byte) func(string) (byte, bool) {
	return func(appID string) (byte, bool) {
		b, ok := table[appID]
		return b, ok
	}
}

func TestAssignRepeatedLetters(t *testing.T) {
	windows := []wm.Window{
		{ID: "win-1", AppID: "firefox", Title: "Tab 1"},
		{ID: "win-2", AppID: "firefox", Title: "Tab 2"},
		{ID: "win-3", AppID: "ghostty", Title: "Terminal"},
	}

	assignment := Assign(windows, keyTable(map[string]byte{
		"firefox": 'f',
		"ghostty": 'g',
	}))

	require.Len(t, assignment.Hints, 3)

	strs := make([]string, 0, 3)
	for _, h := range assignment.Hints {
		strs = append(strs, h.HintString())
	}
	assert.Contains(t, strs, "f")
	assert.Contains(t, strs, "ff")
	assert.Contains(t, strs, "g")
}

func TestAssignThirdWindowGetsTriple(t *testing.T) {
	windows := []wm.Window{
		{ID: "a", AppID: "firefox"},
		{ID: "b", AppID: "firefox"},
		{ID: "c", AppID: "firefox"},
	}

	assignment := Assign(windows, keyTable(map[string]byte{"firefox": 'f'}))

	require.Len(t, assignment.Hints, 3)
	assert.Equal(t, "fff", assignment.Hints[2].HintString())
}

func TestAssignOrderTracksWindowOrder(t *testing.T) {
	// Window order is MRU order; hints must come back in that order,
	// not grouped by base letter.
	windows := []wm.Window{
		{ID: "w0", AppID: "ghostty"},
		{ID: "w1", AppID: "firefox"},
		{ID: "w2", AppID: "ghostty"},
		{ID: "w3", AppID: "firefox"},
	}

	assignment := Assign(windows, keyTable(map[string]byte{
		"firefox": 'f',
		"ghostty": 'g',
	}))

	require.Len(t, assignment.Hints, 4)
	for i, h := range assignment.Hints {
		assert.Equal(t, i, h.Index)
	}
	assert.Equal(t, "g", assignment.Hints[0].HintString())
	assert.Equal(t, "f", assignment.Hints[1].HintString())
	assert.Equal(t, "gg", assignment.Hints[2].HintString())
	assert.Equal(t, "ff", assignment.Hints[3].HintString())
}

func TestAssignAutoKeyFromLastSegment(t *testing.T) {
	windows := []wm.Window{
		{ID: "w0", AppID: "com.mitchellh.ghostty"},
		{ID: "w1", AppID: "org.gnome.Nautilus"},
	}

	assignment := Assign(windows, keyTable(nil))

	require.Len(t, assignment.Hints, 2)
	assert.Equal(t, "g", assignment.Hints[0].HintString())
	assert.Equal(t, "n", assignment.Hints[1].HintString())
}

func TestAssignFallbackBase(t *testing.T) {
	windows := []wm.Window{
		{ID: "w0", AppID: "1234"},
	}

	assignment := Assign(windows, keyTable(nil))

	require.Len(t, assignment.Hints, 1)
	assert.Equal(t, "x", assignment.Hints[0].HintString())
}

func TestFindByWindowID(t *testing.T) {
	windows := []wm.Window{
		{ID: "w0", AppID: "firefox"},
		{ID: "w1", AppID: "ghostty"},
	}
	assignment := Assign(windows, keyTable(map[string]byte{
		"firefox": 'f',
		"ghostty": 'g',
	}))

	h, ok := assignment.FindByWindowID("w1")
	assert.True(t, ok)
	assert.Equal(t, "g", h.HintString())

	_, ok = assignment.FindByWindowID("missing")
	assert.False(t, ok)
}
