package wm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "ghostty", LastSegment("com.mitchellh.ghostty"))
	assert.Equal(t, "firefox", LastSegment("firefox"))
	assert.Equal(t, "Nautilus", LastSegment("org.gnome.Nautilus"))
	assert.Equal(t, "", LastSegment(""))
	assert.Equal(t, "", LastSegment("trailing."))
}

func TestMoveFocusedToEnd(t *testing.T) {
	windows := []Window{
		{ID: "a", Focused: true},
		{ID: "b"},
		{ID: "c"},
	}

	reordered := moveFocusedToEnd(windows)

	require.Len(t, reordered, 3)
	assert.Equal(t, "b", reordered[0].ID)
	assert.Equal(t, "c", reordered[1].ID)
	assert.Equal(t, "a", reordered[2].ID)
}

func TestMoveFocusedToEndNoFocused(t *testing.T) {
	windows := []Window{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, windows, moveFocusedToEnd(windows))
}

func TestMoveFocusedToEndEmpty(t *testing.T) {
	assert.Empty(t, moveFocusedToEnd(nil))
}

const hyprctlClientsJSON = `[
  {"address": "0x1", "class": "firefox", "title": "Mozilla Firefox",
   "mapped": true, "hidden": false, "focusHistoryID": 1, "workspace": {"id": 1}},
  {"address": "0x2", "class": "com.mitchellh.ghostty", "title": "ghostty",
   "mapped": true, "hidden": false, "focusHistoryID": 0, "workspace": {"id": 1}},
  {"address": "0x3", "class": "microsoft-edge", "title": "Edge",
   "mapped": true, "hidden": false, "focusHistoryID": 2, "workspace": {"id": 2}},
  {"address": "0x4", "class": "slack", "title": "Slack",
   "mapped": false, "hidden": false, "focusHistoryID": 3, "workspace": {"id": 2}},
  {"address": "0x5", "class": "spotify", "title": "Spotify",
   "mapped": true, "hidden": false, "focusHistoryID": 4, "workspace": {"id": -99}}
]`

func TestHyprlandWindowOrdering(t *testing.T) {
	var clients []hyprlandClient
	require.NoError(t, json.Unmarshal([]byte(hyprctlClientsJSON), &clients))

	windows := windowsFromClients(clients)

	// Unmapped slack and special-workspace spotify are dropped; the
	// rest sort by focus recency with focused ghostty moved last.
	require.Len(t, windows, 3)
	assert.Equal(t, "0x1", windows[0].ID)
	assert.Equal(t, "0x3", windows[1].ID)
	assert.Equal(t, "0x2", windows[2].ID)
	assert.True(t, windows[2].Focused)
}

func TestHyprlandEmptyClientList(t *testing.T) {
	var clients []hyprlandClient
	require.NoError(t, json.Unmarshal([]byte(`[]`), &clients))
	assert.Empty(t, windowsFromClients(clients))
}

const swayTreeJSON = `{
  "id": 1, "type": "root", "name": "root",
  "nodes": [
    {"id": 2, "type": "output", "name": "eDP-1",
     "nodes": [
       {"id": 3, "type": "workspace", "name": "1",
        "nodes": [
          {"id": 10, "type": "con", "name": "Mozilla Firefox",
           "app_id": "firefox", "focused": false, "nodes": [], "floating_nodes": []},
          {"id": 11, "type": "con", "name": "ghostty",
           "app_id": "com.mitchellh.ghostty", "focused": true, "nodes": [], "floating_nodes": []}
        ],
        "floating_nodes": [
          {"id": 12, "type": "floating_con", "name": "Calculator",
           "app_id": "org.gnome.Calculator", "focused": false, "nodes": [], "floating_nodes": []}
        ]}
     ],
     "floating_nodes": []}
  ],
  "floating_nodes": []
}`

func TestSwayTreeWalk(t *testing.T) {
	var root swayNode
	require.NoError(t, json.Unmarshal([]byte(swayTreeJSON), &root))

	windows := moveFocusedToEnd(collectSwayWindows(&root, nil))

	require.Len(t, windows, 3)
	assert.Equal(t, "10", windows[0].ID)
	assert.Equal(t, "firefox", windows[0].AppID)
	assert.Equal(t, "12", windows[1].ID)
	assert.Equal(t, "11", windows[2].ID, "focused ghostty moved last")
}

func TestSwayXWaylandClassFallback(t *testing.T) {
	const node = `{"id": 20, "type": "con", "name": "Steam",
	  "app_id": "", "focused": false,
	  "window_properties": {"class": "steam"},
	  "nodes": [], "floating_nodes": []}`

	var n swayNode
	require.NoError(t, json.Unmarshal([]byte(node), &n))

	windows := collectSwayWindows(&n, nil)
	require.Len(t, windows, 1)
	assert.Equal(t, "steam", windows[0].AppID)
}
