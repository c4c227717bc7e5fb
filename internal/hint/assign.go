package hint

import (
	"sort"

	"github.com/ScopeCreep-zip/open-sesame/internal/wm"
)

// Fallback base letter for app ids with no alphabetic character at all.
const fallbackBase = 'x'

// WindowHint associates a hint sequence with a window.
type WindowHint struct {
	Hint     Sequence
	WindowID string
	AppID    string
	Title    string
	// Index is the position in the original window list. It is the
	// stable key used by the state machine and is never recomputed.
	Index int
}

// HintString returns the hint in display form.
func (h WindowHint) HintString() string {
	return h.Hint.String()
}

// Assignment holds the hints generated from a window list.
//
// Hints are kept in window order, not assignment order: the window list
// encodes MRU semantics and the first hint is the quick-switch anchor.
type Assignment struct {
	Hints []WindowHint
}

// Assign creates hints for every window. The base letter for a window is
// keyForApp(appID) when configured, otherwise the first ASCII-alphabetic
// character of the app id's last dot-segment, otherwise 'x'. Windows
// sharing a base letter get increasing repetition counts in list order.
func Assign(windows []wm.Window, keyForApp func(appID string) (byte, bool)) Assignment {
	type grouped struct {
		index  int
		window wm.Window
	}

	byBase := make(map[byte][]grouped)
	var order []byte

	for i, window := range windows {
		base, ok := keyForApp(window.AppID)
		if !ok {
			base, ok = autoGenerateKey(window.AppID)
		}
		if !ok {
			base = fallbackBase
		}
		if _, seen := byBase[base]; !seen {
			order = append(order, base)
		}
		byBase[base] = append(byBase[base], grouped{index: i, window: window})
	}

	hints := make([]WindowHint, 0, len(windows))
	for _, base := range order {
		for n, g := range byBase[base] {
			hints = append(hints, WindowHint{
				Hint:     NewSequence(base, n+1),
				WindowID: g.window.ID,
				AppID:    g.window.AppID,
				Title:    g.window.Title,
				Index:    g.index,
			})
		}
	}

	// Restore window order so hints[0] is the quick-switch target
	sort.Slice(hints, func(i, j int) bool { return hints[i].Index < hints[j].Index })

	return Assignment{Hints: hints}
}

// FindByWindowID returns the hint for a window id, if any.
func (a Assignment) FindByWindowID(id string) (WindowHint, bool) {
	for _, h := range a.Hints {
		if h.WindowID == id {
			return h, true
		}
	}
	return WindowHint{}, false
}

// autoGenerateKey derives a base letter from the app id's last
// dot-segment.
func autoGenerateKey(appID string) (byte, bool) {
	segment := wm.LastSegment(appID)
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if c >= 'a' && c <= 'z' {
			return c, true
		}
		if c >= 'A' && c <= 'Z' {
			return c + 'a' - 'A', true
		}
	}
	return 0, false
}
